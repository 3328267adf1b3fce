// Package output defines where classification results go.
package output

import (
	"context"

	"github.com/roach88/fwdmuon/internal/model"
)

// Output is an append-only destination for classification results.
// Write is called synchronously, once per result, in emission order.
type Output interface {
	Write(ctx context.Context, result model.Result) error
	Close() error
}
