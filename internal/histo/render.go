package histo

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 40

// Render writes a plain-text bar chart of s to w.
func Render(w io.Writer, s Snapshot) error {
	if _, err := fmt.Fprintf(w, "%s (entries=%d)\n", s.Name, s.Entries); err != nil {
		return err
	}
	var peak float64
	for _, b := range s.Bins {
		if b.SumW > peak {
			peak = b.SumW
		}
	}
	for _, b := range s.Bins {
		n := 0
		if peak > 0 {
			n = int(b.SumW / peak * barWidth)
		}
		if _, err := fmt.Fprintf(w, "  [%6.2f, %6.2f) %6.0f %s\n", b.Low, b.High, b.SumW, strings.Repeat("#", n)); err != nil {
			return err
		}
	}
	return nil
}
