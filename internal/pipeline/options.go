package pipeline

import (
	"io"
	"log/slog"

	"github.com/roach88/fwdmuon/internal/chaingraph"
	"github.com/roach88/fwdmuon/internal/config"
	"github.com/roach88/fwdmuon/internal/cuts"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithDiagnostics sets the writer that receives one decay-chain line per
// classified muon. Defaults to io.Discard.
func WithDiagnostics(w io.Writer) Option {
	return func(p *Pipeline) { p.diag = w }
}

// WithSelection applies the η window, heavy-flavor mother range and pT
// binning from cfg. The cut expression is compiled separately (WithCut).
func WithSelection(cfg config.Config) Option {
	return func(p *Pipeline) {
		p.forwardEta = cfg.ForwardEta
		p.heavyFlavor = cfg.HeavyFlavorPDG
		p.ptAxis = cfg.PtAxis
	}
}

// WithCut rejects tracks that fail c before truth matching. nil disables it.
func WithCut(c *cuts.Cut) Option {
	return func(p *Pipeline) { p.cut = c }
}

// WithChainGraph records every classified chain into b.
func WithChainGraph(b *chaingraph.Builder) Option {
	return func(p *Pipeline) { p.graph = b }
}
