package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/fwdmuon/internal/chaingraph"
	"github.com/roach88/fwdmuon/internal/classify"
	"github.com/roach88/fwdmuon/internal/config"
	"github.com/roach88/fwdmuon/internal/cuts"
	"github.com/roach88/fwdmuon/internal/dedup"
	"github.com/roach88/fwdmuon/internal/histo"
	"github.com/roach88/fwdmuon/internal/model"
	"github.com/roach88/fwdmuon/internal/output"
	"github.com/roach88/fwdmuon/internal/source"
)

// Stats counts what happened to the tracks of a run.
type Stats struct {
	Events          int64 `json:"events"`
	Tracks          int64 `json:"tracks"`
	NoTruth         int64 `json:"no_truth"`
	Cut             int64 `json:"cut"`
	NotMuon         int64 `json:"not_muon"`
	Muons           int64 `json:"muons"`
	Forward         int64 `json:"forward"`
	Duplicates      int64 `json:"duplicates"`
	NoMother        int64 `json:"no_mother"`
	HeavyFlavor     int64 `json:"heavy_flavor"`
	IntegrityErrors int64 `json:"integrity_errors"`
	Emitted         int64 `json:"emitted"`
	Prompt          int64 `json:"prompt"`
}

// NonPrompt returns the number of emitted non-prompt results.
func (s Stats) NonPrompt() int64 {
	return s.Emitted - s.Prompt
}

// Pipeline classifies the muon tracks of a run.
type Pipeline struct {
	out    output.Output
	logger *slog.Logger
	diag   io.Writer
	cut    *cuts.Cut
	graph  *chaingraph.Builder

	forwardEta  config.Range
	heavyFlavor config.PDGRange
	ptAxis      histo.Axis

	seen  *dedup.Set
	hists *histo.Registry
	stats Stats
}

// New creates a Pipeline writing results to out and starts its first run.
func New(out output.Output, opts ...Option) *Pipeline {
	defaults := config.Default()
	p := &Pipeline{
		out:         out,
		logger:      slog.Default(),
		diag:        io.Discard,
		forwardEta:  defaults.ForwardEta,
		heavyFlavor: defaults.HeavyFlavorPDG,
		ptAxis:      defaults.PtAxis,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Begin()
	return p
}

// Begin resets all run-scoped state: the dedup set, histograms and stats.
func (p *Pipeline) Begin() {
	if p.seen == nil {
		p.seen = dedup.New()
	} else {
		p.seen.Reset()
	}
	p.hists = histo.NewRegistry(p.ptAxis)
	p.stats = Stats{}
}

// Stats returns the counters of the current run.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// Histograms returns the histograms of the current run.
func (p *Pipeline) Histograms() *histo.Registry {
	return p.hists
}

// Run processes every event from src. It stops at the end of the input,
// at the first fatal error, or when ctx is cancelled between events.
func (p *Pipeline) Run(ctx context.Context, src source.Source) (Stats, error) {
	for {
		if err := ctx.Err(); err != nil {
			return p.stats, err
		}
		ev, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return p.stats, nil
		}
		if err != nil {
			return p.stats, fmt.Errorf("read event: %w", err)
		}
		if err := p.Process(ctx, ev); err != nil {
			return p.stats, err
		}
	}
}

// Process runs the selection over one event's tracks, in order.
//
// Truth-record integrity errors are logged and skip the affected track
// (or the whole event when its particle table cannot be built). Only
// output failures and cut evaluation failures are returned.
func (p *Pipeline) Process(ctx context.Context, ev model.Event) error {
	p.hists.CountEvent()
	p.stats.Events++
	p.stats.Tracks += int64(len(ev.Tracks))

	tbl, err := model.NewTable(ev.Particles)
	if err != nil {
		p.stats.IntegrityErrors++
		p.logger.Warn("skipping event with invalid truth table", "event", ev.Index, "error", err)
		return nil
	}
	walker := classify.NewWalker(tbl)

	for i, track := range ev.Tracks {
		err := p.processTrack(ctx, tbl, walker, track)
		if err == nil {
			continue
		}
		if model.IsIntegrityError(err) {
			p.stats.IntegrityErrors++
			p.logger.Warn("skipping track", "event", ev.Index, "track", i, "error", err)
			continue
		}
		return fmt.Errorf("event %d track %d: %w", ev.Index, i, err)
	}
	return nil
}

func (p *Pipeline) processTrack(ctx context.Context, tbl model.Lookup, walker *classify.Walker, track model.Track) error {
	id, ok := track.TruthID()
	if !ok {
		p.stats.NoTruth++
		return nil
	}

	pass, err := p.cut.Pass(track)
	if err != nil {
		return err
	}
	if !pass {
		p.stats.Cut++
		return nil
	}

	mu, found := tbl.Particle(id)
	if !found {
		return &model.IntegrityError{Kind: model.DanglingTruth, Ref: id}
	}
	if !mu.IsMuon() {
		p.stats.NotMuon++
		return nil
	}
	p.stats.Muons++

	// Filled for every matched track, duplicates included.
	if p.forwardEta.Contains(mu.Eta) {
		p.stats.Forward++
		if err := p.hists.Fill(histo.ForwardPt, mu.Pt); err != nil {
			return err
		}
	}

	if p.seen.Seen(id) {
		p.stats.Duplicates++
		return nil
	}

	motherID, ok := mu.FirstMother()
	if !ok {
		p.stats.NoMother++
		return nil
	}
	mother, found := tbl.Particle(motherID)
	if !found {
		return &model.IntegrityError{Kind: model.DanglingMother, ID: id, Ref: motherID}
	}
	motherPDG := mother.AbsPDG()

	if classify.InRange(motherPDG, p.heavyFlavor.Min, p.heavyFlavor.Max) {
		p.stats.HeavyFlavor++
		if err := p.hists.Fill(histo.HeavyFlavor, mu.Pt); err != nil {
			return err
		}
	}

	walk, err := walker.Walk(mother)
	if err != nil {
		return err
	}
	prompt := classify.IsPrompt(motherPDG, walk.Last.PDG)
	chain := walk.PDGChain()

	if err := classify.WriteChain(p.diag, chain, prompt); err != nil {
		p.logger.Warn("diagnostic write failed", "error", err)
	}
	p.logger.Debug("classified muon",
		"particle", id,
		"mother_pdg", motherPDG,
		"last_pdg", walk.Last.AbsPDG(),
		"chain", chain,
		"prompt", prompt,
	)

	result := model.NewResult(id, track, motherPDG, prompt)
	result.Chain = chain
	// A row that has started is finished even if the run is being cancelled;
	// cancellation takes effect between events.
	if err := p.out.Write(context.WithoutCancel(ctx), result); err != nil {
		return &SinkError{TruthID: id, Err: err}
	}

	p.seen.MarkSeen(id)
	p.stats.Emitted++
	if prompt {
		p.stats.Prompt++
	}
	if p.graph != nil {
		p.graph.Add(motherPDG, chain, prompt)
	}
	return nil
}
