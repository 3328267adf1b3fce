package cli

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/fwdmuon/internal/histo"
	"github.com/roach88/fwdmuon/internal/store"
)

// newPrinter returns the printer used for human-readable counts
// (thousands separators).
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func printRunSummary(w io.Writer, s RunSummary) {
	p := newPrinter()
	st := s.Stats

	p.Fprintf(w, "Run %s: %s\n", s.Status, s.Input)
	p.Fprintf(w, "  events:           %d\n", st.Events)
	p.Fprintf(w, "  tracks:           %d\n", st.Tracks)
	p.Fprintf(w, "  truth muons:      %d (forward %d, D-meson mothers %d)\n", st.Muons, st.Forward, st.HeavyFlavor)
	p.Fprintf(w, "  results:          %d (prompt %d, non-prompt %d)\n", st.Emitted, st.Prompt, st.NonPrompt())
	p.Fprintf(w, "  duplicates:       %d\n", st.Duplicates)
	p.Fprintf(w, "  rejected:         no truth %d, cut %d, not muon %d, no mother %d\n", st.NoTruth, st.Cut, st.NotMuon, st.NoMother)
	p.Fprintf(w, "  integrity errors: %d\n", st.IntegrityErrors)
	if s.Report != "" {
		p.Fprintf(w, "Report written to %s\n", s.Report)
	}
	if s.Database != "" {
		p.Fprintf(w, "Stored as run %s in %s\n", s.RunID, s.Database)
	}
	if s.ChainsDOT != "" {
		p.Fprintf(w, "Chain graph written to %s\n", s.ChainsDOT)
	}
}

func printStoredRun(w io.Writer, run store.Run, mothers []store.MotherCount, hists []histo.Snapshot) error {
	p := newPrinter()

	p.Fprintf(w, "Run %s (%s)\n", run.ID, run.Status)
	p.Fprintf(w, "  input:            %s\n", run.Input)
	p.Fprintf(w, "  events:           %d\n", run.Events)
	p.Fprintf(w, "  tracks:           %d\n", run.Tracks)
	p.Fprintf(w, "  truth muons:      %d\n", run.Muons)
	p.Fprintf(w, "  results:          %d (prompt %d, non-prompt %d)\n", run.Emitted, run.Prompt, run.Emitted-run.Prompt)
	p.Fprintf(w, "  duplicates:       %d\n", run.Duplicates)
	p.Fprintf(w, "  integrity errors: %d\n", run.IntegrityErrors)

	if len(mothers) > 0 {
		p.Fprintf(w, "\nMother      total     prompt  non-prompt\n")
		for _, m := range mothers {
			p.Fprintf(w, "%6d  %9d  %9d  %10d\n", m.MotherPDG, m.Total, m.Prompt, m.Total-m.Prompt)
		}
	}

	for _, h := range hists {
		p.Fprintf(w, "\n")
		if err := histo.Render(w, h); err != nil {
			return err
		}
	}
	return nil
}
