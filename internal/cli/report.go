package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/fwdmuon/internal/histo"
	"github.com/roach88/fwdmuon/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Database string
	RunID    string
	List     bool
}

// ReportData is the JSON payload of the report command.
type ReportData struct {
	Run        store.Run           `json:"run"`
	Mothers    []store.MotherCount `json:"mothers"`
	Histograms []histo.Snapshot    `json:"histograms"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a stored run",
		Long: `Print the counters, per-mother breakdown and histograms of a run stored
with "fwdmuon run --db". Without --run the most recent run is shown.

Example:
  fwdmuon report --db runs.db
  fwdmuon report --db runs.db --run 0190f6c4-...
  fwdmuon report --db runs.db --list`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID (default: most recent)")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list stored runs instead")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	// store.Open would create an empty database; a report needs an existing one.
	if _, err := os.Stat(opts.Database); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.List {
		return listRuns(ctx, st, formatter)
	}

	var run store.Run
	if opts.RunID != "" {
		run, err = st.ReadRun(ctx, opts.RunID)
	} else {
		run, err = st.LatestRun(ctx)
	}
	if errors.Is(err, store.ErrRunNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "run not found", err)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read run", err)
	}

	formatter.VerboseLog("Reading run %s", run.ID)

	mothers, err := st.CountByMother(ctx, run.ID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to count results", err)
	}
	hists, err := st.ReadHistograms(ctx, run.ID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to read histograms", err)
	}

	if opts.Format == "json" {
		return formatter.SuccessForRun(run.ID, ReportData{Run: run, Mothers: mothers, Histograms: hists})
	}
	return printStoredRun(cmd.OutOrStdout(), run, mothers, hists)
}

func listRuns(ctx context.Context, st *store.Store, formatter *OutputFormatter) error {
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to list runs", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs stored.")
		return nil
	}
	p := newPrinter()
	for _, r := range runs {
		p.Fprintf(formatter.Writer, "%s  %-11s  %9d results  %s\n", r.ID, r.Status, r.Emitted, r.Input)
	}
	return nil
}
