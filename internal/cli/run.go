package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/fwdmuon/internal/chaingraph"
	"github.com/roach88/fwdmuon/internal/config"
	"github.com/roach88/fwdmuon/internal/cuts"
	"github.com/roach88/fwdmuon/internal/histo"
	"github.com/roach88/fwdmuon/internal/output"
	"github.com/roach88/fwdmuon/internal/output/csv"
	"github.com/roach88/fwdmuon/internal/output/multi"
	"github.com/roach88/fwdmuon/internal/pipeline"
	"github.com/roach88/fwdmuon/internal/source"
	"github.com/roach88/fwdmuon/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ConfigPath string
	Out        string
	Database   string
	ChainsDOT  string
	Cut        string
	Chains     bool

	// RunIDGenerator allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDGenerator pipeline.RunIDGenerator
}

// RunSummary is the result of the run command.
type RunSummary struct {
	RunID      string           `json:"run_id,omitempty"`
	Input      string           `json:"input"`
	Report     string           `json:"report,omitempty"`
	Database   string           `json:"database,omitempty"`
	ChainsDOT  string           `json:"chains_dot,omitempty"`
	Status     string           `json:"status"`
	Stats      pipeline.Stats   `json:"stats"`
	Histograms []histo.Snapshot `json:"histograms"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <events.yaml>",
		Short: "Classify the muon tracks of an event file",
		Long: `Run the forward-muon selection over a YAML event stream.

Every reconstructed track matched to a truth muon is attributed to its mother
hadron and classified prompt or non-prompt. One line per truth muon is written
to the CSV report; with --db the results, histograms and run counters are also
stored in SQLite for later inspection with "fwdmuon report".

Settings come from the built-in defaults, then --config, then flags.

Example:
  fwdmuon run events.yaml
  fwdmuon run events.yaml --out muons.csv --db runs.db --chains
  fwdmuon run events.yaml --config narrow.yaml --cut "pt > 1 && nclusters >= 8"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML run configuration")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "CSV report path (default from config: muontracks.txt)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to store the run in")
	cmd.Flags().StringVar(&opts.ChainsDOT, "chains-dot", "", "write classified decay chains as a Graphviz DOT file")
	cmd.Flags().StringVar(&opts.Cut, "cut", "", "track cut expression, e.g. \"pt > 1\"")
	cmd.Flags().BoolVar(&opts.Chains, "chains", false, "print one decay-chain line per classified muon")

	return cmd
}

// resolveConfig layers the config file and flags over the defaults.
func resolveConfig(opts *RunOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if opts.Out != "" {
		cfg.Output.CSV = opts.Out
	}
	if opts.Database != "" {
		cfg.Output.DB = opts.Database
	}
	if opts.ChainsDOT != "" {
		cfg.Output.ChainsDOT = opts.ChainsDOT
	}
	if opts.Cut != "" {
		cfg.Cut = opts.Cut
	}
	return cfg, nil
}

func runPipeline(opts *RunOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cfg, err := resolveConfig(opts)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidConfig, "invalid configuration", err)
	}

	cut, err := cuts.Compile(cfg.Cut)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidCut, "invalid cut", err)
	}

	src, err := source.Open(input)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "cannot open events", err)
	}
	defer src.Close()

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	summary := RunSummary{
		Input:     input,
		Report:    cfg.Output.CSV,
		Database:  cfg.Output.DB,
		ChainsDOT: cfg.Output.ChainsDOT,
	}

	var outputs []output.Output
	if cfg.Output.CSV != "" {
		csvOut, err := csv.Create(cfg.Output.CSV)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "cannot create report", err)
		}
		outputs = append(outputs, csvOut)
	}

	var st *store.Store
	if cfg.Output.DB != "" {
		logger.Debug("opening database", "path", cfg.Output.DB)
		st, err = store.Open(cfg.Output.DB)
		if err != nil {
			closeOutputs(outputs, logger)
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()

		gen := opts.RunIDGenerator
		if gen == nil {
			gen = pipeline.UUIDv7Generator{}
		}
		summary.RunID = gen.Generate()
		// Store bookkeeping outlives cancellation so an interrupted run is
		// still recorded.
		if err := st.CreateRun(context.WithoutCancel(ctx), summary.RunID, input); err != nil {
			closeOutputs(outputs, logger)
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to create run", err)
		}
		outputs = append(outputs, store.NewResultWriter(st, summary.RunID))
	}
	out := multi.New(outputs...)

	pipeOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithSelection(cfg),
		pipeline.WithCut(cut),
	}
	if opts.Chains {
		// Keep stdout parseable in JSON mode.
		diag := cmd.OutOrStdout()
		if opts.Format == "json" {
			diag = cmd.ErrOrStderr()
		}
		pipeOpts = append(pipeOpts, pipeline.WithDiagnostics(diag))
	}
	var graph *chaingraph.Builder
	if cfg.Output.ChainsDOT != "" {
		graph = chaingraph.New()
		pipeOpts = append(pipeOpts, pipeline.WithChainGraph(graph))
	}
	p := pipeline.New(out, pipeOpts...)

	// Setup signal handling: Ctrl-C stops after the current event.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping after current event", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Info("run starting", "input", input, "run_id", summary.RunID, "cut", cut.String())
	stats, runErr := p.Run(ctx, src)
	interrupted := errors.Is(runErr, context.Canceled)
	if interrupted {
		runErr = nil
	}
	closeErr := out.Close()
	if runErr == nil && closeErr != nil {
		runErr = closeErr
	}

	summary.Stats = stats
	summary.Histograms = p.Histograms().Snapshots()
	switch {
	case runErr != nil:
		summary.Status = store.StatusFailed
	case interrupted:
		summary.Status = store.StatusInterrupted
	default:
		summary.Status = store.StatusCompleted
	}
	logger.Info("run finished", "status", summary.Status, "emitted", stats.Emitted, "prompt", stats.Prompt)

	if st != nil {
		if err := persistRun(context.WithoutCancel(ctx), st, summary); err != nil {
			if runErr == nil {
				return formatter.Fail(ExitFailure, ErrCodeStore, "failed to store run", err)
			}
			logger.Error("failed to store run", "error", err)
		}
	}

	if graph != nil {
		if err := writeDOT(cfg.Output.ChainsDOT, graph); err != nil && runErr == nil {
			return formatter.Fail(ExitFailure, ErrCodeWriteFailed, "cannot write chain graph", err)
		}
	}

	if runErr != nil {
		return formatter.Fail(ExitFailure, ErrCodeRunFailed, "run failed", runErr)
	}

	if opts.Format == "json" {
		return formatter.SuccessForRun(summary.RunID, summary)
	}
	printRunSummary(cmd.OutOrStdout(), summary)
	return nil
}

func persistRun(ctx context.Context, st *store.Store, summary RunSummary) error {
	if err := st.WriteHistograms(ctx, summary.RunID, summary.Histograms); err != nil {
		return err
	}
	return st.FinishRun(ctx, store.Run{
		ID:              summary.RunID,
		Input:           summary.Input,
		Status:          summary.Status,
		Events:          summary.Stats.Events,
		Tracks:          summary.Stats.Tracks,
		Muons:           summary.Stats.Muons,
		Emitted:         summary.Stats.Emitted,
		Prompt:          summary.Stats.Prompt,
		Duplicates:      summary.Stats.Duplicates,
		IntegrityErrors: summary.Stats.IntegrityErrors,
	})
}

func writeDOT(path string, graph *chaingraph.Builder) error {
	dot, err := graph.DOT()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func closeOutputs(outputs []output.Output, logger *slog.Logger) {
	for _, o := range outputs {
		if err := o.Close(); err != nil {
			logger.Error("error closing output", "error", err)
		}
	}
}
