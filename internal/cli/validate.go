package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/fwdmuon/internal/config"
	"github.com/roach88/fwdmuon/internal/source"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool             `json:"valid"`
	Events   int              `json:"events"`
	Problems []source.Problem `json:"problems,omitempty"`
}

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	ConfigPath string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <events.yaml>",
		Short: "Check an event file without classifying it",
		Long: `Check every event of a YAML event stream for duplicate particle IDs,
dangling mother and truth references, and cyclic mother chains.

Faster than run for checking generator output; nothing is written.
With --config the configuration file is validated as well.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "also validate this run configuration")

	return cmd
}

func runValidate(opts *ValidateOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.ConfigPath != "" {
		if _, err := config.Load(opts.ConfigPath); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidConfig, "invalid configuration", err)
		}
		formatter.VerboseLog("Config %s is valid", opts.ConfigPath)
	}

	src, err := source.Open(input)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "cannot open events", err)
	}
	defer src.Close()

	result := ValidationResult{}
	ctx := context.Background()
	for {
		ev, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidEvents, "cannot decode events", err)
		}
		result.Events++
		problems := source.Validate(ev)
		formatter.VerboseLog("Event %d: %d particle(s), %d track(s), %d problem(s)",
			ev.Index, len(ev.Particles), len(ev.Tracks), len(problems))
		result.Problems = append(result.Problems, problems...)
	}

	result.Valid = len(result.Problems) == 0
	if result.Valid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationProblems(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d event(s) valid\n", result.Events)
	return nil
}

// outputValidationProblems outputs every problem found.
func outputValidationProblems(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeInvalidEvents,
				Message: result.Problems[0].String(),
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d problem(s)", len(result.Problems)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, p := range result.Problems {
		fmt.Fprintf(formatter.Writer, "  %s [%s]\n", p, p.Kind)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d problem(s)", len(result.Problems)))
}
