package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hdlkit/vecgen/internal/compiler"
	"github.com/hdlkit/vecgen/internal/engine"
	"github.com/hdlkit/vecgen/internal/ir"
	"github.com/hdlkit/vecgen/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	Output string
	Record bool
	DBPath string
}

// GenerateResult is the success payload of the generate command.
type GenerateResult struct {
	Output     string `json:"output"`
	Cycles     int    `json:"cycles"`
	VectorSize int    `json:"vector_size"`
	RunID      string `json:"run_id,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <config>",
		Short: "Expand an event sequence into a stimulus vector file",
		Long: `Expand a stimulus config into a per-cycle vector trace.

The config is a JSON or YAML document with a "sequence" of events and
an optional "vector_size" (default 32). Pass "-" to read JSON from
standard input. The trace is written as lowercase hex, one value per
line, overwriting the output file. Nothing is written if expansion
fails.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Output, "output", "input.txt", "output file")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "record the run in the journal")
	cmd.Flags().StringVar(&opts.DBPath, "db", "vecgen.db", "run journal database path")

	return cmd
}

func runGenerate(rootOpts *RootOptions, opts *GenerateOptions, configPath string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	cfg, err := LoadConfig(configPath, cmd.InOrStdin())
	if err != nil {
		return reportConfigError(formatter, err)
	}
	formatter.VerboseLog("compiled %d event(s), vector size %d", len(cfg.Events), cfg.VectorSize)

	trace, err := engine.Expand(cfg.Events, cfg.VectorSize)
	if err != nil {
		return reportExpandError(formatter, err)
	}
	formatter.VerboseLog("expanded %d cycle(s)", trace.Cycles())

	// All-or-nothing: the output file is only opened once expansion
	// has fully succeeded, so a failed run never leaves a partial
	// trace behind.
	if err := writeTraceFile(opts.Output, trace); err != nil {
		_ = formatter.Error(ErrCodeWrite, "cannot write output file", nil)
		return NewExitError(ExitFailure, err.Error())
	}

	result := GenerateResult{
		Output:     opts.Output,
		Cycles:     len(trace.Values),
		VectorSize: trace.VectorSize,
	}

	if opts.Record {
		runID, err := recordRun(cmd.Context(), opts.DBPath, cfg, trace)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, fmt.Sprintf("cannot record run: %v", err), nil)
			return NewExitError(ExitFailure, err.Error())
		}
		result.RunID = runID
		formatter.VerboseLog("recorded run %s in %s", runID, opts.DBPath)
	}

	if rootOpts.Format == "json" {
		return formatter.Success(result)
	}
	msg := fmt.Sprintf("wrote %d cycle(s) to %s", result.Cycles, result.Output)
	if result.RunID != "" {
		msg += fmt.Sprintf(" (run %s)", result.RunID)
	}
	return formatter.Success(msg)
}

func writeTraceFile(path string, trace *engine.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := trace.WriteHex(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// recordRun journals a successful expansion: canonical sequence JSON,
// content hash, and the packed trace.
func recordRun(ctx context.Context, dbPath string, cfg *compiler.Config, trace *engine.Trace) (string, error) {
	seqJSON, err := ir.MarshalCanonical(cfg.Events, cfg.VectorSize)
	if err != nil {
		return "", err
	}
	hash, err := ir.SequenceHash(cfg.Events, cfg.VectorSize)
	if err != nil {
		return "", err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	run := store.Run{
		ID:           store.NewRunID(),
		SequenceHash: hash,
		VectorSize:   cfg.VectorSize,
		CycleCount:   len(trace.Values),
		Sequence:     seqJSON,
		Values:       trace.Values,
	}
	if err := st.WriteRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}
