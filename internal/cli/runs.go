package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hdlkit/vecgen/internal/engine"
	"github.com/hdlkit/vecgen/internal/ir"
	"github.com/hdlkit/vecgen/internal/store"
)

// RunsOptions holds flags shared by the runs subcommands.
type RunsOptions struct {
	DBPath string
}

// RunInfo is the JSON view of a journal entry.
type RunInfo struct {
	ID           string   `json:"id"`
	CreatedAt    string   `json:"created_at"`
	SequenceHash string   `json:"sequence_hash"`
	VectorSize   int      `json:"vector_size"`
	CycleCount   int      `json:"cycle_count"`
	Values       []uint64 `json:"values,omitempty"`
}

// VerifyResult is the payload of runs verify.
type VerifyResult struct {
	RunID         string `json:"run_id"`
	Deterministic bool   `json:"deterministic"`
	Cycles        int    `json:"cycles"`
	FirstDiverged int    `json:"first_diverged_cycle,omitempty"`
}

// NewRunsCommand creates the runs command group.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the run journal",
		Long: `Inspect and verify recorded expansion runs.

Runs are recorded by "generate --record" and keyed by UUIDv7, so
listing order is creation order. "runs verify" re-expands a recorded
sequence and checks the engine still produces the identical trace.`,
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "vecgen.db", "run journal database path")

	cmd.AddCommand(newRunsListCommand(rootOpts, opts))
	cmd.AddCommand(newRunsShowCommand(rootOpts, opts))
	cmd.AddCommand(newRunsVerifyCommand(rootOpts, opts))

	return cmd
}

func newRunsListCommand(rootOpts *RootOptions, opts *RunsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List recorded runs, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsList(rootOpts, opts, cmd)
		},
	}
}

func newRunsShowCommand(rootOpts *RootOptions, opts *RunsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <run-id>",
		Short:         "Show one recorded run, including its trace",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsShow(rootOpts, opts, args[0], cmd)
		},
	}
}

func newRunsVerifyCommand(rootOpts *RootOptions, opts *RunsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "verify <run-id>",
		Short:         "Re-expand a recorded run and compare traces",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsVerify(rootOpts, opts, args[0], cmd)
		},
	}
}

// openJournal opens the journal, requiring the database file to exist
// already. Listing a journal that was never written is an error, not
// an invitation to create an empty one.
func openJournal(opts *RunsOptions) (*store.Store, error) {
	if _, err := os.Stat(opts.DBPath); err != nil {
		return nil, fmt.Errorf("run journal not found: %s", opts.DBPath)
	}
	return store.Open(opts.DBPath)
}

func runRunsList(rootOpts *RootOptions, opts *RunsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	st, err := openJournal(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}
	defer st.Close()

	summaries, err := st.ListRuns(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	if rootOpts.Format == "json" {
		infos := make([]RunInfo, len(summaries))
		for i, s := range summaries {
			infos[i] = RunInfo{
				ID:           s.ID,
				CreatedAt:    s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
				SequenceHash: s.SequenceHash,
				VectorSize:   s.VectorSize,
				CycleCount:   s.CycleCount,
			}
		}
		return formatter.Success(infos)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(formatter.Writer, "no recorded runs")
		return nil
	}
	for _, s := range summaries {
		fmt.Fprintf(formatter.Writer, "%s  %s  %4d cycle(s)  width %d  %s\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.CycleCount, s.VectorSize, shortHash(s.SequenceHash))
	}
	return nil
}

func runRunsShow(rootOpts *RootOptions, opts *RunsOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	run, exitErr := readRun(formatter, opts, id, cmd)
	if exitErr != nil {
		return exitErr
	}

	if rootOpts.Format == "json" {
		return formatter.Success(RunInfo{
			ID:           run.ID,
			CreatedAt:    run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			SequenceHash: run.SequenceHash,
			VectorSize:   run.VectorSize,
			CycleCount:   run.CycleCount,
			Values:       run.Values,
		})
	}

	fmt.Fprintf(formatter.Writer, "run:      %s\n", run.ID)
	fmt.Fprintf(formatter.Writer, "created:  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(formatter.Writer, "sequence: %s\n", run.SequenceHash)
	fmt.Fprintf(formatter.Writer, "width:    %d\n", run.VectorSize)
	fmt.Fprintf(formatter.Writer, "cycles:   %d\n", run.CycleCount)
	fmt.Fprintln(formatter.Writer)

	trace := &engine.Trace{Values: run.Values, VectorSize: run.VectorSize}
	return trace.WriteHex(formatter.Writer)
}

func runRunsVerify(rootOpts *RootOptions, opts *RunsOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	run, exitErr := readRun(formatter, opts, id, cmd)
	if exitErr != nil {
		return exitErr
	}

	// The stored sequence is canonical JSON of the original config, so
	// it re-enters through the same compile path a fresh config would.
	cfg, err := CompileConfigBytes(run.ID+".json", run.Sequence)
	if err != nil {
		return reportConfigError(formatter, err)
	}

	// Guard against journal tampering: the stored hash must match the
	// stored sequence before the re-expansion means anything.
	hash, err := ir.SequenceHash(cfg.Events, cfg.VectorSize)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}
	if hash != run.SequenceHash {
		msg := fmt.Sprintf("stored sequence hash mismatch for run %s", run.ID)
		_ = formatter.Error(ErrCodeStore, msg, nil)
		return NewExitError(ExitFailure, msg)
	}

	trace, err := engine.Expand(cfg.Events, cfg.VectorSize)
	if err != nil {
		return reportExpandError(formatter, err)
	}

	stored := &engine.Trace{Values: run.Values, VectorSize: run.VectorSize}
	result := VerifyResult{
		RunID:         run.ID,
		Deterministic: trace.Equal(stored),
		Cycles:        len(trace.Values),
	}
	if !result.Deterministic {
		result.FirstDiverged = firstDivergence(trace.Values, stored.Values)
	}

	if rootOpts.Format == "json" {
		if !result.Deterministic {
			_ = formatter.Error(ErrCodeStore, "replay diverged from recorded trace", result)
			return NewExitError(ExitFailure, "replay diverged")
		}
		return formatter.Success(result)
	}

	if !result.Deterministic {
		fmt.Fprintf(formatter.Writer, "✗ replay diverged at cycle %d\n", result.FirstDiverged)
		return NewExitError(ExitFailure, "replay diverged")
	}
	fmt.Fprintf(formatter.Writer, "✓ deterministic (%d cycle(s) identical)\n", result.Cycles)
	return nil
}

func readRun(formatter *OutputFormatter, opts *RunsOptions, id string, cmd *cobra.Command) (store.Run, error) {
	st, err := openJournal(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return store.Run{}, NewExitError(ExitFailure, err.Error())
	}
	defer st.Close()

	run, err := st.ReadRun(cmd.Context(), id)
	if err != nil {
		code := ErrCodeStore
		if errors.Is(err, store.ErrRunNotFound) {
			code = ErrCodeNotFound
		}
		_ = formatter.Error(code, err.Error(), nil)
		return store.Run{}, NewExitError(ExitFailure, err.Error())
	}
	return run, nil
}

// firstDivergence returns the first cycle index where two traces
// differ, or the shorter length if one is a prefix of the other.
func firstDivergence(a, b []uint64) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
