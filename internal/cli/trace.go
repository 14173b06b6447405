package cli

import (
	"github.com/spf13/cobra"

	"github.com/hdlkit/vecgen/internal/engine"
)

// TraceResult is the success payload of the trace command in JSON mode.
type TraceResult struct {
	Cycles     int      `json:"cycles"`
	VectorSize int      `json:"vector_size"`
	Values     []uint64 `json:"values"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <config>",
		Short: "Expand a config and dump the trace to stdout",
		Long: `Expand a stimulus config and print the resulting trace.

Text output is the same lowercase hex, one value per line, that
generate writes to its output file; --format json emits the values as
integers with run metadata.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runTrace(rootOpts *RootOptions, configPath string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	cfg, err := LoadConfig(configPath, cmd.InOrStdin())
	if err != nil {
		return reportConfigError(formatter, err)
	}

	trace, err := engine.Expand(cfg.Events, cfg.VectorSize)
	if err != nil {
		return reportExpandError(formatter, err)
	}

	if rootOpts.Format == "json" {
		return formatter.Success(TraceResult{
			Cycles:     len(trace.Values),
			VectorSize: trace.VectorSize,
			Values:     trace.Values,
		})
	}
	return trace.WriteHex(formatter.Writer)
}
