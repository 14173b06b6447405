package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hdlkit/vecgen/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Events int                        `json:"events,omitempty"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Validate a stimulus config without generating output",
		Long: `Validate a stimulus config against the schema.

Decodes and compiles the config, reporting every validation error
found, without expanding the sequence or writing any output. Faster
feedback than generate when editing configs.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(rootOpts *RootOptions, configPath string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	cfg, err := LoadConfig(configPath, cmd.InOrStdin())
	if err != nil {
		var verrs compiler.ValidationErrors
		if errors.As(err, &verrs) {
			return outputValidationErrors(formatter, verrs)
		}
		return reportConfigError(formatter, err)
	}

	if rootOpts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Events: len(cfg.Events)})
	}
	fmt.Fprintf(formatter.Writer, "✓ configuration valid (%d event(s))\n", len(cfg.Events))
	return nil
}

// outputValidationErrors reports every collected validation error.
func outputValidationErrors(formatter *OutputFormatter, errs compiler.ValidationErrors) error {
	if formatter.Format == "json" {
		_ = formatter.Error(ErrCodeInvalid, errs.Error(), ValidationResult{Valid: false, Errors: errs})
		return NewExitError(ExitFailure, errs.Error())
	}

	fmt.Fprintln(formatter.Writer, "✗ validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", err.Code, err.Field, err.Message)
	}
	fmt.Fprintln(formatter.Writer)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
