package cli

import (
	"github.com/spf13/cobra"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/gate"
)

// CheckResult holds the gate evaluation output for one document.
type CheckResult struct {
	Document string        `json:"document"`
	Modules  []string      `json:"modules,omitempty"`
	Gates    []gate.Result `json:"gates"`
	Failing  int           `json:"failing"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var modulesFlag string

	cmd := &cobra.Command{
		Use:   "check <document>",
		Short: "Evaluate compliance gates against a document",
		Long: `Evaluate the compliance gate modules against a document and report
each gate's verdict. Exits 1 if any gate fails or warns.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], splitModules(modulesFlag), cmd)
		},
	}

	cmd.Flags().StringVar(&modulesFlag, "modules", "", "comma-separated module set (default: all)")
	return cmd
}

func runCheck(opts *RootOptions, docPath string, modules []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	doc, err := loadDocument(docPath)
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load document", err)
	}

	validator := gate.NewValidator(gate.DefaultRegistry())
	results, err := validator.Evaluate(cmd.Context(), doc, modules)
	if err != nil {
		formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "evaluate gates", err)
	}

	res := CheckResult{
		Document: docPath,
		Modules:  modules,
		Gates:    results,
		Failing:  gate.CountFailing(results),
	}

	if opts.Format == "json" {
		if err := formatter.JSON(res); err != nil {
			return err
		}
	} else {
		for _, g := range results {
			line := string(g.Status) + "  " + g.GateKey
			if g.Message != "" {
				line += "  (" + g.Message + ")"
			}
			formatter.Textf("%s", line)
		}
		formatter.Textf("%d gate(s) failing", res.Failing)
	}

	if res.Failing > 0 {
		return NewExitError(ExitFailure, "gates failing")
	}
	return nil
}
