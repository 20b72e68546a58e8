package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/gate"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/store"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/synth"
)

// FixOptions holds the fix command flags.
type FixOptions struct {
	Modules       string
	ContextPath   string
	CataloguePath string
	MaxIterations int
	AuditDB       string
	OutPath       string
}

// FixSummary is the JSON payload for a completed synthesis run.
type FixSummary struct {
	Success     bool           `json:"success"`
	Reason      synth.Reason   `json:"reason"`
	Iterations  int            `json:"iterations"`
	Corrections []synth.Record `json:"corrections"`
	Uncovered   []string       `json:"uncovered,omitempty"`
	OutputHash  string         `json:"output_hash"`
	RunToken    string         `json:"run_token"`
	FinalText   string         `json:"final_text,omitempty"`
}

// NewFixCommand creates the fix command.
func NewFixCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FixOptions{}

	cmd := &cobra.Command{
		Use:   "fix <document>",
		Short: "Synthesize corrections for failing gates",
		Long: `Run the correction synthesis loop over a document: evaluate gates,
apply catalogue patterns in priority order, and re-validate until the
failing set is empty or a terminal condition is reached.

Exits 0 when all failures resolve, 1 when the result needs review.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Modules, "modules", "", "comma-separated module set (default: all)")
	cmd.Flags().StringVar(&opts.ContextPath, "context", "", "YAML file of template substitution variables")
	cmd.Flags().StringVar(&opts.CataloguePath, "catalogue", "", "directory of CUE catalogue files (default: built-in)")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", synth.DefaultMaxIterations, "iteration budget")
	cmd.Flags().StringVar(&opts.AuditDB, "audit-db", "", "SQLite audit database to append the run to")
	cmd.Flags().StringVar(&opts.OutPath, "out", "", "write corrected text to this file instead of the report")
	return cmd
}

func runFix(rootOpts *RootOptions, opts *FixOptions, docPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	doc, err := loadDocument(docPath)
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load document", err)
	}

	vars, err := loadContext(opts.ContextPath)
	if err != nil {
		formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load context", err)
	}

	cat, err := loadCatalogue(opts.CataloguePath)
	if err != nil {
		formatter.Error(ErrCodeCatalogue, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load catalogue", err)
	}

	modules := splitModules(opts.Modules)
	validator := gate.NewValidator(gate.DefaultRegistry())

	initial, err := validator.Evaluate(cmd.Context(), doc, modules)
	if err != nil {
		formatter.Error(ErrCodeBadInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "evaluate gates", err)
	}
	formatter.VerboseLog("initial evaluation: %d gate(s) failing", gate.CountFailing(initial))

	engine := synth.New(cat, validator, synth.WithMaxIterations(opts.MaxIterations))
	result, err := engine.Synthesize(cmd.Context(), doc, initial, vars, modules)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "synthesize", err)
	}

	if opts.AuditDB != "" {
		if err := appendAudit(cmd, opts.AuditDB, result, doc.Text(), modules); err != nil {
			formatter.Error(ErrCodeAudit, err.Error(), nil)
			return WrapExitError(ExitCommandError, "write audit record", err)
		}
		formatter.VerboseLog("audit record %s written to %s", result.RunToken, opts.AuditDB)
	}

	if opts.OutPath != "" {
		if err := os.WriteFile(opts.OutPath, []byte(result.FinalText), 0o644); err != nil {
			formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "write corrected document", err)
		}
	}

	summary := FixSummary{
		Success:     result.Success,
		Reason:      result.Reason,
		Iterations:  result.Iterations,
		Corrections: result.Corrections,
		Uncovered:   result.Uncovered,
		OutputHash:  result.OutputHash,
		RunToken:    result.RunToken,
	}
	if opts.OutPath == "" {
		summary.FinalText = result.FinalText
	}

	if rootOpts.Format == "json" {
		if err := formatter.JSON(summary); err != nil {
			return err
		}
	} else {
		formatter.Textf("reason: %s  iterations: %d  corrections: %d",
			result.Reason, result.Iterations, len(result.Corrections))
		for _, rec := range result.Corrections {
			formatter.Textf("  [%s] %s: %s", rec.Strategy, rec.PatternID, rec.Reason)
		}
		for _, key := range result.Uncovered {
			formatter.Textf("  uncovered: %s", key)
		}
		formatter.Textf("output hash: %s", result.OutputHash)
		if opts.OutPath == "" {
			formatter.Textf("---\n%s", result.FinalText)
		}
	}

	if !result.Success {
		return NewExitError(ExitFailure, fmt.Sprintf("synthesis needs review: %s", result.Reason))
	}
	return nil
}

func appendAudit(cmd *cobra.Command, dbPath string, result synth.Result, inputText string, modules []string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	run := store.NewRunRecord(result, inputText, modules, time.Now())
	return st.WriteRun(cmd.Context(), run)
}
