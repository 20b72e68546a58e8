package cli

import (
	"github.com/spf13/cobra"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
)

// PatternSummary is one catalogue entry in listing output.
type PatternSummary struct {
	ID          string `json:"id"`
	Module      string `json:"module,omitempty"`
	GateKey     string `json:"gate_key"`
	Strategy    string `json:"strategy"`
	Priority    int    `json:"priority"`
	LegalSource string `json:"legal_source,omitempty"`
}

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand(rootOpts *RootOptions) *cobra.Command {
	var cataloguePath string

	cmd := &cobra.Command{
		Use:   "patterns [gate-key]",
		Short: "List correction patterns, or coverage for one gate key",
		Long: `List the correction catalogue in priority order. With a gate key
argument, show only the patterns that key resolves to - the same
lookup the synthesis engine performs, including bidirectional
substring matching.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return runPatterns(rootOpts, cataloguePath, key, cmd)
		},
	}

	cmd.Flags().StringVar(&cataloguePath, "catalogue", "", "directory of CUE catalogue files (default: built-in)")
	return cmd
}

func runPatterns(opts *RootOptions, cataloguePath, gateKey string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := loadCatalogue(cataloguePath)
	if err != nil {
		formatter.Error(ErrCodeCatalogue, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load catalogue", err)
	}

	var patterns []catalogue.Pattern
	if gateKey != "" {
		patterns = cat.Lookup(gateKey)
	} else {
		patterns = cat.Patterns()
	}

	summaries := make([]PatternSummary, len(patterns))
	for i, p := range patterns {
		summaries[i] = PatternSummary{
			ID:          p.ID,
			Module:      p.Module,
			GateKey:     p.GateKey,
			Strategy:    string(p.Strategy),
			Priority:    p.Priority,
			LegalSource: p.LegalSource,
		}
	}

	if opts.Format == "json" {
		return formatter.JSON(summaries)
	}
	if len(summaries) == 0 {
		formatter.Textf("no patterns cover gate key %q", gateKey)
		return NewExitError(ExitFailure, "gate key uncovered")
	}
	for _, s := range summaries {
		formatter.Textf("%-3d %-22s %-28s %s", s.Priority, s.Strategy, s.ID, s.GateKey)
	}
	return nil
}
