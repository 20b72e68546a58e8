package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/store"
)

// NewAuditCommand creates the audit command group.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect and verify the synthesis audit log",
	}
	cmd.AddCommand(newAuditVerifyCommand(rootOpts))
	cmd.AddCommand(newAuditListCommand(rootOpts))
	return cmd
}

func newAuditVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "verify <run-token>",
		Short: "Recompute a stored run's determinism hash and compare",
		Long: `Recompute the determinism hash from the stored correction trail and
final text, and compare it against the hash recorded when the run was
written. A mismatch means the audit row can no longer prove
reproducibility. Exits 1 on mismatch.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuditVerify(rootOpts, dbPath, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite audit database path")
	cmd.MarkFlagRequired("db")
	return cmd
}

func runAuditVerify(opts *RootOptions, dbPath, runToken string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open audit database", err)
	}
	defer st.Close()

	verification, err := st.Verify(cmd.Context(), runToken)
	if err != nil {
		code := ErrCodeAudit
		if errors.Is(err, store.ErrRunNotFound) {
			code = ErrCodeNotFound
		}
		formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitCommandError, "verify run", err)
	}

	if opts.Format == "json" {
		if err := formatter.JSON(verification); err != nil {
			return err
		}
	} else if verification.Valid {
		formatter.Textf("run %s: hash verified (%s)", runToken, verification.StoredHash)
	} else {
		formatter.Textf("run %s: HASH MISMATCH", runToken)
		formatter.Textf("  stored:   %s", verification.StoredHash)
		formatter.Textf("  computed: %s", verification.ComputedHash)
	}

	if !verification.Valid {
		return NewExitError(ExitFailure, "audit hash mismatch")
	}
	return nil
}

func newAuditListCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List recorded synthesis runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuditList(rootOpts, dbPath, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite audit database path")
	cmd.MarkFlagRequired("db")
	return cmd
}

func runAuditList(opts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open audit database", err)
	}
	defer st.Close()

	tokens, err := st.ListRunTokens(cmd.Context())
	if err != nil {
		formatter.Error(ErrCodeAudit, err.Error(), nil)
		return WrapExitError(ExitCommandError, "list runs", err)
	}

	if opts.Format == "json" {
		return formatter.JSON(tokens)
	}
	for _, t := range tokens {
		formatter.Textf("%s", t)
	}
	return nil
}
