package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/aretw0/pushdown/internal/validator"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the transition table for consistency",
	Long: `Loads the table and reports every configuration error (duplicate keys,
undeclared states or symbols, bottom-marker misuse). It then looks for
unreachable states, dead ends and unused stack symbols.

Structural findings are warnings unless --strict is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		path, _ := cmd.Flags().GetString("table")
		out := cmd.OutOrStdout()

		table, err := cli.TableLoader(path).LoadTable(cmd.Context())
		if err != nil {
			if errors.Is(err, domain.ErrConfiguration) {
				fmt.Fprintln(out, "Table is invalid:")
				for _, ce := range domain.ConfigErrors(err) {
					fmt.Fprintf(out, "  - [%s] %s\n", ce.Kind, ce.Detail)
				}
				return &exitError{code: 1}
			}
			return err
		}

		report := validator.Analyze(table)
		if report.OK() {
			fmt.Fprintf(out, "Table %q is valid! ✅ (%d states, %d rules)\n", table.Name(), len(table.States()), table.Len())
			return nil
		}

		fmt.Fprintf(out, "Table %q is well-formed, with warnings:\n", table.Name())
		for _, f := range report.Findings() {
			fmt.Fprintf(out, "  - %s\n", f)
		}
		if strict {
			return &exitError{code: 1}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat structural warnings as errors")
}
