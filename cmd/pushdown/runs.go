package main

import (
	"fmt"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs [id]",
	Short: "List recorded runs or show one of them",
	Long: `Without arguments, lists the IDs of the runs kept in the configured store,
most recent first. With an ID, prints that run.

Requires --store file or --store redis; the memory store does not outlive the process.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.Engine.Store() == nil {
			return fmt.Errorf("no run store configured (use --store file or --store redis)")
		}

		if len(args) == 1 {
			rec, err := env.Engine.LoadRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format == cli.FormatJSON {
				return cli.WriteJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Run %s at %s\n\n", rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"))
			return cli.WriteResult(cmd.OutOrStdout(), &rec.Result, format)
		}

		ids, err := env.Engine.Runs(cmd.Context())
		if err != nil {
			return err
		}
		if format == cli.FormatJSON {
			return cli.WriteJSON(cmd.OutOrStdout(), ids)
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, json, markdown")
}
