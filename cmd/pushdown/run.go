package main

import (
	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [commands...]",
	Short: "Simulate a command sequence",
	Long: `Runs the given commands through the automaton and prints the trace and verdict.

Commands may be separate arguments or comma separated. Use "-" to read them
from stdin, or --example to run a built-in sequence.

Exit status is 0 when the input is accepted and 2 when it is rejected.`,
	Example: `  pushdown run order pizza toppings done done pay
  pushdown run order,pizza,pay --format json
  pushdown run --example valid`,
	RunE: func(cmd *cobra.Command, args []string) error {
		example, _ := cmd.Flags().GetString("example")
		format, _ := cmd.Flags().GetString("format")

		commands, err := cli.ResolveCommands(args, example, cmd.InOrStdin())
		if err != nil {
			return err
		}

		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		rec, err := env.Engine.Run(cmd.Context(), commands)
		if rec == nil {
			return err
		}
		if err != nil {
			env.Logger.Warn("run not recorded", "error", err)
		} else if env.Engine.Store() != nil {
			env.Logger.Info("run recorded", "run_id", rec.ID)
		}

		if err := cli.WriteResult(cmd.OutOrStdout(), &rec.Result, format); err != nil {
			return err
		}
		if !rec.Result.Verdict.Accepted() {
			return &exitError{code: 2}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("example", "e", "", "Run a built-in example (see 'pushdown examples')")
	runCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, json, markdown")
}
