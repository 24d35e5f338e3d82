package main

import (
	"fmt"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/aretw0/pushdown/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [commands...]",
	Short: "Export the state diagram",
	Long: `Outputs the transition table as a Mermaid flowchart or a Graphviz digraph.

When commands (or --example) are given, they are simulated first and the states
the run went through are highlighted.`,
	Example: `  pushdown graph --format dot | dot -Tsvg > pizza.svg
  pushdown graph --example invalid`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		example, _ := cmd.Flags().GetString("example")

		env, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		var overlay *graph.Overlay
		if len(args) > 0 || example != "" {
			commands, err := cli.ResolveCommands(args, example, cmd.InOrStdin())
			if err != nil {
				return err
			}
			res, err := env.Engine.Simulate(cmd.Context(), commands)
			if err != nil {
				return err
			}
			overlay = graph.OverlayFromResult(res)
		}

		switch format {
		case "mermaid":
			fmt.Fprint(cmd.OutOrStdout(), graph.Mermaid(env.Engine.Table(), overlay))
		case "dot":
			fmt.Fprint(cmd.OutOrStdout(), graph.DOT(env.Engine.Table(), overlay))
		default:
			return fmt.Errorf("unknown graph format %q (want mermaid or dot)", format)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("format", "f", "mermaid", "Diagram format: mermaid, dot")
	graphCmd.Flags().StringP("example", "e", "", "Highlight the run of a built-in example")
}
