package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/aretw0/pushdown/pkg/presets"
	"github.com/spf13/cobra"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List the built-in example command sequences",
	RunE: func(cmd *cobra.Command, args []string) error {
		examples := presets.Examples()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return cli.WriteJSON(cmd.OutOrStdout(), examples)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tEXPECT\tCOMMANDS\tDESCRIPTION")
		for _, ex := range examples {
			cmds := make([]string, len(ex.Commands))
			for i, c := range ex.Commands {
				cmds[i] = string(c)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ex.Name, ex.Expect, strings.Join(cmds, " "), ex.Description)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
	examplesCmd.Flags().Bool("json", false, "Print as JSON")
}
