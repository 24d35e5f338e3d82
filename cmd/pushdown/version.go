package main

import (
	"fmt"

	"github.com/aretw0/pushdown"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pushdown",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pushdown version %s\n", pushdown.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
