package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/unabs"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of unabs",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "unabs version %s\n", strings.TrimSpace(unabs.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
