package main

import (
	"fmt"

	"github.com/aretw0/unabs/internal/cli"
	"github.com/aretw0/unabs/pkg/term"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [program]",
	Short: "Check a program for syntax errors",
	Long:  `Parses the program and prints it in canonical form, without comments or whitespace.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := cli.ReadProgram(programOptions(cmd, args), cmd.InOrStdin())
		if err != nil {
			return err
		}

		t, err := term.Parse(src)
		if err != nil {
			return fmt.Errorf("syntax error at %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, t)
		fmt.Fprintf(out, "%d nodes\n", term.Size(t))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("file", "f", "", "Read the program from a file ('-' for stdin)")
}
