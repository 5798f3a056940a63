package main

import (
	"github.com/aretw0/unabs/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [program]",
	Short: "Export the program tree as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph TD) of the program's application tree.
With --session, the session's program is drawn and the term the machine is
evaluating is highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		opts := programOptions(cmd, args)
		opts.SessionID, _ = cmd.Flags().GetString("session")

		stdio := cli.StdIO()
		stdio.Out = cmd.OutOrStdout()
		return cli.Graph(cmd.Context(), env, opts, stdio)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("file", "f", "", "Read the program from a file ('-' for stdin)")
	graphCmd.Flags().StringP("session", "s", "", "Draw the program of this session with its current position")
}
