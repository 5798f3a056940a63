package main

import (
	"github.com/aretw0/unabs/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [program]",
	Short: "Run an Unlambda program",
	Long: `Runs a program given as an argument, with --file, or on stdin (--file -).

With --session the run is checkpointed every --checkpoint-every steps and can
be resumed by running the same command again after a step limit or Ctrl+C.
With --interactive the machine state is printed before every step.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		opts := programOptions(cmd, args)
		opts.Interactive, _ = cmd.Flags().GetBool("interactive")
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.MaxSteps, _ = cmd.Flags().GetUint64("max-steps")
		opts.CheckpointEvery, _ = cmd.Flags().GetUint64("checkpoint-every")
		opts.ShowResult, _ = cmd.Flags().GetBool("result")

		return cli.Execute(cmd.Context(), env, opts, cli.StdIO())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("file", "f", "", "Read the program from a file ('-' for stdin)")
	runCmd.Flags().BoolP("interactive", "i", false, "Step through the program one transition at a time")
	runCmd.Flags().StringP("session", "s", "", "Persist the run under this session ID and resume it if it exists")
	runCmd.Flags().Bool("fresh", false, "Discard the session before running")
	runCmd.Flags().Uint64("max-steps", 0, "Stop after this many steps (0 uses the config value)")
	runCmd.Flags().Uint64("checkpoint-every", 0, "Steps between session saves (0 uses the config value)")
	runCmd.Flags().Bool("result", false, "Print the final value after the output")
	runCmd.MarkFlagsMutuallyExclusive("interactive", "session")
}
