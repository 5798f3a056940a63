package main

import (
	"github.com/aretw0/unabs/internal/cli"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse and run the program library",
	Long: `The library is a directory of Markdown documents whose front matter names
a program (id, title, description, expect, limits.max_steps) and whose body
is its source.`,
}

var libraryLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the library programs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dir")
		lib, err := env.Library(dir)
		if err != nil {
			return err
		}
		return cli.ListLibrary(cmd.Context(), lib, cmd.OutOrStdout())
	},
}

var libraryRunCmd = &cobra.Command{
	Use:   "run <program-id>",
	Short: "Run a library program and check its expected output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dir")
		lib, err := env.Library(dir)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunLibraryProgram(ctx, env, lib, args[0], cli.StdIO())
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryLsCmd)
	libraryCmd.AddCommand(libraryRunCmd)

	libraryCmd.PersistentFlags().String("dir", "", "Library directory (default from config)")
}
