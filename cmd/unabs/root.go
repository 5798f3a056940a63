package main

import (
	"fmt"
	"os"

	"github.com/aretw0/unabs/internal/cli"
	"github.com/aretw0/unabs/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "unabs",
	Short: "unabs runs Unlambda programs on a sharing abstract machine",
	Long: `unabs evaluates Unlambda programs step by step on an abstract machine
with first-class continuations. Runs can be bounded, single-stepped,
checkpointed into sessions and resumed later, or served over HTTP and MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// loadEnv reads the persistent flags and the config file they point to.
func loadEnv(cmd *cobra.Command) (*cli.Env, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.NewEnv(path, debug)
}

// programOptions fills the program source from the first argument or --file.
func programOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	file, _ := cmd.Flags().GetString("file")
	opts := cli.RunOptions{File: file}
	if file == "" && len(args) > 0 {
		opts.Source = args[0]
	}
	return opts
}
