package main

import (
	"fmt"
	"time"

	"github.com/aretw0/unabs/pkg/generator"
	"github.com/spf13/cobra"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Print a random Unlambda program",
	Long:  `Generates a syntactically complete random program. The same --seed always yields the same program.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetUint64("seed")
		if !cmd.Flags().Changed("seed") {
			seed = uint64(time.Now().UnixNano())
		}
		maxLength, _ := cmd.Flags().GetInt("max-length")

		rng := generator.NewRand(seed)
		fmt.Fprintln(cmd.OutOrStdout(), generator.Random(rng, generator.WithMaxLength(maxLength)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(randomCmd)
	randomCmd.Flags().Uint64("seed", 0, "Seed of the generator (default: current time)")
	randomCmd.Flags().Int("max-length", generator.DefaultMaxLength, "Soft cap on the program length")
}
