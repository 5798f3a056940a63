package main

import (
	"github.com/aretw0/unabs/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the engine as a JSON API over HTTP: one-shot runs, parsing,
resumable sessions in the configured store, the program library and
Prometheus metrics on /metrics. The API is described at /openapi.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		opts := cli.ServeOptions{}
		opts.Port, _ = cmd.Flags().GetInt("port")
		opts.LibraryPath, _ = cmd.Flags().GetString("library")
		opts.NoLibrary, _ = cmd.Flags().GetBool("no-library")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Serve(ctx, env, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (0 uses the config value)")
	serveCmd.Flags().String("library", "", "Program library directory (default from config)")
	serveCmd.Flags().Bool("no-library", false, "Disable the program library endpoints")
}
