package main

import (
	"github.com/aretw0/unabs/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts unabs as an MCP server, exposing run_program, parse_program and
generate_program as tools and the program library as resources.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		opts := cli.ServeOptions{}
		opts.Transport, _ = cmd.Flags().GetString("transport")
		opts.Port, _ = cmd.Flags().GetInt("port")
		opts.LibraryPath, _ = cmd.Flags().GetString("library")
		opts.NoLibrary, _ = cmd.Flags().GetBool("no-library")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.ServeMCP(ctx, env, opts)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 0, "Port to listen on (only for SSE; 0 uses the config value)")
	mcpCmd.Flags().String("library", "", "Program library directory (default from config)")
	mcpCmd.Flags().Bool("no-library", false, "Do not expose the program library")
}
