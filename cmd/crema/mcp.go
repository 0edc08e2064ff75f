package main

import (
	"github.com/aretw0/crema/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the translator to AI agents over stdio with the tools
translate_profile and list_transition_modes. Logs go to stderr so they never
corrupt the JSON-RPC stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, false)
		if err != nil {
			return err
		}
		defer app.Close()
		return cli.RunMCP(app)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	addModeFlag(mcpCmd)
}
