// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"github.com/harperreed/nutri/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP lets AI assistants read profiles, log food, and compute insights through
a standardized protocol. The server communicates via stdin/stdout; logs go
to stderr.

CLIENT CONFIGURATION:

  {
    "mcpServers": {
      "nutri": {
        "command": "nutri",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  create_profile   Create a health profile
  get_profile      Get a profile with derived age and BMI
  update_profile   Update selected profile fields
  list_profiles    List all profiles
  log_food         Log a food entry
  list_entries     List entries for a day
  delete_entry     Delete an entry by ID
  get_insight      Compute a day's nutrition insight

AVAILABLE RESOURCES:

  nutri://profiles   All profiles
  nutri://today      Today's entries and totals per profile`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo,
			mcp.WithLogger(logger),
			mcp.WithDefaultProfile(cfg.DefaultProfile),
		)
		if err != nil {
			return err
		}

		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
