// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/storyforgehq/storyforge/internal/tool"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transcript tools over MCP stdio for editor assistants",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(&mcp.Implementation{
			Name:    "storyforge",
			Version: "0.1.0",
		}, nil)

		mcp.AddTool(server, tool.MetadataValidateTranscript, tool.ValidateTranscript)
		mcp.AddTool(server, tool.MetadataAlignTranscript, tool.AlignTranscript)

		return server.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}
