package cli

import (
	"path/filepath"

	mcpadapter "github.com/mockguard/mockguard/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the mockguard MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		projectPath string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start mockguard MCP server (stdio)",
		Long:  "Start the mockguard MCP server using stdio transport. This lets AI coding assistants validate mocks and inspect the contract while they edit them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return err
			}
			// stdout carries the protocol; logs go to stderr.
			s := mcpadapter.NewMockguardMCPServer(absPath, newLogger(cmd.ErrOrStderr(), verbose))
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log debug details to stderr")

	return cmd
}
