package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mockguard/mockguard/internal/adapters/outbound/history"
	"github.com/mockguard/mockguard/internal/domain"
)

const (
	contractURI = "mockguard://contract"
	historyURI  = "mockguard://history"
)

// registerResources registers all mockguard MCP resources on the given server.
func registerResources(s *server.MCPServer, p *project) {
	// 1. mockguard://contract - the loaded contract model
	s.AddResource(
		mcplib.NewResource(
			contractURI,
			"Contract",
			mcplib.WithResourceDescription("Paths, operations, parameters and response schemas of the configured OpenAPI contract"),
			mcplib.WithMIMEType("application/json"),
		),
		handleContractResource(p),
	)

	// 2. mockguard://history - recorded validation runs
	s.AddResource(
		mcplib.NewResource(
			historyURI,
			"Run History",
			mcplib.WithResourceDescription("Summaries of past validation runs, oldest first"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(p),
	)
}

func handleContractResource(p *project) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		c, err := p.loadContract(ctx, "")
		if err != nil {
			return nil, err
		}
		return jsonResource(contractURI, c)
	}
}

func handleHistoryResource(p *project) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New().Load(p.path)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		if entries == nil {
			entries = []domain.RunEntry{}
		}
		return jsonResource(historyURI, entries)
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
