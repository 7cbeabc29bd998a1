package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mockguard/mockguard/internal/adapters/outbound/mappings"
	"github.com/mockguard/mockguard/internal/application"
	"github.com/mockguard/mockguard/internal/domain"
)

// registerTools registers all mockguard MCP tools on the given server.
func registerTools(s *server.MCPServer, p *project) {
	// 1. mockguard_validate
	s.AddTool(
		mcplib.NewTool("mockguard_validate",
			mcplib.WithDescription("Check every WireMock mapping against the OpenAPI contract and return the findings as JSON. Contract and mappings default to .mockguard.yaml."),
			mcplib.WithString("contract", mcplib.Description("Contract path relative to the project")),
			mcplib.WithString("mappings", mcplib.Description("Mappings directory relative to the project")),
			mcplib.WithArray("checks",
				mcplib.WithStringItems(mcplib.Enum(checkKindNames()...)),
				mcplib.Description("Only report these check kinds (default: all)"),
			),
			mcplib.WithBoolean("strict", mcplib.Description("Treat warnings as failures when computing passed")),
		),
		handleValidate(p),
	)

	// 2. mockguard_list_paths
	s.AddTool(
		mcplib.NewTool("mockguard_list_paths",
			mcplib.WithDescription("List the paths and methods the contract declares, in the order mappings are matched against them"),
			mcplib.WithString("contract", mcplib.Description("Contract path relative to the project (default: from .mockguard.yaml)")),
		),
		handleListPaths(p),
	)

	// 3. mockguard_check_mapping
	s.AddTool(
		mcplib.NewTool("mockguard_check_mapping",
			mcplib.WithDescription("Check a single WireMock mapping given as JSON, without writing it to disk"),
			mcplib.WithString("mapping", mcplib.Required(), mcplib.Description("WireMock mapping JSON (a single mapping or a {\"mappings\": [...]} file)")),
			mcplib.WithString("contract", mcplib.Description("Contract path relative to the project (default: from .mockguard.yaml)")),
		),
		handleCheckMapping(p),
	)
}

type validateOutput struct {
	Passed     bool             `json:"passed"`
	CommitHash string           `json:"commitHash,omitempty"`
	Fixtures   int              `json:"fixtures"`
	Summary    domain.Summary   `json:"summary"`
	Results    []domain.Finding `json:"results"`
}

func handleValidate(p *project) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := p.config()
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if c := request.GetString("contract", ""); c != "" {
			cfg.Contract = c
		}
		if m := request.GetString("mappings", ""); m != "" {
			cfg.Mappings = m
		}
		if checks := request.GetStringSlice("checks", nil); len(checks) > 0 {
			skip, err := complement(checks)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			cfg.Skip = skip
		}
		cfg.Strict = request.GetBool("strict", cfg.Strict)

		res, err := p.runService(cfg).Run(ctx, p.path, cfg)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}

		out := validateOutput{
			Passed:     !res.GateFailed(cfg.Strict),
			CommitHash: res.CommitHash,
			Fixtures:   res.Fixtures,
			Summary:    res.Summary(),
			Results:    res.Findings,
		}
		if out.Results == nil {
			out.Results = []domain.Finding{}
		}
		return jsonResult(out)
	}
}

type pathOutput struct {
	Template   string            `json:"template"`
	Operations []operationOutput `json:"operations"`
}

type operationOutput struct {
	Method      domain.HTTPMethod `json:"method"`
	OperationID string            `json:"operationId"`
	Parameters  []string          `json:"queryParameters,omitempty"`
}

func handleListPaths(p *project) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		c, err := p.loadContract(ctx, request.GetString("contract", ""))
		if err != nil {
			return errorResult(err.Error()), nil
		}

		out := make([]pathOutput, 0, len(c.Paths))
		for _, item := range c.Paths {
			po := pathOutput{Template: item.Template, Operations: []operationOutput{}}
			for _, op := range item.Operations {
				oo := operationOutput{Method: op.Method, OperationID: op.Identifier(item.Template)}
				for _, param := range op.Parameters {
					if param.IsQuery() {
						oo.Parameters = append(oo.Parameters, param.Name)
					}
				}
				po.Operations = append(po.Operations, oo)
			}
			out = append(out, po)
		}
		return jsonResult(out)
	}
}

func handleCheckMapping(p *project) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, err := request.RequireString("mapping")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := p.config()
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if c := request.GetString("contract", ""); c != "" {
			cfg.Contract = c
		}
		c, err := p.loadContract(ctx, cfg.Contract)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		fixtures, err := mappings.Decode("mapping", "", []byte(raw))
		if err != nil {
			return errorResult(err.Error()), nil
		}

		// Body files resolve against the configured mappings directory.
		mappingsDir := p.path
		if cfg.Mappings != "" {
			mappingsDir = application.ResolvePath(p.path, cfg.Mappings)
		}

		res := &domain.Results{}
		svc := p.validator(cfg)
		for _, fx := range fixtures {
			if !fx.Complete() {
				return errorResult(fmt.Sprintf("%s needs both a request and a response", fx.Name)), nil
			}
			res.Fixtures++
			res.Add(svc.CheckFixture(c, mappingsDir, fx)...)
		}

		out := validateOutput{
			Passed:   res.Valid(),
			Fixtures: res.Fixtures,
			Summary:  res.Summary(),
			Results:  res.Findings,
		}
		if out.Results == nil {
			out.Results = []domain.Finding{}
		}
		return jsonResult(out)
	}
}

func checkKindNames() []string {
	names := make([]string, 0, len(domain.CheckKinds))
	for _, k := range domain.CheckKinds {
		names = append(names, string(k))
	}
	return names
}

// complement turns a list of kinds to keep into the list of kinds to skip.
func complement(keep []string) ([]string, error) {
	wanted := make(map[domain.CheckKind]bool, len(keep))
	for _, s := range keep {
		k, err := domain.ParseCheckKind(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		wanted[k] = true
	}
	var skip []string
	for _, k := range domain.CheckKinds {
		if !wanted[k] {
			skip = append(skip, string(k))
		}
	}
	return skip, nil
}

// jsonResult marshals v as indented JSON into a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
