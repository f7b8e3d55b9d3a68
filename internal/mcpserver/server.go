// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Wunjo recipe tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/wunjo/internal/filter"
	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/normalize"
	"github.com/starford/wunjo/internal/recipeservice"
	"github.com/starford/wunjo/internal/tags"
)

// Server wraps the MCP server with Wunjo tools.
type Server struct {
	mcp      *server.MCPServer
	svc      *recipeservice.Service
	registry *tags.Registry
}

// New creates a new MCP server with all Wunjo tools registered.
func New(svc *recipeservice.Service, registry *tags.Registry) *Server {
	s := &Server{svc: svc, registry: registry}

	s.mcp = server.NewMCPServer(
		"Wunjo",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_recipes",
		mcp.WithDescription("Search the recipe catalog. All criteria are optional and combine "+
			"conjunctively: the term matches name, ingredient lines, and tags case-insensitively; "+
			"course and category must match a tag exactly."),
		mcp.WithString("term", mcp.Description("Free-text search term")),
		mcp.WithString("course", mcp.Description("Exact course tag to filter by")),
		mcp.WithString("category", mcp.Description("Exact category tag to filter by")),
	), s.searchRecipes)

	s.mcp.AddTool(mcp.NewTool("get_recipe",
		mcp.WithDescription("Read a single recipe in its canonical JSON form."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Recipe id")),
	), s.getRecipe)

	s.mcp.AddTool(mcp.NewTool("create_recipe",
		mcp.WithDescription("Create a new recipe. Ingredients and directions are passed as "+
			"newline-delimited text and stored as ordered lists. Read the contract first via "+
			"the get_recipe_contract tool or the wunjo://recipe-format resource."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Recipe name")),
		mcp.WithString("ingredients", mcp.Description("Ingredient lines, one per line")),
		mcp.WithString("directions", mcp.Description("Direction steps, one per line")),
		mcp.WithString("course", mcp.Description("Comma-separated course tags")),
		mcp.WithString("categories", mcp.Description("Comma-separated category tags")),
		mcp.WithString("notes", mcp.Description("Free-text notes")),
	), s.createRecipe)

	s.mcp.AddTool(mcp.NewTool("list_recipes",
		mcp.WithDescription("List every recipe as 'id\\tname' lines."),
	), s.listRecipes)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("Return the shared course and category tag vocabularies."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("get_recipe_contract",
		mcp.WithDescription("Returns the canonical Wunjo recipe format contract. "+
			"Call this before creating or updating recipes to ensure correct structure."),
	), s.getRecipeContract)

	// Resource: recipe format contract.
	s.mcp.AddResource(
		mcp.NewResource("wunjo://recipe-format", "Recipe Format Contract",
			mcp.WithResourceDescription("Canonical recipe document shape that all recipes follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecipeFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := filter.Query{
		Term:     req.GetString("term", ""),
		Course:   req.GetString("course", ""),
		Category: req.GetString("category", ""),
	}
	recipes, err := s.svc.List(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(recipes, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recipe, err := s.svc.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(recipe, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r := models.Recipe{
		Name:        name,
		Ingredients: normalize.Lines(req.GetString("ingredients", "")),
		Directions:  normalize.Lines(req.GetString("directions", "")),
		Course:      splitTags(req.GetString("course", "")),
		Categories:  splitTags(req.GetString("categories", "")),
		Notes:       req.GetString("notes", ""),
	}

	created, err := s.svc.Create(ctx, r)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", created.ID)), nil
}

func (s *Server) listRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipes, err := s.svc.List(ctx, filter.Query{})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var lines []string
	for _, r := range recipes {
		lines = append(lines, r.ID+"\t"+r.Name)
	}
	if len(lines) == 0 {
		return mcp.NewToolResultText("no recipes"), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := s.registry.Get()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(t, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getRecipeContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RecipeFormatContract), nil
}

func (s *Server) readRecipeFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "wunjo://recipe-format",
			MIMEType: "text/markdown",
			Text:     RecipeFormatContract,
		},
	}, nil
}

// splitTags parses a comma-separated tag list, trimming and dropping empties.
func splitTags(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
