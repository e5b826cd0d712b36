// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes grocery list tools to the recipe assistant via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/chefassist/marketrun/internal/listservice"
	"github.com/chefassist/marketrun/internal/models"
)

// Server wraps the MCP server with Marketrun tools.
type Server struct {
	mcp *server.MCPServer
	svc *listservice.Service
}

// New creates a new MCP server with all grocery list tools registered.
func New(svc *listservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Marketrun",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_grocery_list",
		mcp.WithDescription("Fetch a user's aggregated grocery list, deduplicated and grouped by aisle."),
		mcp.WithString("user", mcp.Required(), mcp.Description("User identifier")),
	), s.getList)

	s.mcp.AddTool(mcp.NewTool("add_recipe_to_list",
		mcp.WithDescription("Add (or replace) a recipe's ingredients on the user's grocery list. "+
			"The list is re-aggregated and the full updated list is returned."),
		mcp.WithString("user", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithString("recipe", mcp.Required(), mcp.Description("Recipe name")),
		mcp.WithString("ingredients", mcp.Required(),
			mcp.Description(`JSON array of ingredients, e.g. [{"name":"Garlic","quantity":"2","unit":"cloves"}]`)),
	), s.addRecipe)

	s.mcp.AddTool(mcp.NewTool("remove_recipe_from_list",
		mcp.WithDescription("Remove one recipe's contribution from the user's grocery list. "+
			"Items contributed only by that recipe disappear."),
		mcp.WithString("user", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithString("recipe", mcp.Required(), mcp.Description("Recipe name")),
	), s.removeRecipe)

	s.mcp.AddTool(mcp.NewTool("clear_grocery_list",
		mcp.WithDescription("Empty the user's grocery list entirely."),
		mcp.WithString("user", mcp.Required(), mcp.Description("User identifier")),
	), s.clearList)

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

func (s *Server) getList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := req.RequireString("user")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.svc.Get(ctx, user)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return snapshotResult(snap)
}

func (s *Server) addRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := req.RequireString("user")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recipe, err := req.RequireString("recipe")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rawIngredients, err := req.RequireString("ingredients")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var ingredients []models.Ingredient
	if err := json.Unmarshal([]byte(rawIngredients), &ingredients); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid ingredients JSON: %v", err)), nil
	}

	snap, err := s.svc.AddRecipe(ctx, user, recipe, ingredients)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return snapshotResult(snap)
}

func (s *Server) removeRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := req.RequireString("user")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recipe, err := req.RequireString("recipe")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.svc.RemoveRecipe(ctx, user, recipe)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return snapshotResult(snap)
}

func (s *Server) clearList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := req.RequireString("user")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.svc.Clear(ctx, user)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return snapshotResult(snap)
}

func snapshotResult(snap models.Snapshot) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
