// Package mcp exposes portfolio search as Model Context Protocol tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"go.seanlatimer.dev/folio/internal/content"
	"go.seanlatimer.dev/folio/internal/search"
)

const (
	ServerName    = "folio"
	ServerVersion = "1.0.0"

	defaultLimit = 10
	maxLimit     = 100
)

// Server wraps the MCP server with the loaded library.
type Server struct {
	mcp      *server.MCPServer
	lib      content.Library
	engine   search.Engine
	basePath string
}

func NewServer(lib content.Library, engine search.Engine, basePath string) *Server {
	if basePath == "" {
		basePath = "/"
	}
	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		lib:      lib,
		engine:   engine,
		basePath: basePath,
	}
	s.registerTools()
	return s
}

// Serve runs on stdio and blocks until the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(searchContentTool(), s.handleSearchContent)
	s.mcp.AddTool(listTagsTool(), s.handleListTags)
	s.mcp.AddTool(getRecordTool(), s.handleGetRecord)
}
