package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the transcript archive to agents.
type Server struct {
	series *archive.SeriesMap
	source archive.Source
	search *search.Service
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server over a loaded archive.
func NewServer(series *archive.SeriesMap, source archive.Source, svc *search.Service) *Server {
	s := &Server{
		series: series,
		source: source,
		search: svc,
	}

	s.mcp = server.NewMCPServer(
		"pod-search",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listSeriesTool, s.handleListSeries)
	s.mcp.AddTool(getTranscriptTool, s.handleGetTranscript)
	s.mcp.AddTool(searchEpisodesTool, s.handleSearchEpisodes)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
