package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listSeriesTool defines the list_series MCP tool.
var listSeriesTool = mcp.NewTool("list_series",
	mcp.WithDescription("List the podcast series in the archive, or the episodes of one series."),
	mcp.WithString("series",
		mcp.Description("Series key to list episodes for; omit to list every series"),
	),
)

// getTranscriptTool defines the get_transcript MCP tool.
var getTranscriptTool = mcp.NewTool("get_transcript",
	mcp.WithDescription("Get the timestamped transcript of one episode."),
	mcp.WithString("series",
		mcp.Required(),
		mcp.Description("Series key exactly as list_series returns it"),
	),
	mcp.WithString("episode",
		mcp.Required(),
		mcp.Description("Episode name exactly as list_series returns it"),
	),
	mcp.WithString("start",
		mcp.Description("Only return rows from this timestamp on, e.g. 00:12:30"),
	),
)

// searchEpisodesTool defines the search_episodes MCP tool.
var searchEpisodesTool = mcp.NewTool("search_episodes",
	mcp.WithDescription("Search transcripts. Uses the search service when reachable and falls back to matching episode names."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Text to search for"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)
