package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var kindProperty = map[string]interface{}{
	"type":        "string",
	"description": "Collection to use",
	"enum":        []string{"all", "projects", "posts"},
	"default":     "all",
}

func searchContentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_content",
		Description: "Fuzzy search portfolio projects and posts, optionally narrowed to records carrying any of the given tags",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text query; empty returns every record that passes the tag filter",
				},
				"tags": map[string]interface{}{
					"type":        "array",
					"description": "Exact tag names; a record matches if it has any of them",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
				"kind": kindProperty,
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     defaultLimit,
					"minimum":     1,
					"maximum":     maxLimit,
				},
			},
		},
	}
}

func listTagsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_tags",
		Description: "List filterable tags with the number of records carrying each",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"kind": kindProperty,
			},
		},
	}
}

func getRecordTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_record",
		Description: "Fetch one project or post by id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Project id or post slug",
				},
			},
			Required: []string{"id"},
		},
	}
}
