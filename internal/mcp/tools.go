package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.seanlatimer.dev/folio/internal/content"
	"go.seanlatimer.dev/folio/internal/querystate"
	"go.seanlatimer.dev/folio/internal/search"
)

var ErrInvalidArguments = errors.New("invalid arguments")

type searchHit struct {
	ID                   string           `json:"id"`
	Title                string           `json:"title"`
	Href                 *string          `json:"href"`
	Date                 *string          `json:"date"`
	Tags                 []string         `json:"tags"`
	Score                float64          `json:"score"`
	TitleHighlight       []search.Segment `json:"title_highlight"`
	DescriptionHighlight []search.Segment `json:"description_highlight"`
}

func (s *Server) handleSearchContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	kind, err := content.ParseKind(getStringDefault(args, "kind", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := getIntDefault(args, "limit", defaultLimit)
	if limit < 1 || limit > maxLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", maxLimit)), nil
	}

	state := querystate.State{
		Query: getStringDefault(args, "query", ""),
		Tags:  getStrings(args, "tags"),
	}.Normalize()

	results := s.engine.Search(s.lib.Records(kind), state.Query, state.Tags)
	total := len(results)
	if len(results) > limit {
		results = results[:limit]
	}

	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, searchHit{
			ID:                   r.Record.ID,
			Title:                r.Record.Title,
			Href:                 r.Record.Href,
			Date:                 r.Record.Date,
			Tags:                 r.Record.Tags,
			Score:                r.Score,
			TitleHighlight:       search.Highlight(r.Record.Title, state.Query),
			DescriptionHighlight: search.Highlight(r.Record.Description, state.Query),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"query":   state.Query,
		"tags":    state.Tags,
		"url":     querystate.Encode(s.basePath, state),
		"total":   total,
		"results": hits,
	})), nil
}

func (s *Server) handleListTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	kind, err := content.ParseKind(getStringDefault(args, "kind", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	idx := search.BuildTagIndex(s.lib.Records(kind)).Restrict(s.lib.Allowed(kind))
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"kind": kind,
		"tags": idx.List(),
	})), nil
}

func (s *Server) handleGetRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(getStringDefault(args, "id", ""))
	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	rec, ok := s.lib.Lookup(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("record %q not found", id)), nil
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{"record": rec})), nil
}

// arguments accepts a missing argument object as empty.
func arguments(request mcp.CallToolRequest) (map[string]interface{}, error) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, ErrInvalidArguments
	}
	return args, nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// getStrings reads an array of strings or a comma-separated string.
func getStrings(args map[string]interface{}, key string) []string {
	switch val := args[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return val
	case string:
		if val == "" {
			return nil
		}
		return strings.Split(val, ",")
	default:
		return nil
	}
}
