package mcp

import (
	"encoding/json"

	"portfolio/internal/portfolio"

	"github.com/mark3labs/mcp-go/mcp"
)

// The catalog is declared with raw schemas so the published input
// descriptors carry defaults and additionalProperties exactly as written.
var catalog = []mcp.Tool{
	newReadOnlyTool(
		portfolio.ToolSearchPortfolio,
		"Search through Srikanth's portfolio data by keywords, category, or content",
		`{
			"type": "object",
			"properties": {
				"query": {
					"type": "string",
					"description": "Search query to find relevant portfolio information"
				},
				"category": {
					"type": "string",
					"description": "Filter by specific category (e.g., \"Tech Stack\", \"Experience\", \"Education\")"
				},
				"limit": {
					"type": "number",
					"description": "Maximum number of results to return (default: 10)",
					"default": 10
				}
			},
			"required": ["query"]
		}`,
	),
	newReadOnlyTool(
		portfolio.ToolGetPortfolioCategories,
		"Get all available categories in the portfolio data",
		`{"type": "object", "properties": {}, "additionalProperties": false}`,
	),
	newReadOnlyTool(
		portfolio.ToolGetPortfolioItem,
		"Get a specific portfolio item by ID",
		`{
			"type": "object",
			"properties": {
				"id": {
					"type": "number",
					"description": "The ID of the portfolio item to retrieve"
				}
			},
			"required": ["id"]
		}`,
	),
	newReadOnlyTool(
		portfolio.ToolGetContactInfo,
		"Get all contact information for Srikanth",
		`{"type": "object", "properties": {}, "additionalProperties": false}`,
	),
	newReadOnlyTool(
		portfolio.ToolGetTechStack,
		"Get detailed information about Srikanth's technical skills and tools",
		`{
			"type": "object",
			"properties": {
				"type": {
					"type": "string",
					"description": "Filter by specific tech type (e.g., \"Programming Languages\", \"Cloud Platforms\")"
				}
			}
		}`,
	),
}

func newReadOnlyTool(name, description, schema string) mcp.Tool {
	tool := mcp.NewToolWithRawSchema(name, description, json.RawMessage(schema))
	tool.Annotations = mcp.ToolAnnotation{
		ReadOnlyHint:    mcp.ToBoolPtr(true),
		DestructiveHint: mcp.ToBoolPtr(false),
		IdempotentHint:  mcp.ToBoolPtr(true),
		OpenWorldHint:   mcp.ToBoolPtr(false),
	}
	return tool
}

// Tools returns the static tool catalog in registration order.
func Tools() []mcp.Tool {
	out := make([]mcp.Tool, len(catalog))
	copy(out, catalog)
	return out
}

// LookupTool returns the catalog entry for name.
func LookupTool(name string) (mcp.Tool, bool) {
	for _, tool := range catalog {
		if tool.Name == name {
			return tool, true
		}
	}
	return mcp.Tool{}, false
}
