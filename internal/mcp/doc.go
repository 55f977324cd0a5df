// Package mcp provides the Model Context Protocol (MCP) server for the
// portfolio dataset, built on mcp-go.
//
// The server exposes a static catalog of five read-only tools that query the
// in-memory portfolio.Engine:
//
//   - search_portfolio: keyword search, optionally filtered by category
//   - get_portfolio_categories: distinct categories and the item count
//   - get_portfolio_item: one item by numeric id
//   - get_contact_info: items in the "Contact" category
//   - get_tech_stack: items in the "Tech Stack" category, optionally by title
//
// # Implementation
//
// The package uses the mcp-go library (github.com/mark3labs/mcp-go). Tool
// arguments are checked against each tool's input schema before the engine
// runs; only argument types are enforced. Every successful call returns one
// text content holding the result as two-space indented JSON. Failed lookups,
// bad argument types and unknown tools are reported as JSON-RPC errors with
// the message "Error executing tool <name>: <reason>".
//
// # Usage
//
// The MCP server is typically started as a subprocess by AI assistants that support
// MCP integration. It can also be started manually for testing:
//
//	portfolio serve
//
// The server will read JSON-RPC requests from stdin and write responses to stdout
// until it receives EOF or is terminated. Logs go to stderr.
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
package mcp
