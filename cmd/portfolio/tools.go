package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"portfolio/internal/mcp"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const listingWidth = 80

var (
	toolNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5fd2"))

	paramNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5fd7ff"))

	paramTypeStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8"))

	requiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaf00"))
)

func (a *app) toolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderTools(cmd.OutOrStdout(), listingWidth)
		},
	}
	cmd.Flags().BoolVar(&a.noColor, "no-color", false, "disable colors and styling")
	return cmd
}

type toolSchema struct {
	Properties map[string]struct {
		Type        string `json:"type"`
		Description string `json:"description"`
		Default     any    `json:"default"`
	} `json:"properties"`
	Required []string `json:"required"`
}

// renderTools writes the catalog with descriptions wrapped to width.
func renderTools(w io.Writer, width int) error {
	var b strings.Builder

	for i, tool := range mcp.Tools() {
		if i > 0 {
			b.WriteString("\n")
		}

		var schema toolSchema
		if err := json.Unmarshal(tool.RawInputSchema, &schema); err != nil {
			return fmt.Errorf("invalid schema for %s: %w", tool.Name, err)
		}

		b.WriteString(toolNameStyle.Render(tool.Name) + "\n")
		b.WriteString(indent.String(wordwrap.String(tool.Description, width-2), 2) + "\n")

		if len(schema.Properties) == 0 {
			b.WriteString(indent.String(paramTypeStyle.Render("no arguments"), 2) + "\n")
			continue
		}

		for _, name := range slices.Sorted(maps.Keys(schema.Properties)) {
			prop := schema.Properties[name]

			line := paramNameStyle.Render(name) + " " + paramTypeStyle.Render(prop.Type)
			if slices.Contains(schema.Required, name) {
				line += " " + requiredStyle.Render("required")
			}
			if prop.Default != nil {
				line += " " + paramTypeStyle.Render(fmt.Sprintf("default %v", prop.Default))
			}
			b.WriteString(indent.String(line, 2) + "\n")

			if prop.Description != "" {
				b.WriteString(indent.String(wordwrap.String(prop.Description, width-4), 4) + "\n")
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
