// Package portfolio holds the in-memory portfolio dataset and the query
// engine that answers the five fixed query shapes against it.
package portfolio

import (
	"slices"
	"strings"
	"time"

	"portfolio/internal/logging"
)

const (
	categoryContact   = "Contact"
	categoryTechStack = "Tech Stack"
	allFilter         = "all"
)

// SearchResult is the response of search_portfolio.
type SearchResult struct {
	Query        string `json:"query"`
	Category     string `json:"category"`
	ResultsCount int    `json:"resultsCount"`
	Results      []Item `json:"results"`
}

// CategoriesResult is the response of get_portfolio_categories.
type CategoriesResult struct {
	Categories []string `json:"categories"`
	TotalItems int      `json:"totalItems"`
}

// ContactResult is the response of get_contact_info.
type ContactResult struct {
	Contact []Item `json:"contact"`
}

// TechStackResult is the response of get_tech_stack.
type TechStackResult struct {
	TechStack  []Item `json:"techStack"`
	FilterType string `json:"filterType"`
}

// handler runs one operation against the engine's dataset.
type handler func(e *Engine, args map[string]any) (any, error)

// handlers maps each operation name to its implementation.
var handlers = map[string]handler{
	ToolSearchPortfolio: func(e *Engine, args map[string]any) (any, error) {
		var req SearchRequest
		if err := decodeArgs(args, &req); err != nil {
			return nil, err
		}
		return e.Search(req), nil
	},
	ToolGetPortfolioCategories: func(e *Engine, _ map[string]any) (any, error) {
		return e.Categories(), nil
	},
	ToolGetPortfolioItem: func(e *Engine, args map[string]any) (any, error) {
		var req ItemRequest
		if err := decodeArgs(args, &req); err != nil {
			return nil, err
		}
		return e.Item(req)
	},
	ToolGetContactInfo: func(e *Engine, _ map[string]any) (any, error) {
		return e.ContactInfo(), nil
	},
	ToolGetTechStack: func(e *Engine, args map[string]any) (any, error) {
		var req TechStackRequest
		if err := decodeArgs(args, &req); err != nil {
			return nil, err
		}
		return e.TechStack(req), nil
	},
}

// Operations returns the names of every operation the engine implements, sorted.
func Operations() []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Engine answers queries against a Dataset it owns.
type Engine struct {
	data   Dataset
	logger *logging.AppLogger
}

// NewEngine creates an Engine over data.
func NewEngine(data Dataset, logger *logging.AppLogger) *Engine {
	return &Engine{
		data:   data,
		logger: logger,
	}
}

// Dataset returns the dataset the engine serves.
func (e *Engine) Dataset() Dataset { return e.data }

// Call dispatches a request by operation name. The returned value is
// JSON-serializable. Unknown names fail with *UnknownToolError.
func (e *Engine) Call(name string, args map[string]any) (any, error) {
	h, ok := handlers[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}

	defer e.logger.LogPerformance(name, time.Now())
	e.logger.Debug("Executing query", "tool", name, "arguments", args)

	return h(e, args)
}

// Search returns items whose title, description or keywords contain the
// query, case-insensitively, optionally restricted to one category. Results
// keep dataset order and are capped at the request limit.
func (e *Engine) Search(req SearchRequest) SearchResult {
	term := strings.ToLower(req.Query)
	limit := req.limit()

	results := make([]Item, 0)
	for _, item := range e.data.items {
		if len(results) >= limit {
			break
		}
		if req.Category != "" && !strings.EqualFold(item.Category, req.Category) {
			continue
		}
		if strings.Contains(item.searchText(), term) {
			results = append(results, item)
		}
	}

	category := req.Category
	if category == "" {
		category = allFilter
	}

	return SearchResult{
		Query:        req.Query,
		Category:     category,
		ResultsCount: len(results),
		Results:      results,
	}
}

// Categories lists each distinct category once, in the order it first
// appears in the dataset.
func (e *Engine) Categories() CategoriesResult {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, item := range e.data.items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}

	return CategoriesResult{
		Categories: categories,
		TotalItems: e.data.Len(),
	}
}

// Item returns the first item whose id equals req.ID.
func (e *Engine) Item(req ItemRequest) (Item, error) {
	if req.ID != nil {
		for _, item := range e.data.items {
			if item.hasID(*req.ID) {
				return item, nil
			}
		}
	}
	return Item{}, &NotFoundError{ID: req.ID}
}

// ContactInfo returns the items in the "Contact" category. Unlike search,
// the category comparison is case-sensitive.
func (e *Engine) ContactInfo() ContactResult {
	return ContactResult{Contact: e.byCategory(categoryContact)}
}

// TechStack returns the items in the "Tech Stack" category, optionally
// narrowed to those whose title contains req.Type case-insensitively.
func (e *Engine) TechStack(req TechStackRequest) TechStackResult {
	items := e.byCategory(categoryTechStack)

	filterType := allFilter
	if req.Type != "" {
		filterType = req.Type
		needle := strings.ToLower(req.Type)
		items = slices.DeleteFunc(items, func(item Item) bool {
			return !strings.Contains(strings.ToLower(item.Title), needle)
		})
	}

	return TechStackResult{
		TechStack:  items,
		FilterType: filterType,
	}
}

// byCategory returns a fresh slice of items whose category equals name exactly.
func (e *Engine) byCategory(name string) []Item {
	items := make([]Item, 0)
	for _, item := range e.data.items {
		if item.Category == name {
			items = append(items, item)
		}
	}
	return items
}
