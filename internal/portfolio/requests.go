package portfolio

import (
	"encoding/json"
	"fmt"
	"math"
)

// Operation names as exposed in the tool catalog.
const (
	ToolSearchPortfolio        = "search_portfolio"
	ToolGetPortfolioCategories = "get_portfolio_categories"
	ToolGetPortfolioItem       = "get_portfolio_item"
	ToolGetContactInfo         = "get_contact_info"
	ToolGetTechStack           = "get_tech_stack"
)

// DefaultSearchLimit is used when search_portfolio is called without a limit.
const DefaultSearchLimit = 10

// SearchRequest holds the arguments of search_portfolio.
// A missing query is the empty string and therefore matches every item.
type SearchRequest struct {
	Query    string   `json:"query"`
	Category string   `json:"category,omitempty"`
	Limit    *float64 `json:"limit,omitempty"`
}

// limit returns the effective result cap. Fractional limits truncate toward
// zero and negative limits yield no results.
func (r SearchRequest) limit() int {
	if r.Limit == nil {
		return DefaultSearchLimit
	}
	n := math.Trunc(*r.Limit)
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// ItemRequest holds the arguments of get_portfolio_item.
type ItemRequest struct {
	ID *float64 `json:"id"`
}

// TechStackRequest holds the arguments of get_tech_stack.
type TechStackRequest struct {
	Type string `json:"type,omitempty"`
}

// decodeArgs converts an untyped argument mapping into a typed request.
// A nil mapping decodes to the zero request.
func decodeArgs(args map[string]any, target any) error {
	if len(args) == 0 {
		return nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
