package portfolio

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"portfolio/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEngine loads testdata/portfolio.json into an engine.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	ds, err := LoadFile(filepath.Join("testdata", "portfolio.json"), 0)
	require.NoError(t, err)
	require.Equal(t, 8, ds.Len())

	logger, _ := logging.NewTestLogger()
	return NewEngine(ds, logger)
}

func ids(items []Item) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = int(item.ID)
	}
	return out
}

func ptr(f float64) *float64 { return &f }

func TestSearch(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name     string
		req      SearchRequest
		wantIDs  []int
		category string
	}{
		{"matches title description and keywords", SearchRequest{Query: "cloud"}, []int{1, 6, 7}, "all"},
		{"keyword match", SearchRequest{Query: "devops"}, []int{1, 2, 7}, "all"},
		{"single match", SearchRequest{Query: "python"}, []int{5}, "all"},
		{"no match", SearchRequest{Query: "nonexistentterm123"}, []int{}, "all"},
		{"case-insensitive query", SearchRequest{Query: "CLOUD"}, []int{1, 6, 7}, "all"},
		{"empty query matches everything", SearchRequest{}, []int{1, 2, 3, 4, 5, 6, 7, 8}, "all"},
		{"category filter", SearchRequest{Query: "test", Category: "Contact"}, []int{3, 4}, "Contact"},
		{"category filter is case-insensitive", SearchRequest{Category: "CONTACT"}, []int{3, 4}, "CONTACT"},
		{"query and category combine", SearchRequest{Query: "aws", Category: "Tech Stack"}, []int{6}, "Tech Stack"},
		{"unknown category", SearchRequest{Query: "test", Category: "NonExistent"}, []int{}, "NonExistent"},
		{"limit keeps dataset order", SearchRequest{Query: "engineer", Limit: ptr(2)}, []int{1, 2}, "all"},
		{"limit zero", SearchRequest{Query: "cloud", Limit: ptr(0)}, []int{}, "all"},
		{"negative limit", SearchRequest{Query: "cloud", Limit: ptr(-1)}, []int{}, "all"},
		{"fractional limit truncates", SearchRequest{Query: "cloud", Limit: ptr(1.9)}, []int{1}, "all"},
		{"limit larger than results", SearchRequest{Query: "cloud", Limit: ptr(1000)}, []int{1, 6, 7}, "all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Search(tt.req)

			assert.Equal(t, tt.wantIDs, ids(res.Results))
			assert.Equal(t, len(tt.wantIDs), res.ResultsCount)
			assert.Equal(t, tt.category, res.Category)
			assert.Equal(t, tt.req.Query, res.Query)

			term := strings.ToLower(tt.req.Query)
			for _, item := range res.Results {
				assert.Contains(t, item.searchText(), term)
				if tt.req.Category != "" {
					assert.True(t, strings.EqualFold(item.Category, tt.req.Category))
				}
			}
		})
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	items := make([]Item, 25)
	for i := range items {
		items[i] = Item{ID: float64(i + 1), Category: "Experience", Title: "Project", Keywords: []string{"go"}}
	}
	logger, _ := logging.NewTestLogger()
	engine := NewEngine(NewDataset(items), logger)

	res := engine.Search(SearchRequest{Query: "go"})
	assert.Equal(t, DefaultSearchLimit, res.ResultsCount)
	assert.Equal(t, float64(1), res.Results[0].ID)
	assert.Equal(t, float64(10), res.Results[9].ID)
}

func TestCategories(t *testing.T) {
	engine := newTestEngine(t)

	res := engine.Categories()

	assert.Equal(t, 8, res.TotalItems)
	assert.Equal(t, []string{
		"Profile Summary",
		"Current Position",
		"Contact",
		"Tech Stack",
		"Experience",
		"Education",
	}, res.Categories)
}

func TestItem(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("every item is reachable by its id", func(t *testing.T) {
		for _, want := range engine.Dataset().Items() {
			got, err := engine.Item(ItemRequest{ID: ptr(want.ID)})
			require.NoError(t, err)
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Title, got.Title)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := engine.Item(ItemRequest{ID: ptr(999)})
		var nf *NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "Portfolio item with ID 999 not found", err.Error())
	})

	t.Run("non-integral id never matches", func(t *testing.T) {
		_, err := engine.Item(ItemRequest{ID: ptr(1.5)})
		assert.EqualError(t, err, "Portfolio item with ID 1.5 not found")
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := engine.Item(ItemRequest{})
		assert.EqualError(t, err, "Portfolio item with ID undefined not found")
	})
}

func TestItem_DuplicateIDsReturnFirst(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	engine := NewEngine(NewDataset([]Item{
		{ID: 1, Title: "first"},
		{ID: 1, Title: "second"},
	}), logger)

	got, err := engine.Item(ItemRequest{ID: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
}

func TestContactInfo(t *testing.T) {
	engine := newTestEngine(t)

	res := engine.ContactInfo()
	assert.Equal(t, []int{3, 4}, ids(res.Contact))
}

func TestContactInfo_CaseSensitive(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	engine := NewEngine(NewDataset([]Item{
		{ID: 1, Category: "contact", Title: "lowercase"},
		{ID: 2, Category: "Contact", Title: "exact"},
		{ID: 3, Category: "CONTACT", Title: "uppercase"},
	}), logger)

	assert.Equal(t, []int{2}, ids(engine.ContactInfo().Contact))
	// search treats the same category case-insensitively
	assert.Equal(t, 3, engine.Search(SearchRequest{Category: "contact"}).ResultsCount)
}

func TestTechStack(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name       string
		req        TechStackRequest
		wantIDs    []int
		filterType string
	}{
		{"all tech stack items", TechStackRequest{}, []int{5, 6}, "all"},
		{"title filter", TechStackRequest{Type: "cloud"}, []int{6}, "cloud"},
		{"title filter is case-insensitive", TechStackRequest{Type: "PROGRAMMING"}, []int{5}, "PROGRAMMING"},
		{"description is not searched", TechStackRequest{Type: "python"}, []int{}, "python"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.TechStack(tt.req)
			assert.Equal(t, tt.wantIDs, ids(res.TechStack))
			assert.Equal(t, tt.filterType, res.FilterType)
			for _, item := range res.TechStack {
				assert.Equal(t, "Tech Stack", item.Category)
			}
		})
	}
}

func TestEmptyDataset(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	engine := NewEngine(Dataset{}, logger)

	search := engine.Search(SearchRequest{})
	assert.Equal(t, 0, search.ResultsCount)
	assert.NotNil(t, search.Results)

	cats := engine.Categories()
	assert.Equal(t, 0, cats.TotalItems)
	assert.Empty(t, cats.Categories)

	assert.Empty(t, engine.ContactInfo().Contact)
	assert.Empty(t, engine.TechStack(TechStackRequest{}).TechStack)

	_, err := engine.Item(ItemRequest{ID: ptr(1)})
	assert.Error(t, err)
}

func TestCall(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("dispatches search with decoded arguments", func(t *testing.T) {
		out, err := engine.Call(ToolSearchPortfolio, map[string]any{"query": "cloud", "limit": 2})
		require.NoError(t, err)
		res, ok := out.(SearchResult)
		require.True(t, ok, "unexpected result type %T", out)
		assert.Equal(t, []int{1, 6}, ids(res.Results))
	})

	t.Run("nil arguments", func(t *testing.T) {
		out, err := engine.Call(ToolGetTechStack, nil)
		require.NoError(t, err)
		assert.Equal(t, "all", out.(TechStackResult).FilterType)
	})

	t.Run("item lookup failure propagates", func(t *testing.T) {
		_, err := engine.Call(ToolGetPortfolioItem, map[string]any{"id": 42})
		var nf *NotFoundError
		assert.True(t, errors.As(err, &nf))
	})

	t.Run("wrongly typed argument", func(t *testing.T) {
		_, err := engine.Call(ToolSearchPortfolio, map[string]any{"query": 7})
		assert.ErrorContains(t, err, "invalid arguments")
	})

	t.Run("unknown operation", func(t *testing.T) {
		_, err := engine.Call("delete_everything", nil)
		var unknown *UnknownToolError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "delete_everything", unknown.Name)
		assert.EqualError(t, err, "Unknown tool: delete_everything")
	})
}

func TestOperations(t *testing.T) {
	assert.Equal(t, []string{
		ToolGetContactInfo,
		ToolGetPortfolioCategories,
		ToolGetPortfolioItem,
		ToolGetTechStack,
		ToolSearchPortfolio,
	}, Operations())
}

// The worked example: two items, one per fixed category.
func TestWorkedExample(t *testing.T) {
	var items []Item
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":1,"category":"Contact","title":"Email","description":"reach me","keywords":["email","contact"]},
		{"id":2,"category":"Tech Stack","title":"Python","description":"language","keywords":["python","backend"]}
	]`), &items))

	logger, _ := logging.NewTestLogger()
	engine := NewEngine(NewDataset(items), logger)

	search := engine.Search(SearchRequest{Query: "python"})
	assert.Equal(t, 1, search.ResultsCount)
	assert.Equal(t, []int{2}, ids(search.Results))

	assert.Equal(t, []int{1}, ids(engine.ContactInfo().Contact))
	assert.Equal(t, []int{2}, ids(engine.TechStack(TechStackRequest{Type: "Python"}).TechStack))

	_, err := engine.Item(ItemRequest{ID: ptr(3)})
	assert.EqualError(t, err, "Portfolio item with ID 3 not found")
}
