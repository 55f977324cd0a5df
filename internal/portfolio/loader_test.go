package portfolio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_FirstExistingCandidateWins(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")
	first := writeDataFile(t, dir, "first.json", `[{"id":1,"category":"Contact","title":"Email","description":"","keywords":[]}]`)
	second := writeDataFile(t, dir, "second.json", `[{"id":2},{"id":3}]`)

	logger, buf := logging.NewTestLogger()
	loader := NewLoader(logger, []string{missing, first, second}, 0)

	path, ok := loader.Resolve()
	require.True(t, ok)
	assert.Equal(t, first, path)

	ds := loader.Load()
	assert.Equal(t, 1, ds.Len())
	assert.Contains(t, buf.String(), "Portfolio data loaded")
	assert.Contains(t, buf.String(), "items=1")
}

func TestLoader_DirectoriesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	data := writeDataFile(t, dir, "data/ai-portfolio.json", `[{"id":1}]`)

	logger, _ := logging.NewTestLogger()
	loader := NewLoader(logger, []string{dir, data}, 0)

	path, ok := loader.Resolve()
	require.True(t, ok)
	assert.Equal(t, data, path)
}

func TestLoader_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
		noFile  bool
		logText string
	}{
		{name: "no candidate exists", noFile: true, logText: "No portfolio data file found"},
		{name: "malformed JSON", content: `[{"id":1,`, logText: "Failed to load portfolio data"},
		{name: "object instead of array", content: `{"id":1}`, logText: "Failed to load portfolio data"},
		{name: "null document", content: `null`, logText: "expected a JSON array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "ai-portfolio.json")
			if !tt.noFile {
				writeDataFile(t, dir, "ai-portfolio.json", tt.content)
			}

			logger, buf := logging.NewTestLogger()
			ds := NewLoader(logger, []string{path}, 0).Load()

			assert.Equal(t, 0, ds.Len())
			assert.Contains(t, buf.String(), tt.logText)
			assert.Contains(t, buf.String(), "ERRO")

			// every query still answers
			engine := NewEngine(ds, logger)
			assert.Equal(t, 0, engine.Search(SearchRequest{}).ResultsCount)
			assert.Equal(t, 0, engine.Categories().TotalItems)
			assert.Empty(t, engine.ContactInfo().Contact)
		})
	}
}

func TestLoader_FileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := writeDataFile(t, dir, "big.json", `[`+strings.Repeat(`{"id":1},`, 100)+`{"id":2}]`)

	logger, buf := logging.NewTestLogger()
	ds := NewLoader(logger, []string{path}, 64).Load()

	assert.Equal(t, 0, ds.Len())
	assert.Contains(t, buf.String(), "exceeds limit")
}

func TestLoader_WarnsOnDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	path := writeDataFile(t, dir, "dups.json", `[{"id":1},{"id":2},{"id":1}]`)

	logger, buf := logging.NewTestLogger()
	ds := NewLoader(logger, []string{path}, 0).Load()

	assert.Equal(t, 3, ds.Len())
	assert.Contains(t, buf.String(), "duplicate ids")
}

func TestLoader_TolerantFieldTypes(t *testing.T) {
	dir := t.TempDir()
	path := writeDataFile(t, dir, "mixed.json", `[
		{"id": 1, "category": "Contact", "title": "Email", "description": "a@b.c", "keywords": ["email"]},
		{"id": 2, "category": "Experience", "title": "Acme", "description": "Built things", "keywords": ["go"]},
		{"id": 1.5, "category": "Experience", "title": "Contract", "description": null, "keywords": "freelance"},
		{"id": "four", "category": "Education", "title": 2019, "description": {"school": "X"}, "keywords": [true, 7]}
	]`)

	logger, buf := logging.NewTestLogger()
	ds := NewLoader(logger, []string{path}, 0).Load()

	require.Equal(t, 4, ds.Len())
	assert.NotContains(t, buf.String(), "ERRO")
	assert.Contains(t, buf.String(), "Portfolio data loaded")

	items := ds.Items()
	assert.Equal(t, 1.5, items[2].ID)
	assert.Equal(t, "", items[2].Description)
	assert.Equal(t, []string{"freelance"}, items[2].Keywords)
	assert.Equal(t, "2019", items[3].Title)
	assert.Equal(t, "", items[3].Description)
	assert.Equal(t, []string{"true", "7"}, items[3].Keywords)

	engine := NewEngine(ds, logger)

	got, err := engine.Item(ItemRequest{ID: ptr(1.5)})
	require.NoError(t, err)
	assert.Equal(t, "Contract", got.Title)

	// a non-numeric id never matches, not even 0
	_, err = engine.Item(ItemRequest{ID: ptr(0)})
	assert.Error(t, err)

	byYear := engine.Search(SearchRequest{Query: "2019"}).Results
	require.Len(t, byYear, 1)
	assert.Equal(t, "2019", byYear[0].Title)

	byKeyword := engine.Search(SearchRequest{Query: "freelance"}).Results
	require.Len(t, byKeyword, 1)
	assert.Equal(t, "Contract", byKeyword[0].Title)

	// the record is served as written
	out, err := json.Marshal(items[3])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "four", "category": "Education", "title": 2019, "description": {"school": "X"}, "keywords": [true, 7]}`, string(out))
}

func TestLoader_SkipsRecordsThatAreNotObjects(t *testing.T) {
	dir := t.TempDir()
	path := writeDataFile(t, dir, "odd.json", `[{"id":1,"title":"kept"}, 42, null, ["x"], {"id":2,"title":"also kept"}]`)

	logger, buf := logging.NewTestLogger()
	ds := NewLoader(logger, []string{path}, 0).Load()

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "kept", ds.Items()[0].Title)
	assert.Equal(t, "also kept", ds.Items()[1].Title)
	assert.Contains(t, buf.String(), "Skipped portfolio records")
	assert.Contains(t, buf.String(), "record 1")
	assert.Contains(t, buf.String(), "record 3")
}

func TestLoadFile_EmptyArray(t *testing.T) {
	dir := t.TempDir()
	path := writeDataFile(t, dir, "empty.json", `[]`)

	ds, err := LoadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestItem_PassesThroughUnknownFields(t *testing.T) {
	ds, err := LoadFile(filepath.Join("testdata", "portfolio.json"), 0)
	require.NoError(t, err)

	var linkedIn Item
	for _, item := range ds.Items() {
		if item.ID == 4 {
			linkedIn = item
		}
	}

	out, err := json.Marshal(linkedIn)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "https://linkedin.com/in/test", decoded["url"])
	assert.Equal(t, float64(2), decoded["priority"])
	assert.Equal(t, "LinkedIn", decoded["title"])
}

func TestItem_MarshalWithoutSource(t *testing.T) {
	out, err := json.Marshal(Item{ID: 9, Category: "Education", Title: "Degree", Keywords: []string{"degree"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":9,"category":"Education","title":"Degree","description":"","keywords":["degree"]}`, string(out))
}
