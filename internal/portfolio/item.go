package portfolio

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/spf13/cast"
)

// Item is one record of the portfolio dataset.
//
// Only the fields the query engine reads are decoded into struct fields. The
// record's original JSON is kept alongside them so responses carry every
// field of the source document, including ones this package knows nothing about.
type Item struct {
	ID          float64
	Category    string
	Title       string
	Description string
	Keywords    []string

	// noID is set for records whose id is missing or not a number; they never
	// match a lookup.
	noID bool
	raw  json.RawMessage
}

// itemFields is the shape written for items built in code.
type itemFields struct {
	ID          float64  `json:"id"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// UnmarshalJSON decodes the known fields and retains the full record.
// Field types are not enforced: numbers and booleans in text fields are read
// as their literal text, a single keyword may be given without an array, and
// anything else reads as empty. Only a record that is not a JSON object is
// rejected.
func (i *Item) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("record is null")
	}

	*i = Item{
		Category:    textField(fields["category"]),
		Title:       textField(fields["title"]),
		Description: textField(fields["description"]),
		Keywords:    keywordsField(fields["keywords"]),
		raw:         append(json.RawMessage(nil), bytes.TrimSpace(data)...),
	}
	if id, ok := fields["id"].(float64); ok {
		i.ID = id
	} else {
		i.noID = true
	}
	return nil
}

// textField reads a scalar as text. Objects and arrays read as empty.
func textField(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		return ""
	}
	return cast.ToString(v)
}

func keywordsField(v any) []string {
	switch kw := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(kw))
		for _, k := range kw {
			out = append(out, textField(k))
		}
		return out
	default:
		if s := textField(kw); s != "" {
			return []string{s}
		}
		return nil
	}
}

// MarshalJSON writes the record exactly as it was loaded. Items built in code
// (no source document) are written from their struct fields.
func (i Item) MarshalJSON() ([]byte, error) {
	if len(i.raw) > 0 {
		return i.raw, nil
	}
	return json.Marshal(itemFields{
		ID:          i.ID,
		Category:    i.Category,
		Title:       i.Title,
		Description: i.Description,
		Keywords:    i.Keywords,
	})
}

// hasID reports whether the item carries the numeric id.
func (i Item) hasID(id float64) bool {
	return !i.noID && i.ID == id
}

// searchText is the case-folded haystack used by keyword search:
// title, description and every keyword joined by single spaces.
func (i Item) searchText() string {
	parts := make([]string, 0, len(i.Keywords)+2)
	parts = append(parts, i.Title, i.Description)
	parts = append(parts, i.Keywords...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Dataset is the ordered, read-only sequence of items loaded at startup.
// No operation in this package modifies a Dataset after it is built, so it
// is safe to share between goroutines without locking.
type Dataset struct {
	items []Item

	// rejected describes records left out at load time.
	rejected []string
}

// NewDataset builds a Dataset from items. The slice is copied.
func NewDataset(items []Item) Dataset {
	cp := make([]Item, len(items))
	copy(cp, items)
	return Dataset{items: cp}
}

// Len returns the number of items.
func (d Dataset) Len() int { return len(d.items) }

// Items returns a copy of the items in dataset order.
func (d Dataset) Items() []Item {
	cp := make([]Item, len(d.items))
	copy(cp, d.items)
	return cp
}

// duplicateIDs reports ids that occur more than once, in first-seen order.
func (d Dataset) duplicateIDs() []float64 {
	seen := make(map[float64]int, len(d.items))
	var dups []float64
	for _, item := range d.items {
		if item.noID {
			continue
		}
		seen[item.ID]++
		if seen[item.ID] == 2 {
			dups = append(dups, item.ID)
		}
	}
	return dups
}
