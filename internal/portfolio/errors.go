package portfolio

import (
	"fmt"
	"strconv"
)

// NotFoundError is returned when no item carries the requested id.
// ID is nil when the caller did not supply one.
type NotFoundError struct {
	ID *float64
}

func (e *NotFoundError) Error() string {
	id := "undefined"
	if e.ID != nil {
		id = strconv.FormatFloat(*e.ID, 'f', -1, 64)
	}
	return fmt.Sprintf("Portfolio item with ID %s not found", id)
}

// UnknownToolError is returned when a request names an operation the engine
// does not implement.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}
