package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidID        = errors.New("model: item id must be positive")
	ErrEmptyDescription = errors.New("model: item description is required")
	ErrInvalidText      = errors.New("model: item description is not valid utf-8")
	ErrDuplicateID      = errors.New("model: duplicate item id")
	ErrInvalidFilter    = errors.New("model: invalid filter mode")
)

type Item struct {
	ID          int
	Description string
	Checked     bool
}

func (i Item) Validate() error {
	if i.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, i.ID)
	}
	if strings.TrimSpace(i.Description) == "" {
		return ErrEmptyDescription
	}
	if !utf8.ValidString(i.Description) {
		return ErrInvalidText
	}
	return nil
}

// ValidateList checks every item and that ids are unique across the list.
func ValidateList(items []Item) error {
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// NextID returns max(existing ids)+1, or 1 for an empty list.
func NextID(items []Item) int {
	highest := 0
	for _, item := range items {
		if item.ID > highest {
			highest = item.ID
		}
	}
	return highest + 1
}

func Clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func IndexOf(items []Item, id int) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func AllChecked(items []Item) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if !item.Checked {
			return false
		}
	}
	return true
}

type FilterMode int

const (
	FilterPending FilterMode = iota
	FilterCompleted
)

func (m FilterMode) String() string {
	switch m {
	case FilterCompleted:
		return "completed"
	default:
		return "pending"
	}
}

func (m FilterMode) Toggle() FilterMode {
	if m == FilterCompleted {
		return FilterPending
	}
	return FilterCompleted
}

func (m FilterMode) Matches(item Item) bool {
	return item.Checked == (m == FilterCompleted)
}

func ParseFilterMode(raw string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "todo", "open":
		return FilterPending, nil
	case "completed", "done", "selesai":
		return FilterCompleted, nil
	default:
		return FilterPending, fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
}
