package model

import (
	"errors"
	"testing"
)

func TestItemValidate(t *testing.T) {
	if err := (Item{ID: 1, Description: "Buy milk"}).Validate(); err != nil {
		t.Fatalf("expected valid item, got error: %v", err)
	}
	err := (Item{ID: 0, Description: "x"}).Validate()
	if err == nil || !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got: %v", err)
	}
	err = (Item{ID: 3, Description: "   "}).Validate()
	if err == nil || !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got: %v", err)
	}
	err = (Item{ID: 4, Description: "caf\xe9"}).Validate()
	if !errors.Is(err, ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText, got: %v", err)
	}
}

func TestValidateListRejectsDuplicateIDs(t *testing.T) {
	items := []Item{{ID: 1, Description: "a"}, {ID: 2, Description: "b"}, {ID: 1, Description: "c"}}
	err := ValidateList(items)
	if err == nil || !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got: %v", err)
	}
	if err := ValidateList(nil); err != nil {
		t.Fatalf("empty list should be valid: %v", err)
	}
}

func TestNextID(t *testing.T) {
	if got := NextID(nil); got != 1 {
		t.Fatalf("NextID(empty) = %d, want 1", got)
	}
	items := []Item{{ID: 4}, {ID: 9}, {ID: 2}}
	if got := NextID(items); got != 10 {
		t.Fatalf("NextID = %d, want 10", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	items := []Item{{ID: 1, Description: "a"}}
	out := Clone(items)
	out[0].Checked = true
	if items[0].Checked {
		t.Fatal("clone shares backing array with source")
	}
	if Clone(nil) == nil {
		t.Fatal("clone of nil should be an empty, non-nil slice")
	}
}

func TestAllChecked(t *testing.T) {
	if AllChecked(nil) {
		t.Fatal("empty list is never all checked")
	}
	if AllChecked([]Item{{ID: 1, Checked: true}, {ID: 2}}) {
		t.Fatal("expected false with a pending item")
	}
	if !AllChecked([]Item{{ID: 1, Checked: true}, {ID: 2, Checked: true}}) {
		t.Fatal("expected true when every item is checked")
	}
}

func TestFilterModeToggleAndParse(t *testing.T) {
	var m FilterMode
	if m != FilterPending {
		t.Fatalf("zero value should be pending, got %s", m)
	}
	if m.Toggle() != FilterCompleted || m.Toggle().Toggle() != FilterPending {
		t.Fatal("toggle should flip between the two modes")
	}
	got, err := ParseFilterMode(" Done ")
	if err != nil || got != FilterCompleted {
		t.Fatalf("ParseFilterMode(done) = %v, %v", got, err)
	}
	if _, err := ParseFilterMode("later"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got: %v", err)
	}
	if !FilterCompleted.Matches(Item{Checked: true}) || FilterPending.Matches(Item{Checked: true}) {
		t.Fatal("Matches should compare checked against the mode")
	}
}
