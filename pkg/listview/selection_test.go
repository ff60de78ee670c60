package listview

import (
	"testing"

	"github.com/google/uuid"
)

func TestToggleOne(t *testing.T) {
	s := NewSelection()
	id := uuid.New()

	s.ToggleOne(id)
	if !s.Has(id) || s.Count() != 1 {
		t.Fatalf("expected id selected after first toggle")
	}
	s.ToggleOne(id)
	if s.Has(id) || s.Count() != 0 {
		t.Fatalf("expected id deselected after second toggle")
	}
}

func TestToggleAll(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	visible := []uuid.UUID{a, b}

	s := NewSelection()

	// Nothing selected: header click selects exactly the visible set.
	s.ToggleAll(visible)
	if s.Count() != 2 || !s.Has(a) || !s.Has(b) {
		t.Fatalf("expected exactly the visible set, got %d selected", s.Count())
	}

	// All visible selected: header click clears everything.
	s.ToggleAll(visible)
	if s.Count() != 0 {
		t.Fatalf("expected cleared selection, got %d", s.Count())
	}

	// Partial selection including an off-view id: header click replaces the
	// selection with the visible set, dropping the off-view id.
	s.ToggleOne(a)
	s.ToggleOne(c)
	s.ToggleAll(visible)
	if s.Count() != 2 || s.Has(c) {
		t.Fatalf("expected selection replaced by visible set, got %d with c=%v", s.Count(), s.Has(c))
	}
}

func TestToggleAllEmptyVisible(t *testing.T) {
	s := NewSelection()
	s.ToggleOne(uuid.New())
	s.ToggleAll(nil)
	if s.Count() != 0 {
		t.Fatalf("expected empty selection after toggling an empty view")
	}
}

func TestSelectionSurvivesFilterChange(t *testing.T) {
	// The selection holds ids, not rows; deriving a narrower view does not
	// shrink it until the next toggle.
	a, b := uuid.New(), uuid.New()
	s := NewSelection()
	s.ToggleOne(a)
	s.ToggleOne(b)

	if s.Count() != 2 {
		t.Fatalf("expected both ids to stay selected, got %d", s.Count())
	}
	ids := s.IDs()
	if len(ids) != 2 {
		t.Fatalf("IDs() returned %d entries", len(ids))
	}
}
