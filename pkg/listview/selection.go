package listview

import "github.com/google/uuid"

// Selection tracks the ids chosen for a bulk action. It is scoped to the
// currently filtered view only at the moment of a toggle: changing the filter
// afterwards neither shrinks nor grows an existing selection.
type Selection struct {
	ids map[uuid.UUID]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[uuid.UUID]struct{})}
}

// ToggleOne adds the id if absent, removes it if present.
func (s *Selection) ToggleOne(id uuid.UUID) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// ToggleAll implements the header checkbox: if every visible id is already
// selected the whole selection is cleared, otherwise the selection becomes
// exactly the visible set.
func (s *Selection) ToggleAll(visible []uuid.UUID) {
	if len(visible) > 0 && s.allSelected(visible) {
		s.Clear()
		return
	}
	s.ids = make(map[uuid.UUID]struct{}, len(visible))
	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) allSelected(visible []uuid.UUID) bool {
	for _, id := range visible {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}

// Clear drops every selected id.
func (s *Selection) Clear() {
	s.ids = make(map[uuid.UUID]struct{})
}

// Has reports whether id is selected.
func (s *Selection) Has(id uuid.UUID) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected ids.
func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the selected ids in unspecified order.
func (s *Selection) IDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}
