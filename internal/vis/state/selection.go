package state

import "github.com/elektrokombinacija/planes-gen/internal/core"

// Selection is the entity picked in the workspace.
type Selection struct {
	Active bool
	Kind   core.EntityKind
	Index  int
}

// Select picks entity i of kind. Selecting the current entity again clears it.
func (s *Selection) Select(kind core.EntityKind, i int) {
	if s.Is(kind, i) {
		s.Clear()
		return
	}
	s.Active, s.Kind, s.Index = true, kind, i
}

// Clear drops the selection.
func (s *Selection) Clear() {
	*s = Selection{}
}

// Is reports whether entity i of kind is selected.
func (s *Selection) Is(kind core.EntityKind, i int) bool {
	return s.Active && s.Kind == kind && s.Index == i
}
