package components

import (
	"github.com/alexisbeaulieu97/placard/internal/visibility"
)

// PhaseEntry represents one conditional node for rendering.
type PhaseEntry struct {
	ID    string
	Phase visibility.Phase
	Match bool
}

// PhaseList lists conditional nodes with their visibility phase.
type PhaseList struct {
	entries []PhaseEntry
}

// NewPhaseList constructs a phase list from mounted controllers.
func NewPhaseList(ctrls []*visibility.Controller) PhaseList {
	entries := make([]PhaseEntry, 0, len(ctrls))
	for _, c := range ctrls {
		entries = append(entries, PhaseEntry{ID: c.ID(), Phase: c.Phase(), Match: c.LastMatch()})
	}
	return PhaseList{entries: entries}
}

// Entries returns the ordered entries.
func (l PhaseList) Entries() []PhaseEntry {
	clone := make([]PhaseEntry, len(l.entries))
	copy(clone, l.entries)
	return clone
}

// Transitioning reports whether any entry is between hidden and visible.
func (l PhaseList) Transitioning() bool {
	for _, e := range l.entries {
		if e.Phase.Transitional() {
			return true
		}
	}
	return false
}
