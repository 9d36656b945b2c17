// Package breakpoint maps viewport widths onto indexes of per-breakpoint
// style arrays.
package breakpoint

import (
	"math"
	"sort"
)

// Breakpoint is a named minimum width.
type Breakpoint struct {
	Name  string
	Width float64
}

// Table is an immutable list of breakpoints sorted by ascending threshold.
type Table struct {
	entries []Breakpoint
}

// NewTable builds a Table from a name to threshold map. Ties on width are
// ordered by name so the result is deterministic.
func NewTable(thresholds map[string]float64) Table {
	entries := make([]Breakpoint, 0, len(thresholds))
	for name, width := range thresholds {
		entries = append(entries, Breakpoint{Name: name, Width: width})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Width == entries[j].Width {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Width < entries[j].Width
	})
	return Table{entries: entries}
}

// Len returns the number of breakpoints.
func (t Table) Len() int {
	return len(t.entries)
}

// Names returns breakpoint names in ascending threshold order.
func (t Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, entry := range t.entries {
		names[i] = entry.Name
	}
	return names
}

// Lookup returns the threshold registered under name.
func (t Table) Lookup(name string) (float64, bool) {
	for _, entry := range t.entries {
		if entry.Name == name {
			return entry.Width, true
		}
	}
	return 0, false
}

// At returns the breakpoint at index i, clamped into the table.
func (t Table) At(i int) (Breakpoint, bool) {
	if len(t.entries) == 0 {
		return Breakpoint{}, false
	}
	return t.entries[Clamp(i, len(t.entries))], true
}

// IndexFor returns the index of the widest threshold that is <= width.
// Widths below every threshold, NaN and an empty table all yield 0.
func (t Table) IndexFor(width float64) int {
	if math.IsNaN(width) {
		return 0
	}
	// first entry strictly wider than width; the one before it applies
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Width > width
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// ResolveIndex maps width onto an index into a style array of count entries.
func (t Table) ResolveIndex(width float64, count int) int {
	return Clamp(t.IndexFor(width), count)
}

// Clamp restricts index to [0, count-1]. A non-positive count yields 0.
func Clamp(index, count int) int {
	if count <= 0 || index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}

// precision is the number of decimal places kept when comparing widths.
const precision = 2

// Round rounds v to the comparison precision so layout noise such as
// 399.99999 does not compare unequal to 400.
func Round(v float64) float64 {
	scale := math.Pow(10, precision)
	return math.Round(v*scale) / scale
}
