// Package variables tracks declared decision variables and their occupied
// index ranges within a phase's flat state or control vector.
package variables

import (
	"errors"
	"fmt"

	"github.com/san-kum/trajopt/internal/symbolic"
)

var (
	// ErrDuplicateName indicates a variable name declared twice within the
	// same registry.
	ErrDuplicateName = errors.New("variables: name already declared")

	// ErrRange indicates an index range outside the registry's width.
	ErrRange = errors.New("variables: index range out of bounds")
)

// Entry is one declared variable: its reduced- and full-space placeholder
// vectors and the contiguous row range it occupies in the flat vector.
// Columns is the control-type multiplier (values held per shooting
// interval); states always have one column.
type Entry struct {
	Name    string
	Reduced symbolic.Vector
	Full    symbolic.Vector
	Start   int
	End     int
	Columns int
}

// Width is the number of rows the entry occupies.
func (e Entry) Width() int { return e.End - e.Start }

// DecisionWidth is the flattened per-node width, rows times columns.
func (e Entry) DecisionWidth() int { return e.Width() * e.Columns }

// Indices returns the occupied flat row indices in order.
func (e Entry) Indices() []int {
	idx := make([]int, e.Width())
	for i := range idx {
		idx[i] = e.Start + i
	}
	return idx
}

// Registry is an ordered, name-keyed container of declared variables for
// one role (state, control or state-derivative) of one phase. Ranges are
// contiguous and assigned in declaration order.
type Registry struct {
	entries []Entry
	byName  map[string]int
	width   int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Append declares a variable. The row width is the reduced vector's length;
// columns is the control-type multiplier (pass 1 for states). Duplicate
// names are a configuration error.
func (r *Registry) Append(name string, reduced, full symbolic.Vector, columns int) (Entry, error) {
	if _, ok := r.byName[name]; ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if columns < 1 {
		return Entry{}, fmt.Errorf("variables: %q declared with %d columns", name, columns)
	}
	e := Entry{
		Name:    name,
		Reduced: reduced,
		Full:    full,
		Start:   r.width,
		End:     r.width + reduced.Len(),
		Columns: columns,
	}
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, e)
	r.width = e.End
	return e, nil
}

// Get returns the entry declared under name.
func (r *Registry) Get(name string) (Entry, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Entries returns the declared entries in declaration order.
func (r *Registry) Entries() []Entry {
	c := make([]Entry, len(r.entries))
	copy(c, r.entries)
	return c
}

// Names returns the declared names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Len reports the number of declared variables.
func (r *Registry) Len() int { return len(r.entries) }

// Width is the total row width, the sum of all entry widths.
func (r *Registry) Width() int { return r.width }

// DecisionWidth is the total flattened per-node width, accounting for each
// entry's column multiplier.
func (r *Registry) DecisionWidth() int {
	w := 0
	for _, e := range r.entries {
		w += e.DecisionWidth()
	}
	return w
}
