package mapping

import "fmt"

// BiMapping pairs two independent mappings between a reduced (first) and a
// full (second) index space. ToSecond maps first-space rows into the second
// space, ToFirst the reverse. The two directions are not checked for mutual
// inverseness; callers supply mappings that are logically inverse over the
// ranges they care about.
type BiMapping struct {
	ToSecond Mapping
	ToFirst  Mapping
}

// NewBiMapping builds a BiMapping from two raw index lists.
func NewBiMapping(toSecond, toFirst []int) BiMapping {
	return BiMapping{ToSecond: New(toSecond...), ToFirst: New(toFirst...)}
}

// IdentityBi returns the identity BiMapping over n indices in both
// directions.
func IdentityBi(n int) BiMapping {
	return BiMapping{ToSecond: Identity(n), ToFirst: Identity(n)}
}

// Set is an ordered, name-keyed registry of bimappings, typically one per
// physical quantity ("q", "qdot", "tau", ...).
type Set struct {
	names  []string
	byName map[string]BiMapping
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{byName: make(map[string]BiMapping)}
}

// Add registers a bimapping built from two raw index lists. Registering a
// name twice is an error.
func (s *Set) Add(name string, toSecond, toFirst []int) error {
	return s.AddBiMapping(name, NewBiMapping(toSecond, toFirst))
}

// AddBiMapping registers an existing bimapping under name.
func (s *Set) AddBiMapping(name string, bm BiMapping) error {
	if _, ok := s.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	s.names = append(s.names, name)
	s.byName[name] = bm
	return nil
}

// Get returns the bimapping registered under name.
func (s *Set) Get(name string) (BiMapping, bool) {
	bm, ok := s.byName[name]
	return bm, ok
}

// Has reports whether name is registered.
func (s *Set) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Names returns the registered names in insertion order.
func (s *Set) Names() []string {
	c := make([]string, len(s.names))
	copy(c, s.names)
	return c
}
