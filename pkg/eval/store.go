package eval

import (
	"maps"
	"slices"

	"github.com/agenthands/snailz/pkg/core/value"
)

// Store is the variable table of one session. It is not safe for concurrent
// use; each session owns its own.
type Store struct {
	vars map[string]value.Value
}

func NewStore() *Store {
	return &Store{vars: make(map[string]value.Value)}
}

// Get looks up name. A missing name is reported, never defaulted.
func (s *Store) Get(name string) (value.Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Set binds name, replacing any previous binding.
func (s *Store) Set(name string, v value.Value) {
	s.vars[name] = v
}

func (s *Store) Len() int {
	return len(s.vars)
}

// Names returns the bound names in sorted order.
func (s *Store) Names() []string {
	return slices.Sorted(maps.Keys(s.vars))
}
