package stdlib

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/agenthands/snailz/pkg/core/value"
)

// Sorter orders a list for the sort operator. Implementations must not
// modify the slice they are given.
type Sorter interface {
	Sort(items []value.Value) ([]value.Value, error)
}

const (
	SortShuffle       = "shuffle"
	SortDeterministic = "deterministic"
)

// NewSorter returns the strategy registered under name. A zero seed draws a
// random one.
func NewSorter(name string, seed uint64) (Sorter, error) {
	switch name {
	case "", SortShuffle:
		return NewShuffleSorter(seed), nil
	case SortDeterministic:
		return DeterministicSorter{}, nil
	default:
		return nil, fmt.Errorf("stdlib: unknown sort strategy %q", name)
	}
}

// IsSorted reports whether every adjacent pair satisfies a <= b.
func IsSorted(items []value.Value) (bool, error) {
	for i := 0; i+1 < len(items); i++ {
		c, err := value.Compare(items[i], items[i+1])
		if err != nil {
			return false, err
		}
		if c > 0 {
			return false, nil
		}
	}
	return true, nil
}

// ShuffleSorter permutes uniformly at random until the list is sorted.
type ShuffleSorter struct {
	Rand *rand.Rand
}

func NewShuffleSorter(seed uint64) *ShuffleSorter {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &ShuffleSorter{Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *ShuffleSorter) Sort(items []value.Value) ([]value.Value, error) {
	out := slices.Clone(items)
	if len(out) < 2 {
		return out, nil
	}
	for {
		sorted, err := IsSorted(out)
		if err != nil {
			return nil, err
		}
		if sorted {
			return out, nil
		}
		s.Rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
}

// DeterministicSorter is a stable comparison sort for tests.
type DeterministicSorter struct{}

func (DeterministicSorter) Sort(items []value.Value) ([]value.Value, error) {
	out := slices.Clone(items)
	if len(out) < 2 {
		return out, nil
	}
	var cmpErr error
	slices.SortStableFunc(out, func(a, b value.Value) int {
		c, err := value.Compare(a, b)
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return c
	})
	if cmpErr != nil {
		return nil, cmpErr
	}
	return out, nil
}
