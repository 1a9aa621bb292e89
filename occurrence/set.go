// Package occurrence models one-hour availability occurrences and the set
// algebra used to combine them across users.
package occurrence

import (
	"slices"
	"time"
)

// Length is the duration every occurrence covers.
const Length = time.Hour

// Occurrence is the hour-long interval [Start, Start+1h).
type Occurrence struct {
	Start time.Time
}

func (o Occurrence) End() time.Time {
	return o.Start.Add(Length)
}

// Set is an unordered collection of occurrences keyed by their start instant.
type Set struct {
	starts map[int64]struct{}
}

func NewSet(starts ...time.Time) *Set {
	s := &Set{starts: make(map[int64]struct{}, len(starts))}
	for _, t := range starts {
		s.Add(t)
	}
	return s
}

func (s *Set) Add(start time.Time) {
	s.starts[start.Unix()] = struct{}{}
}

func (s *Set) Contains(start time.Time) bool {
	_, ok := s.starts[start.Unix()]
	return ok
}

func (s *Set) Len() int {
	return len(s.starts)
}

// Union adds every occurrence of other to s.
func (s *Set) Union(other *Set) {
	for k := range other.starts {
		s.starts[k] = struct{}{}
	}
}

// Occurrences returns the members sorted by start time.
func (s *Set) Occurrences() []Occurrence {
	keys := make([]int64, 0, len(s.starts))
	for k := range s.starts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]Occurrence, len(keys))
	for i, k := range keys {
		out[i] = Occurrence{Start: time.Unix(k, 0).UTC()}
	}
	return out
}

// Intersect returns the occurrences present in every set. It returns an
// empty set when no sets are given.
func Intersect(sets ...*Set) *Set {
	out := NewSet()
	if len(sets) == 0 {
		return out
	}

	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	for k := range smallest.starts {
		inAll := true
		for _, s := range sets {
			if _, ok := s.starts[k]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			out.starts[k] = struct{}{}
		}
	}
	return out
}
