package automaton

import (
	"slices"
	"strconv"
	"strings"
)

// StateSet is a sorted set of state handles without duplicates.
type StateSet []StateID

// NewStateSet builds a set from ids in any order.
func NewStateSet(ids ...StateID) StateSet {
	set := slices.Clone(ids)
	slices.Sort(set)
	return slices.Compact(set)
}

// Contains reports whether id is a member.
func (s StateSet) Contains(id StateID) bool {
	_, found := slices.BinarySearch(s, id)
	return found
}

// Union returns the members of s and other.
func (s StateSet) Union(other StateSet) StateSet {
	out := make(StateSet, 0, len(s)+len(other))
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] < other[j]:
			out = append(out, s[i])
			i++
		case s[i] > other[j]:
			out = append(out, other[j])
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	out = append(out, s[i:]...)
	return append(out, other[j:]...)
}

// Key is a canonical string form, usable as a map key.
func (s StateSet) Key() string {
	var b strings.Builder
	for i, id := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}
