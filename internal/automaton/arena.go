package automaton

// StateID is a stable handle into an Arena. Handles are never reused or
// invalidated by growth.
type StateID int

// Arena is an append-only table of state records addressed by StateID. Both
// automaton layers store their states in one.
type Arena[S any] struct {
	states []S
}

// Alloc appends s and returns its handle.
func (a *Arena[S]) Alloc(s S) StateID {
	a.states = append(a.states, s)
	return StateID(len(a.states) - 1)
}

// At returns the record for id. The pointer is only valid until the next Alloc.
func (a *Arena[S]) At(id StateID) *S {
	return &a.states[id]
}

// Get returns a copy of the record for id.
func (a *Arena[S]) Get(id StateID) S {
	return a.states[id]
}

func (a *Arena[S]) Len() int {
	return len(a.states)
}

// Valid reports whether id addresses a record in the arena.
func (a *Arena[S]) Valid(id StateID) bool {
	return id >= 0 && int(id) < len(a.states)
}
