package automaton

import (
	"slices"
	"strconv"
	"strings"

	"lexdfa/token"
)

// Partition is a list of disjoint blocks of DFA states covering the whole
// table. Members of a block are sorted.
type Partition [][]StateID

// blockIndex maps every state to the index of its block.
func (p Partition) blockIndex(numStates int) []int {
	index := make([]int, numStates)
	for b, block := range p {
		for _, id := range block {
			index[id] = b
		}
	}
	return index
}

// InitialPartition groups the states of d by accept category. The
// non-accepting block comes first, then categories in ascending order.
func InitialPartition(d *DFA) Partition {
	groups := map[token.Category][]StateID{}
	var keys []token.Category
	for id := range d.NumStates() {
		accept := d.Accept(StateID(id))
		if _, ok := groups[accept]; !ok {
			keys = append(keys, accept)
		}
		groups[accept] = append(groups[accept], StateID(id))
	}
	slices.Sort(keys)

	p := make(Partition, 0, len(keys))
	for _, k := range keys {
		p = append(p, groups[k])
	}
	return p
}

// Refine performs one refinement pass: each block is split into sub-blocks
// whose members agree, for every alphabet symbol, on the block their
// transition leads to (or on having no transition). Sub-blocks keep the order
// in which their first member appears. p is not modified.
func Refine(d *DFA, p Partition) Partition {
	index := p.blockIndex(d.NumStates())
	next := make(Partition, 0, len(p))

	for _, block := range p {
		var order []string
		split := map[string][]StateID{}
		for _, id := range block {
			sig := signature(d, id, index)
			if _, ok := split[sig]; !ok {
				order = append(order, sig)
			}
			split[sig] = append(split[sig], id)
		}
		for _, sig := range order {
			next = append(next, split[sig])
		}
	}
	return next
}

func signature(d *DFA, id StateID, index []int) string {
	var b strings.Builder
	for _, c := range d.alphabet {
		target := -1
		if to, ok := d.Step(id, c); ok {
			target = index[to]
		}
		b.WriteString(strconv.Itoa(target))
		b.WriteByte(',')
	}
	return b.String()
}

// Minimize returns the minimal DFA equivalent to d, keeping the category
// accepted by every string. d itself is left untouched.
func Minimize(d *DFA) *DFA {
	if d.NumStates() == 0 {
		return d
	}

	p := InitialPartition(d)
	for {
		next := Refine(d, p)
		if len(next) == len(p) {
			break
		}
		p = next
	}

	m := canonicalize(d, p)
	log.Debugf("minimized DFA from %d to %d states", d.NumStates(), m.NumStates())
	return m
}

// canonicalize builds one state per block. Blocks are numbered by their
// smallest member, which also serves as the representative, so the start
// state keeps id 0 and a minimal DFA maps onto itself.
func canonicalize(d *DFA, p Partition) *DFA {
	blocks := slices.Clone(p)
	slices.SortFunc(blocks, func(a, b []StateID) int { return int(a[0]) - int(b[0]) })
	index := Partition(blocks).blockIndex(d.NumStates())

	m := newDFA(d.Alphabet())
	for _, block := range blocks {
		m.addState(d.Accept(block[0]))
	}
	for b, block := range blocks {
		next := m.states.At(StateID(b)).Next
		for _, t := range d.Transitions(block[0]) {
			next[t.Symbol] = StateID(index[t.Target])
		}
	}
	m.start = StateID(index[d.start])
	return m
}
