package regexlib

import (
	"fmt"
	"slices"
	"sort"
)

// Epsilon is the reserved symbol of ε-transitions. It is not a valid rune, so
// no input character can collide with it.
const Epsilon rune = -1

// StateID identifies a state; it is unique within one automaton.
type StateID int

// State is a node of an automaton graph.
type State struct {
	ID        StateID
	Label     string
	Accepting bool
	Start     bool
	// Dead marks the DFA state of the empty NFA subset.
	Dead bool
	// Origin holds the sorted NFA state ids a DFA state stands for; nil on
	// ε-NFA and NFA states.
	Origin []StateID

	out []*Transition
}

// Transitions returns the outgoing edges in insertion order.
func (s *State) Transitions() []*Transition { return s.out }

// Next returns the target of the first transition on sym, or nil.
func (s *State) Next(sym rune) *State {
	for _, t := range s.out {
		if t.symbol == sym {
			return t.to
		}
	}
	return nil
}

func (s *State) String() string { return s.Label }

// link adds s --sym--> to unless the same edge already exists.
func (s *State) link(to *State, sym rune) bool {
	for _, t := range s.out {
		if t.to == to && t.symbol == sym {
			return false
		}
	}
	s.out = append(s.out, &Transition{from: s, to: to, symbol: sym})
	return true
}

// Transition is an immutable directed edge.
type Transition struct {
	from, to *State
	symbol   rune
}

func (t *Transition) From() *State    { return t.from }
func (t *Transition) To() *State      { return t.to }
func (t *Transition) Symbol() rune    { return t.symbol }
func (t *Transition) IsEpsilon() bool { return t.symbol == Epsilon }

// SymbolString renders a symbol, using "ε" for Epsilon.
func SymbolString(sym rune) string {
	if sym == Epsilon {
		return "ε"
	}
	return string(sym)
}

// IDAllocator hands out state ids for one compilation. The zero value starts at 0.
type IDAllocator struct {
	next StateID
}

// NewState returns a fresh state labelled q<id>.
func (a *IDAllocator) NewState() *State {
	id := a.next
	a.next++
	return &State{ID: id, Label: fmt.Sprintf("q%d", id)}
}

// Automaton owns a state graph. ε-NFA, NFA and DFA share this type; which one
// a value is depends only on the stage that built it.
type Automaton struct {
	states   []*State
	byID     map[StateID]*State
	start    *State
	alphabet map[rune]struct{}
}

// NewAutomaton returns an empty automaton.
func NewAutomaton() *Automaton {
	return &Automaton{
		byID:     make(map[StateID]*State),
		alphabet: make(map[rune]struct{}),
	}
}

// AddState registers s; adding a state twice is a no-op.
func (a *Automaton) AddState(s *State) {
	if _, ok := a.byID[s.ID]; ok {
		return
	}
	a.byID[s.ID] = s
	a.states = append(a.states, s)
}

// SetStart registers s and makes it the only start state.
func (a *Automaton) SetStart(s *State) {
	if a.start != nil {
		a.start.Start = false
	}
	a.AddState(s)
	s.Start = true
	a.start = s
}

// AddTransition adds from --sym--> to, registering both states. Adding the
// same triple twice leaves a single edge; the return value reports whether
// an edge was created.
func (a *Automaton) AddTransition(from, to *State, sym rune) bool {
	a.AddState(from)
	a.AddState(to)
	if sym != Epsilon {
		a.alphabet[sym] = struct{}{}
	}
	return from.link(to, sym)
}

// Start returns the start state, nil for an empty automaton.
func (a *Automaton) Start() *State { return a.start }

// States returns all states in registration order.
func (a *Automaton) States() []*State { return a.states }

// State looks a state up by id.
func (a *Automaton) State(id StateID) (*State, bool) {
	s, ok := a.byID[id]
	return s, ok
}

// AcceptStates returns the states whose Accepting flag is set, in
// registration order.
func (a *Automaton) AcceptStates() []*State {
	var out []*State
	for _, s := range a.states {
		if s.Accepting {
			out = append(out, s)
		}
	}
	return out
}

// Alphabet returns the distinct non-ε symbols, sorted.
func (a *Automaton) Alphabet() []rune {
	out := make([]rune, 0, len(a.alphabet))
	for r := range a.alphabet {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Transitions returns every edge, grouped by source in registration order.
func (a *Automaton) Transitions() []*Transition {
	var out []*Transition
	for _, s := range a.states {
		out = append(out, s.out...)
	}
	return out
}

// sortedIDs is the canonical signature order of a state set.
func sortedIDs(set map[*State]struct{}) []StateID {
	ids := make([]StateID, 0, len(set))
	for s := range set {
		ids = append(ids, s.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
