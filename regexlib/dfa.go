package regexlib

import (
	"strconv"
	"strings"
)

// DeadLabel is the provisional label of the dead state before renaming.
const DeadLabel = "Φ"

// signature is the canonical key of a subset: sorted ids joined by commas.
func signature(ids []StateID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}

// Determinize turns an ε-free NFA into a total DFA by subset construction.
// The empty subset becomes an explicit dead state that self-loops on every
// symbol and is never expanded. A nil allocator means a fresh one.
func Determinize(nfa *Automaton, ids *IDAllocator) *Automaton {
	if ids == nil {
		ids = &IDAllocator{}
	}
	dfa := NewAutomaton()
	for r := range nfa.alphabet {
		dfa.alphabet[r] = struct{}{}
	}
	if nfa.start == nil {
		return dfa
	}
	alphabet := nfa.Alphabet()

	type pending struct {
		set   StateSet
		state *State
	}
	known := map[string]*State{}
	newDFAState := func(set StateSet) *State {
		origin := set.IDs()
		s := ids.NewState()
		s.Origin = origin
		known[signature(origin)] = s
		return s
	}

	startSet := NewStateSet(nfa.start)
	start := newDFAState(startSet)
	dfa.SetStart(start)
	queue := []pending{{set: startSet, state: start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cur.state.Accepting = cur.set.Accepting()

		for _, sym := range alphabet {
			next := Move(cur.set, sym)
			target, ok := known[signature(next.IDs())]
			if !ok {
				target = newDFAState(next)
				dfa.AddState(target)
				if len(next) == 0 {
					target.Dead = true
					target.Label = DeadLabel
					for _, a := range alphabet {
						dfa.AddTransition(target, target, a)
					}
				} else {
					queue = append(queue, pending{set: next, state: target})
				}
			}
			dfa.AddTransition(cur.state, target, sym)
		}
	}
	return dfa
}
