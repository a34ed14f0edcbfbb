package regexlib

// RemoveEpsilons returns an ε-free NFA equivalent to enfa. State ids are kept
// 1:1; the new states are fresh copies, so enfa stays untouched.
//
// A state is accepting iff its closure holds an accepting state, and for
// every symbol a it gets an edge to each state of closure(move(closure(q), a)).
func RemoveEpsilons(enfa *Automaton) *Automaton {
	nfa := NewAutomaton()
	if enfa.start == nil {
		return nfa
	}

	mapped := make(map[StateID]*State, len(enfa.states))
	for _, old := range enfa.states {
		s := &State{ID: old.ID, Label: old.Label}
		mapped[old.ID] = s
		nfa.AddState(s)
	}
	nfa.SetStart(mapped[enfa.start.ID])
	for r := range enfa.alphabet {
		nfa.alphabet[r] = struct{}{}
	}

	alphabet := enfa.Alphabet()
	for _, old := range enfa.states {
		cur := mapped[old.ID]
		closure := EpsilonClosure(NewStateSet(old))
		cur.Accepting = closure.Accepting()

		for _, sym := range alphabet {
			targets := EpsilonClosure(Move(closure, sym))
			// sorted so edge order does not depend on map iteration
			for _, id := range targets.IDs() {
				if to, ok := mapped[id]; ok {
					nfa.AddTransition(cur, to, sym)
				}
			}
		}
	}
	return nfa
}
