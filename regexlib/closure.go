package regexlib

// StateSet is an unordered set of states.
type StateSet map[*State]struct{}

// NewStateSet builds a set from the given states.
func NewStateSet(states ...*State) StateSet {
	set := make(StateSet, len(states))
	for _, s := range states {
		set[s] = struct{}{}
	}
	return set
}

// Has reports membership.
func (s StateSet) Has(st *State) bool {
	_, ok := s[st]
	return ok
}

// IDs returns the sorted member ids, the canonical signature of the set.
func (s StateSet) IDs() []StateID { return sortedIDs(s) }

// Accepting reports whether any member is accepting.
func (s StateSet) Accepting() bool {
	for st := range s {
		if st.Accepting {
			return true
		}
	}
	return false
}

// EpsilonClosure returns every state reachable from the given states through
// zero or more ε-transitions, the inputs included. The input set is not modified.
func EpsilonClosure(states StateSet) StateSet {
	closure := make(StateSet, len(states))
	stack := make([]*State, 0, len(states))
	for s := range states {
		closure[s] = struct{}{}
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range cur.out {
			if t.symbol != Epsilon {
				continue
			}
			if _, ok := closure[t.to]; !ok {
				closure[t.to] = struct{}{}
				stack = append(stack, t.to)
			}
		}
	}
	return closure
}

// Move returns the states reachable from the set through one sym-transition.
func Move(states StateSet, sym rune) StateSet {
	res := make(StateSet)
	for s := range states {
		for _, t := range s.out {
			if t.symbol == sym {
				res[t.to] = struct{}{}
			}
		}
	}
	return res
}
