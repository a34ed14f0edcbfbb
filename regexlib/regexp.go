// Package regexlib compiles regular expressions into ε-NFA, NFA and DFA
// graphs and simulates the DFA.
package regexlib

// Result holds the three automata built from one pattern. They never share
// State values.
type Result struct {
	Pattern string
	Tokens  []Token
	Postfix []Token
	ENFA    *Automaton
	NFA     *Automaton
	DFA     *Automaton
}

// Compile runs the whole pipeline: tokenize, validate, postfix, Thompson
// construction, ε-removal, subset construction and DFA state naming. It
// returns either all three automata or an error, never a partial result.
func Compile(pattern string) (*Result, error) {
	tokens, err := Tokenize(pattern)
	if err != nil {
		return nil, err
	}
	if err := Validate(tokens); err != nil {
		return nil, err
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		return nil, err
	}

	ids := &IDAllocator{}
	enfa, err := Build(postfix, ids)
	if err != nil {
		return nil, err
	}
	nfa := RemoveEpsilons(enfa)
	dfa := Determinize(nfa, ids)
	RenameStates(dfa)

	return &Result{
		Pattern: pattern,
		Tokens:  tokens,
		Postfix: postfix,
		ENFA:    enfa,
		NFA:     nfa,
		DFA:     dfa,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Result {
	r, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Match reports whether the DFA accepts input.
func (r *Result) Match(input string) bool {
	ok, _ := Accepts(r.DFA, input)
	return ok
}

// Simulator returns a fresh step simulator over the DFA.
func (r *Result) Simulator() (*Simulator, error) { return NewSimulator(r.DFA) }

// Stage returns the automaton of the named stage ("enfa", "nfa" or "dfa").
func (r *Result) Stage(name string) (*Automaton, bool) {
	switch name {
	case "enfa":
		return r.ENFA, true
	case "nfa":
		return r.NFA, true
	case "dfa":
		return r.DFA, true
	}
	return nil, false
}
