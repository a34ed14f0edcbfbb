package regexlib

import "unicode/utf8"

// Step records one consumed input symbol.
type Step struct {
	From   *State
	Symbol rune
	To     *State
}

// StepResult is the outcome of a single Simulator.Step call.
//
// While input remains and a transition exists, Done is false and State is the
// new current state. At the end of input Done is true and Accepted reflects
// the current state. A missing transition ends the run with Done true,
// Accepted false and ValidTransition false.
type StepResult struct {
	Done            bool
	Accepted        bool
	ValidTransition bool
	State           *State
	Symbol          rune
}

// Simulator walks a DFA one input symbol at a time. Input positions count
// runes, not bytes. The simulator does no case folding.
type Simulator struct {
	dfa      *Automaton
	current  *State
	position int
	offset   int // byte offset of position
	history  []Step
}

// NewSimulator returns a simulator positioned at the start of dfa.
func NewSimulator(dfa *Automaton) (*Simulator, error) {
	if dfa == nil || dfa.start == nil {
		return nil, &Error{Kind: ErrSimulation, Reason: ReasonNoDFA, Pos: -1, Msg: "invalid DFA: missing start state"}
	}
	s := &Simulator{dfa: dfa}
	s.Reset()
	return s, nil
}

// Reset returns to the start state and clears the history.
func (s *Simulator) Reset() {
	s.current = s.dfa.start
	s.position = 0
	s.offset = 0
	s.history = nil
}

func (s *Simulator) Current() *State { return s.current }
func (s *Simulator) Position() int   { return s.position }

// History returns the transitions taken since the last Reset.
func (s *Simulator) History() []Step { return s.history }

// Step consumes the symbol at Position() if possible. Successive calls must
// pass the same input until the next Reset.
func (s *Simulator) Step(input string) StepResult {
	if s.offset >= len(input) {
		return StepResult{Done: true, Accepted: s.current.Accepting, ValidTransition: true, State: s.current}
	}

	sym, size := utf8.DecodeRuneInString(input[s.offset:])
	next := s.current.Next(sym)
	if next == nil {
		return StepResult{Done: true, Symbol: sym, State: s.current}
	}

	s.history = append(s.history, Step{From: s.current, Symbol: sym, To: next})
	s.current = next
	s.position++
	s.offset += size
	return StepResult{ValidTransition: true, State: next, Symbol: sym}
}

// Run resets the simulator and steps until the run is done, keeping history.
func (s *Simulator) Run(input string) StepResult {
	s.Reset()
	for {
		res := s.Step(input)
		if res.Done {
			return res
		}
	}
}

// Accepts runs dfa over input without recording history. The empty string is
// accepted iff the start state is accepting.
func Accepts(dfa *Automaton, input string) (bool, error) {
	if dfa == nil || dfa.start == nil {
		return false, &Error{Kind: ErrSimulation, Reason: ReasonNoDFA, Pos: -1, Msg: "invalid DFA: missing start state"}
	}
	cur := dfa.start
	for _, r := range input {
		if cur = cur.Next(r); cur == nil {
			return false, nil
		}
	}
	return cur.Accepting, nil
}

// Simulate runs any automaton over input by tracking the ε-closed set of
// current states, so it works for ε-NFA, NFA and DFA alike.
func Simulate(a *Automaton, input string) bool {
	if a == nil || a.start == nil {
		return false
	}
	cur := EpsilonClosure(NewStateSet(a.start))
	for _, r := range input {
		cur = EpsilonClosure(Move(cur, r))
		if len(cur) == 0 {
			return false
		}
	}
	return cur.Accepting()
}
