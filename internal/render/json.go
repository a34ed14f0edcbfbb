package render

import (
	"encoding/json"
	"io"

	"regexviz/regexlib"
)

// Stage type names used in export documents.
const (
	TypeENFA = "ε-NFA"
	TypeNFA  = "NFA"
	TypeDFA  = "DFA"
)

// Document is the JSON export of one compilation.
type Document struct {
	Regex string     `json:"regex"`
	ENFA  *Automaton `json:"enfa"`
	NFA   *Automaton `json:"nfa"`
	DFA   *Automaton `json:"dfa"`
}

// Automaton is the export form of a single stage. Transition endpoints,
// startState and acceptStates refer to state labels.
type Automaton struct {
	Type         string       `json:"type"`
	States       []State      `json:"states"`
	Transitions  []Transition `json:"transitions"`
	Alphabet     []string     `json:"alphabet"`
	StartState   *string      `json:"startState"`
	AcceptStates []string     `json:"acceptStates"`
}

type State struct {
	ID          int    `json:"id"`
	Label       string `json:"label"`
	IsStart     bool   `json:"isStart"`
	IsAccepting bool   `json:"isAccepting"`
	IsDead      bool   `json:"isDead,omitempty"`
}

type Transition struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Symbol string `json:"symbol"`
}

// Export builds the export document of a compiled pattern.
func Export(re *regexlib.Result) *Document {
	return &Document{
		Regex: re.Pattern,
		ENFA:  ExportAutomaton(re.ENFA, TypeENFA),
		NFA:   ExportAutomaton(re.NFA, TypeNFA),
		DFA:   ExportAutomaton(re.DFA, TypeDFA),
	}
}

// ExportAutomaton converts a into its export form.
func ExportAutomaton(a *regexlib.Automaton, typ string) *Automaton {
	out := &Automaton{
		Type:         typ,
		States:       []State{},
		Transitions:  []Transition{},
		Alphabet:     []string{},
		AcceptStates: []string{},
	}
	for _, s := range a.States() {
		out.States = append(out.States, State{
			ID:          int(s.ID),
			Label:       s.Label,
			IsStart:     s.Start,
			IsAccepting: s.Accepting,
			IsDead:      s.Dead,
		})
		for _, t := range s.Transitions() {
			out.Transitions = append(out.Transitions, Transition{
				From:   t.From().Label,
				To:     t.To().Label,
				Symbol: regexlib.SymbolString(t.Symbol()),
			})
		}
	}
	for _, r := range a.Alphabet() {
		out.Alphabet = append(out.Alphabet, string(r))
	}
	if s := a.Start(); s != nil {
		label := s.Label
		out.StartState = &label
	}
	for _, s := range a.AcceptStates() {
		out.AcceptStates = append(out.AcceptStates, s.Label)
	}
	return out
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
