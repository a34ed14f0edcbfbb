package render

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour"

	"regexviz/regexlib"
)

// Stats summarizes an automaton for the info panel.
type Stats struct {
	States      int
	Transitions int
	Alphabet    int
	Final       int
}

func StatsOf(a *regexlib.Automaton) Stats {
	return Stats{
		States:      len(a.States()),
		Transitions: len(a.Transitions()),
		Alphabet:    len(a.Alphabet()),
		Final:       len(a.AcceptStates()),
	}
}

// Markdown renders the info panel of one stage: a card per state with its
// transitions grouped by symbol, followed by statistics.
func Markdown(title string, a *regexlib.Automaton) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)

	if len(a.States()) == 0 {
		b.WriteString("_No states to display_\n")
		return b.String()
	}

	for _, s := range a.States() {
		fmt.Fprintf(&b, "**%s**", s.Label)
		if s.Start {
			b.WriteString(" `START`")
		}
		if s.Accepting {
			b.WriteString(" `ACCEPT`")
		}
		if s.Dead {
			b.WriteString(" `DEAD`")
		}
		b.WriteString("\n\n")
		rows := TransitionRows(s)
		if len(rows) == 0 {
			b.WriteString("- _No transitions_\n")
		}
		for _, row := range rows {
			fmt.Fprintf(&b, "- %s\n", row)
		}
		b.WriteString("\n")
	}

	st := StatsOf(a)
	b.WriteString("| States | Transitions | Alphabet | Final states |\n")
	b.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d |\n", st.States, st.Transitions, st.Alphabet, st.Final)
	return b.String()
}

// TransitionRows groups the edges of s by symbol as `a` → {q1, q2}. ε comes
// first, then symbols in ascending order.
func TransitionRows(s *regexlib.State) []string {
	targets := map[rune][]string{}
	var syms []rune
	for _, t := range s.Transitions() {
		if _, ok := targets[t.Symbol()]; !ok {
			syms = append(syms, t.Symbol())
		}
		targets[t.Symbol()] = append(targets[t.Symbol()], t.To().Label)
	}
	slices.Sort(syms)

	rows := make([]string, 0, len(syms))
	for _, sym := range syms {
		rows = append(rows, fmt.Sprintf("%s → {%s}", code(regexlib.SymbolString(sym)), strings.Join(targets[sym], ", ")))
	}
	return rows
}

func code(s string) string {
	if strings.Contains(s, "`") {
		return "`` " + s + " ``"
	}
	return "`" + s + "`"
}

// Dense reports whether the diagram of pattern is likely hard to read: it
// uses a Kleene star or more than four distinct ASCII letters and digits.
func Dense(pattern string) bool {
	if strings.Contains(pattern, "*") {
		return true
	}
	seen := map[rune]struct{}{}
	for _, r := range pattern {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			seen[r] = struct{}{}
		}
	}
	return len(seen) > 4
}

// NewTerminalRenderer returns a function rendering markdown for the terminal.
func NewTerminalRenderer(width int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}
