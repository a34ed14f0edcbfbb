package regexlib

import (
	"strings"
	"testing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// words returns every string over alpha of length 0..n.
func words(alpha []rune, n int) []string {
	out := []string{""}
	layer := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range layer {
			for _, r := range alpha {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		layer = next
	}
	return out
}

var equivalencePatterns = []string{
	"", "a", "ab", "a|b", "ab*", "a+", "(ab|a)*c", "a(b|c)*d",
	"(a|b)*abb", "(a+|b)*", "x(yz)*|y+", "a|a|aa", `\*a+`, "((a|b)c)+",
}

func TestCrossStageEquivalence(t *testing.T) {
	for _, pat := range equivalencePatterns {
		re := newRE(t, pat)
		// one symbol outside the alphabet exercises the reject-by-no-transition path
		alpha := append(re.DFA.Alphabet(), 'z')
		for _, w := range words(alpha, 4) {
			e := Simulate(re.ENFA, w)
			n := Simulate(re.NFA, w)
			d := re.Match(w)
			if e != n || n != d {
				t.Fatalf("%q on %q: enfa=%v nfa=%v dfa=%v", pat, w, e, n, d)
			}
		}
	}
}

// lexmachineAccepts checks a whole-string match with an independent engine.
func lexmachineAccepts(t *testing.T, lx *lexmachine.Lexer, input string) bool {
	t.Helper()
	if input == "" {
		return false
	}
	sc, err := lx.Scanner([]byte(input))
	if err != nil {
		t.Fatalf("scanner: %v", err)
	}
	tok, err, eof := sc.Next()
	if err != nil || eof {
		return false
	}
	return tok.(string) == input
}

func TestDFAAgreesWithLexmachine(t *testing.T) {
	// lexmachine refuses patterns that match the empty string
	for _, pat := range []string{"ab*", "a+b+", "(ab|a)*c", "a(b|c)*d", "(a|b)*abb", "x(yz)*|y+"} {
		lx := lexmachine.NewLexer()
		lx.Add([]byte(pat), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return string(m.Bytes), nil
		})
		if err := lx.Compile(); err != nil {
			t.Fatalf("lexmachine %q: %v", pat, err)
		}

		re := newRE(t, pat)
		for _, w := range words(re.DFA.Alphabet(), 5) {
			if want, got := lexmachineAccepts(t, lx, w), re.Match(w); want != got {
				t.Fatalf("%q on %q: lexmachine=%v dfa=%v", pat, w, want, got)
			}
		}
	}
}

func TestCompileAllOrNothing(t *testing.T) {
	for _, pat := range []string{"*a", `a\`, "()", "a||b"} {
		re, err := Compile(pat)
		if err == nil || re != nil {
			t.Fatalf("%q: want error and no result, got %v / %v", pat, re, err)
		}
	}
}

func TestCompileStages(t *testing.T) {
	re := newRE(t, "ab|c")
	if FormatTokens(re.Postfix) != "a b CONCAT c OR" {
		t.Fatalf("postfix %q", FormatTokens(re.Postfix))
	}
	for _, name := range []string{"enfa", "nfa", "dfa"} {
		if a, ok := re.Stage(name); !ok || a == nil {
			t.Fatalf("stage %s missing", name)
		}
	}
	if _, ok := re.Stage("min"); ok {
		t.Fatalf("unknown stage should not resolve")
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustCompile should panic on invalid input")
		}
	}()
	MustCompile("(")
}

func BenchmarkMillionBs(b *testing.B) {
	re := MustCompile("ab*")
	txt := "a" + strings.Repeat("b", 1_000_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = re.Match(txt)
	}
}

func BenchmarkSimulatorRunMillionBs(b *testing.B) {
	sim, err := MustCompile("ab*").Simulator()
	if err != nil {
		b.Fatal(err)
	}
	txt := "a" + strings.Repeat("b", 1_000_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sim.Run(txt)
	}
}

func BenchmarkCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = MustCompile("(a|b)*abb(c|d)+")
	}
}
