package regexlib

import (
	"errors"
	"testing"
)

func buildENFA(t *testing.T, pat string) *Automaton {
	t.Helper()
	post, err := ToPostfix(mustTokens(t, pat))
	if err != nil {
		t.Fatalf("postfix %q: %v", pat, err)
	}
	a, err := Build(post, nil)
	if err != nil {
		t.Fatalf("build %q: %v", pat, err)
	}
	return a
}

func countEpsilon(a *Automaton) int {
	n := 0
	for _, tr := range a.Transitions() {
		if tr.IsEpsilon() {
			n++
		}
	}
	return n
}

func TestThompsonLiteral(t *testing.T) {
	a := buildENFA(t, "a")
	if len(a.States()) != 2 || len(a.Transitions()) != 1 {
		t.Fatalf("want 2 states/1 edge, got %d/%d", len(a.States()), len(a.Transitions()))
	}
	if a.Start().Accepting || len(a.AcceptStates()) != 1 {
		t.Fatalf("start must not accept; exactly one accept state")
	}
	if a.Start().Next('a') != a.AcceptStates()[0] {
		t.Fatalf("literal edge should lead to the accept state")
	}
}

func TestThompsonConcatMergesStates(t *testing.T) {
	a := buildENFA(t, "ab")
	if len(a.States()) != 3 {
		t.Fatalf("concat should splice without ε: want 3 states got %d", len(a.States()))
	}
	if countEpsilon(a) != 0 {
		t.Fatalf("concat must not add ε edges")
	}
	mid := a.Start().Next('a')
	if mid == nil || mid.Next('b') == nil || !mid.Next('b').Accepting {
		t.Fatalf("expected start -a-> mid -b-> accept")
	}
}

func TestThompsonStarAndPlus(t *testing.T) {
	star := buildENFA(t, "a*")
	if len(star.States()) != 4 || countEpsilon(star) != 4 {
		t.Fatalf("star: want 4 states/4 ε, got %d/%d", len(star.States()), countEpsilon(star))
	}
	if star.Start().Next(Epsilon) == nil {
		t.Fatalf("star start needs ε edges")
	}

	plus := buildENFA(t, "a+")
	if len(plus.States()) != 4 || countEpsilon(plus) != 3 {
		t.Fatalf("plus: want 4 states/3 ε, got %d/%d", len(plus.States()), countEpsilon(plus))
	}
	for _, tr := range plus.Start().Transitions() {
		if tr.To().Accepting {
			t.Fatalf("plus must not have a zero-match edge")
		}
	}
}

func TestThompsonUnion(t *testing.T) {
	a := buildENFA(t, "a|b")
	if len(a.States()) != 6 || countEpsilon(a) != 4 {
		t.Fatalf("union: want 6 states/4 ε, got %d/%d", len(a.States()), countEpsilon(a))
	}
	if got := string(a.Alphabet()); got != "ab" {
		t.Fatalf("alphabet want ab got %q", got)
	}
}

func TestThompsonEmptyPattern(t *testing.T) {
	a := buildENFA(t, "")
	if len(a.States()) != 1 || !a.Start().Accepting || !a.Start().Start {
		t.Fatalf("empty pattern: want a single accepting start state")
	}
}

func TestThompsonDeterministicIDs(t *testing.T) {
	a := buildENFA(t, "a|b")
	b := buildENFA(t, "a|b")
	if a.Start().ID != b.Start().ID || a.Start().ID != 4 {
		t.Fatalf("ids must restart per build: %d vs %d", a.Start().ID, b.Start().ID)
	}
}

func TestBuildStackErrors(t *testing.T) {
	lit := func(r rune) Token { return Token{Kind: Literal, Value: r} }
	cases := []struct {
		postfix []Token
		want    Reason
	}{
		{[]Token{lit('a'), {Kind: Or}}, ReasonMissingOperand},
		{[]Token{lit('a'), {Kind: Concat}}, ReasonMissingOperand},
		{[]Token{{Kind: Star}}, ReasonMissingOperand},
		{[]Token{{Kind: Plus}}, ReasonMissingOperand},
		{[]Token{lit('a'), lit('b')}, ReasonStackNotEmpty},
		{[]Token{lit('a'), {Kind: LParen}}, ReasonUnexpectedToken},
		{[]Token{{Kind: RParen}}, ReasonUnexpectedToken},
	}
	for i, c := range cases {
		_, err := Build(c.postfix, nil)
		if !errors.Is(err, ErrConstruction) || ReasonOf(err) != c.want {
			t.Fatalf("case %d: want %s, got %v", i, c.want, err)
		}
	}
}
