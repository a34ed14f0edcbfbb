package batch

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"regexviz/regexlib"
)

// Script is a parsed .rxt file:
//
//	// comments are allowed
//	pattern "a(b|c)*"
//	accept "a" "abc"
//	reject "" "ba"
type Script struct {
	Blocks []*Block `parser:"@@*"`
}

type Block struct {
	Pos     lexer.Position
	Pattern string   `parser:"'pattern' @String"`
	Checks  []*Check `parser:"@@*"`
}

type Check struct {
	Pos     lexer.Position
	Verdict string   `parser:"@('accept'|'reject')"`
	Inputs  []string `parser:"@String+"`
}

var scriptParser = participle.MustBuild[Script](participle.Unquote("String"))

// ParseScript parses src; name is used in error positions.
func ParseScript(name, src string) (*Script, error) {
	s, err := scriptParser.ParseString(name, src)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return s, nil
}

// Failure is one unmet expectation, or a pattern that did not compile.
type Failure struct {
	Pos     lexer.Position
	Pattern string
	Input   string
	Want    bool
	Err     error
}

func (f Failure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: pattern %q: %v", f.Pos, f.Pattern, f.Err)
	}
	want, got := "accept", "reject"
	if !f.Want {
		want, got = got, want
	}
	return fmt.Sprintf("%s: pattern %q should %s %q but would %s it", f.Pos, f.Pattern, want, f.Input, got)
}

// ScriptReport is the outcome of running a script.
type ScriptReport struct {
	Passed   int
	Failures []Failure
}

func (r ScriptReport) OK() bool { return len(r.Failures) == 0 }

// Run compiles each block's pattern and checks its expectations. A pattern
// that fails to compile counts as a single failure for its block.
func (s *Script) Run(normalize func(string) string) ScriptReport {
	var rep ScriptReport
	for _, b := range s.Blocks {
		re, err := regexlib.Compile(b.Pattern)
		if err != nil {
			rep.Failures = append(rep.Failures, Failure{Pos: b.Pos, Pattern: b.Pattern, Err: err})
			continue
		}
		for _, c := range b.Checks {
			want := c.Verdict == "accept"
			for _, v := range Run(re, c.Inputs, normalize).Verdicts {
				if v.Accepted == want {
					rep.Passed++
					continue
				}
				rep.Failures = append(rep.Failures, Failure{Pos: c.Pos, Pattern: b.Pattern, Input: v.Input, Want: want})
			}
		}
	}
	return rep
}
