package batch

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regexviz/regexlib"
)

func TestLines(t *testing.T) {
	got, err := Lines(strings.NewReader("  ab \n\n\t\nabb\r\nba\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "abb", "ba"}, got)

	got, err = Lines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunSummary(t *testing.T) {
	re := regexlib.MustCompile("ab*")
	rep := Run(re, []string{"a", "ABB", "ba"}, strings.ToLower)

	assert.Equal(t, 2, rep.Accepted)
	assert.Equal(t, 1, rep.Rejected)
	assert.Equal(t, "2 accepted, 1 rejected out of 3 strings", rep.Summary())
	assert.Equal(t, Verdict{Input: "ABB", Normalized: "abb", Accepted: true}, rep.Verdicts[1])
}

func TestRunWithoutNormalizer(t *testing.T) {
	rep := Run(regexlib.MustCompile("ab"), []string{"AB"}, nil)
	assert.False(t, rep.Verdicts[0].Accepted)
	assert.Equal(t, "0 accepted, 1 rejected out of 1 strings", rep.Summary())
}

const sample = `
// alternation
pattern "a|b"
accept "a" "b"
reject "" "ab"

pattern "a(b|c)*d"
accept "ad" "abcbd"
reject "abc"
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript("sample.rxt", sample)
	require.NoError(t, err)
	require.Len(t, s.Blocks, 2)

	b := s.Blocks[0]
	assert.Equal(t, "a|b", b.Pattern)
	require.Len(t, b.Checks, 2)
	assert.Equal(t, "accept", b.Checks[0].Verdict)
	assert.Equal(t, []string{"a", "b"}, b.Checks[0].Inputs)
	assert.Equal(t, []string{"", "ab"}, b.Checks[1].Inputs)
	assert.Equal(t, 4, b.Checks[0].Pos.Line)
}

func TestParseScriptErrors(t *testing.T) {
	for _, src := range []string{
		`accept "a"`,
		`pattern "a" accept`,
		`pattern a`,
		`pattern "a" maybe "b"`,
	} {
		_, err := ParseScript("bad.rxt", src)
		assert.Error(t, err, src)
	}
}

func TestScriptRunPasses(t *testing.T) {
	s, err := ParseScript("sample.rxt", sample)
	require.NoError(t, err)
	rep := s.Run(nil)
	assert.True(t, rep.OK(), "%v", rep.Failures)
	assert.Equal(t, 7, rep.Passed)
}

func TestScriptRunReportsFailures(t *testing.T) {
	s, err := ParseScript("f.rxt", `
pattern "ab*"
accept "a" "ba"
reject "abbb"
pattern "(a"
accept "a"
`)
	require.NoError(t, err)
	rep := s.Run(nil)

	assert.Equal(t, 1, rep.Passed)
	require.Len(t, rep.Failures, 3)

	assert.Equal(t, "ba", rep.Failures[0].Input)
	assert.True(t, rep.Failures[0].Want)
	assert.Contains(t, rep.Failures[0].String(), `should accept "ba" but would reject it`)

	assert.Equal(t, "abbb", rep.Failures[1].Input)
	assert.Contains(t, rep.Failures[1].String(), `should reject "abbb" but would accept it`)

	assert.True(t, errors.Is(rep.Failures[2].Err, regexlib.ErrSyntax))
	assert.Contains(t, rep.Failures[2].String(), `pattern "(a"`)
}

func TestScriptRunNormalizes(t *testing.T) {
	s, err := ParseScript("n.rxt", `pattern "ab" accept "AB"`)
	require.NoError(t, err)
	assert.True(t, s.Run(strings.ToLower).OK())
	assert.False(t, s.Run(nil).OK())
}
