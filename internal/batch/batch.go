// Package batch tests many strings against a compiled pattern, either from a
// newline separated list or from a .rxt script of expectations.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"regexviz/regexlib"
)

// Verdict is the outcome for one input string.
type Verdict struct {
	Input      string
	Normalized string
	Accepted   bool
}

// Report collects the verdicts of a batch run.
type Report struct {
	Verdicts []Verdict
	Accepted int
	Rejected int
}

// Summary reads like "2 accepted, 1 rejected out of 3 strings".
func (r Report) Summary() string {
	return fmt.Sprintf("%d accepted, %d rejected out of %d strings", r.Accepted, r.Rejected, len(r.Verdicts))
}

// Lines reads newline separated inputs, trimming each and skipping blanks.
func Lines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}
	return out, nil
}

// Run simulates every input on the DFA of re. normalize may be nil.
func Run(re *regexlib.Result, inputs []string, normalize func(string) string) Report {
	if normalize == nil {
		normalize = func(s string) string { return s }
	}
	var rep Report
	for _, in := range inputs {
		v := Verdict{Input: in, Normalized: normalize(in)}
		v.Accepted = re.Match(v.Normalized)
		if v.Accepted {
			rep.Accepted++
		} else {
			rep.Rejected++
		}
		rep.Verdicts = append(rep.Verdicts, v)
	}
	return rep
}
