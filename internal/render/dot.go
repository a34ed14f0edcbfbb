package render

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"regexviz/regexlib"
)

// ErrNoGraphviz is returned by PNG when the dot binary is not on PATH.
var ErrNoGraphviz = errors.New("render: graphviz dot binary not found")

// ExportDOT writes a Graphviz representation of a to w. Accepting states are
// double circles, the dead state is dashed and parallel edges between the
// same pair of states share one arrow labelled with every symbol.
func ExportDOT(w io.Writer, a *regexlib.Automaton) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "    rankdir=LR;")

	for _, s := range a.States() {
		attrs := []string{"shape=circle"}
		if s.Accepting {
			attrs[0] = "shape=doublecircle"
		}
		if s.Dead {
			attrs = append(attrs, "style=dashed")
		}
		attrs = append(attrs, fmt.Sprintf("label=\"%s\"", dotEscape(s.Label)))
		fmt.Fprintf(bw, "    n%d [%s];\n", s.ID, strings.Join(attrs, ", "))
	}

	for _, s := range a.States() {
		var order []*regexlib.State
		symbols := map[*regexlib.State][]string{}
		for _, t := range s.Transitions() {
			if _, ok := symbols[t.To()]; !ok {
				order = append(order, t.To())
			}
			symbols[t.To()] = append(symbols[t.To()], regexlib.SymbolString(t.Symbol()))
		}
		for _, to := range order {
			fmt.Fprintf(bw, "    n%d -> n%d [label=\"%s\"];\n", s.ID, to.ID, dotEscape(strings.Join(symbols[to], ",")))
		}
	}

	if start := a.Start(); start != nil {
		fmt.Fprintf(bw, "    _start [shape=point]; _start -> n%d;\n", start.ID)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// PNG pipes DOT source through `dot -Tpng` and writes the image to w.
func PNG(ctx context.Context, a *regexlib.Automaton, w io.Writer) error {
	bin, err := exec.LookPath("dot")
	if err != nil {
		return ErrNoGraphviz
	}
	var src bytes.Buffer
	if err := ExportDOT(&src, a); err != nil {
		return err
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-Tpng")
	cmd.Stdin = &src
	cmd.Stdout = w
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("render: dot -Tpng: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
