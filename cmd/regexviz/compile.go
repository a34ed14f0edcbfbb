package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"regexviz/internal/render"
	"regexviz/regexlib"
)

var stageTitles = map[string]string{
	"enfa": render.TypeENFA,
	"nfa":  render.TypeNFA,
	"dfa":  render.TypeDFA,
}

func newCompileCmd(a *app) *cobra.Command {
	var (
		stage   string
		format  string
		outFile string
		png     bool
	)
	cmd := &cobra.Command{
		Use:   "compile <pattern>",
		Short: "Compile a pattern and export its automata",
		Long: `Compiles the pattern and writes the chosen stage as a transition table
(text), Graphviz DOT (dot) or JSON (json). --png renders the DOT through the
graphviz dot binary into the -o file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Format
			}
			stages, err := selectStages(stage)
			if err != nil {
				return err
			}

			re, err := compileLogged(a, args[0])
			if err != nil {
				return err
			}

			if png {
				if outFile == "" || outFile == "-" {
					return fmt.Errorf("--png needs an output file (-o)")
				}
				if len(stages) != 1 {
					return fmt.Errorf("--png renders a single stage")
				}
				return writePNG(cmd, re, stages[0], outFile)
			}

			var buf bytes.Buffer
			switch format {
			case "dot":
				for _, name := range stages {
					st, _ := re.Stage(name)
					if err := render.ExportDOT(&buf, st); err != nil {
						return err
					}
				}
			case "json":
				var doc any = render.Export(re)
				if len(stages) == 1 {
					st, _ := re.Stage(stages[0])
					doc = render.ExportAutomaton(st, stageTitles[stages[0]])
				}
				if err := render.WriteJSON(&buf, doc); err != nil {
					return err
				}
			case "text":
				md := panel(re, stages)
				if outFile == "" || outFile == "-" {
					if isTerminal(cmd.OutOrStdout()) {
						r, err := render.NewTerminalRenderer(100)
						if err != nil {
							return err
						}
						if md, err = r(md); err != nil {
							return err
						}
					}
				}
				buf.WriteString(md)
			default:
				return fmt.Errorf("unknown format %q (want text, dot or json)", format)
			}
			return writeOutput(cmd, outFile, &buf)
		},
	}
	cmd.Flags().StringVar(&stage, "stage", "dfa", "Stage to export: enfa, nfa, dfa or all")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, dot or json")
	cmd.Flags().StringVarP(&outFile, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().BoolVar(&png, "png", false, "Render PNG via dot -Tpng")
	return cmd
}

func selectStages(stage string) ([]string, error) {
	switch stage {
	case "all":
		return []string{"enfa", "nfa", "dfa"}, nil
	case "enfa", "nfa", "dfa":
		return []string{stage}, nil
	}
	return nil, fmt.Errorf("unknown stage %q (want enfa, nfa, dfa or all)", stage)
}

// compileLogged compiles pattern and logs per stage statistics.
func compileLogged(a *app, pattern string) (*regexlib.Result, error) {
	if render.Dense(pattern) {
		a.logger.Warn("diagram may be hard to read", "pattern", pattern)
	}
	re, err := regexlib.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	for _, name := range []string{"enfa", "nfa", "dfa"} {
		st, _ := re.Stage(name)
		s := render.StatsOf(st)
		a.logger.Debug("stage built",
			"stage", name,
			"states", s.States,
			"transitions", s.Transitions,
			"alphabet", s.Alphabet,
			"final", s.Final,
		)
	}
	return re, nil
}

func panel(re *regexlib.Result, stages []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", "`"+re.Pattern+"`")
	fmt.Fprintf(&b, "- tokens: `%s`\n", regexlib.FormatTokens(re.Tokens))
	fmt.Fprintf(&b, "- postfix: `%s`\n\n", regexlib.FormatTokens(re.Postfix))
	for _, name := range stages {
		st, _ := re.Stage(name)
		b.WriteString(render.Markdown(stageTitles[name], st))
		b.WriteString("\n")
	}
	return b.String()
}

func writePNG(cmd *cobra.Command, re *regexlib.Result, stage, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	st, _ := re.Stage(stage)
	if err := render.PNG(cmd.Context(), st, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "PNG written to %s\n", path)
	return nil
}

func writeOutput(cmd *cobra.Command, path string, buf *bytes.Buffer) error {
	if path == "" || path == "-" {
		_, err := io.Copy(cmd.OutOrStdout(), buf)
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "written to %s\n", path)
	return nil
}
