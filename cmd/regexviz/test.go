package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"regexviz/internal/batch"
)

func newTestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test <pattern> [strings...]",
		Short: "Test strings against the DFA of a pattern",
		Long: `Runs every string on the DFA and prints its verdict. Without string
arguments the strings are read from stdin, one per line; blank lines are
skipped. Input is normalized per the "case" setting first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := compileLogged(a, args[0])
			if err != nil {
				return err
			}
			inputs := args[1:]
			if len(inputs) == 0 {
				if inputs, err = batch.Lines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if len(inputs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No test strings entered.")
				return nil
			}

			out := cmd.OutOrStdout()
			p := newPainter(out)
			rep := batch.Run(re, inputs, a.cfg.Normalize)
			for _, v := range rep.Verdicts {
				verdict := p.ok("✓ Accepted")
				if !v.Accepted {
					verdict = p.fail("✗ Rejected")
				}
				fmt.Fprintf(out, "%s  %q\n", verdict, v.Input)
			}
			fmt.Fprintf(out, "Summary: %s\n", rep.Summary())
			return nil
		},
	}
}
