package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"regexviz/regexlib"
)

func newStepCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "step <pattern> <input>",
		Short: "Trace the DFA one symbol at a time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := compileLogged(a, args[0])
			if err != nil {
				return err
			}
			sim, err := re.Simulator()
			if err != nil {
				return err
			}

			input := a.cfg.Normalize(args[1])
			out := cmd.OutOrStdout()
			p := newPainter(out)
			fmt.Fprintf(out, "start %s\n", sim.Current().Label)
			for {
				from := sim.Current()
				res := sim.Step(input)
				if !res.Done {
					fmt.Fprintf(out, "%3d  %s --%s--> %s\n", sim.Position(), from.Label,
						p.dim(regexlib.SymbolString(res.Symbol)), res.State.Label)
					continue
				}
				switch {
				case res.Accepted:
					fmt.Fprintf(out, "%s in %s\n", p.ok("ACCEPTED"), res.State.Label)
				case !res.ValidTransition:
					fmt.Fprintf(out, "%s: no transition from %s on %q\n", p.fail("REJECTED"), res.State.Label, res.Symbol)
				default:
					fmt.Fprintf(out, "%s: %s is not accepting\n", p.fail("REJECTED"), res.State.Label)
				}
				return nil
			}
		},
	}
}
