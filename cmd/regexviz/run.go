package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"regexviz/internal/batch"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.rxt>",
		Short: "Check the expectations of a test script",
		Long: `Runs a .rxt script: each 'pattern "re"' line is followed by
'accept "s" ...' and 'reject "s" ...' lines. Every unmet expectation is
reported and the command fails if there is any.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			script, err := batch.ParseScript(args[0], string(src))
			if err != nil {
				return err
			}
			a.logger.Debug("script parsed", "file", args[0], "patterns", len(script.Blocks))

			rep := script.Run(a.cfg.Normalize)
			out := cmd.OutOrStdout()
			p := newPainter(out)
			for _, f := range rep.Failures {
				fmt.Fprintf(out, "%s %s\n", p.fail("FAIL"), f)
			}
			fmt.Fprintf(out, "%d passed, %d failed\n", rep.Passed, len(rep.Failures))
			if !rep.OK() {
				return fmt.Errorf("%s: %d expectation(s) failed", args[0], len(rep.Failures))
			}
			return nil
		},
	}
}
