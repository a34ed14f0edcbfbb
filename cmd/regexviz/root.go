package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"regexviz/internal/config"
	"regexviz/internal/logging"
)

// app carries what every command needs once flags are parsed.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), logger: logging.NewNop()}

	root := &cobra.Command{
		Use:   "regexviz",
		Short: "Compile regular expressions into ε-NFA, NFA and DFA",
		Long: `regexviz turns a regular expression over literals, concatenation, | , * and +
into an ε-NFA, an ε-free NFA and a DFA, exports them as DOT, JSON or a
transition table, and simulates input strings on the DFA.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
			}
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	root.PersistentFlags().String("config", "regexviz.yaml", "Configuration file")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newCompileCmd(a),
		newTestCmd(a),
		newStepCmd(a),
		newRunCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// painter colors verdicts when writing to a terminal and is a no-op otherwise.
type painter struct {
	color   bool
	profile termenv.Profile
}

func newPainter(w io.Writer) painter {
	if !isTerminal(w) {
		return painter{profile: termenv.Ascii}
	}
	return painter{color: true, profile: termenv.ColorProfile()}
}

func (p painter) paint(s, hex string, bold bool) string {
	if !p.color {
		return s
	}
	st := p.profile.String(s).Foreground(p.profile.Color(hex))
	if bold {
		st = st.Bold()
	}
	return st.String()
}

func (p painter) ok(s string) string   { return p.paint(s, "#22c55e", true) }
func (p painter) fail(s string) string { return p.paint(s, "#ef4444", true) }
func (p painter) dim(s string) string  { return p.paint(s, "#818cf8", false) }
