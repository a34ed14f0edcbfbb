package regexlib

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by the package wraps exactly one of them.
var (
	ErrLex          = errors.New("lex error")
	ErrSyntax       = errors.New("syntax error")
	ErrConstruction = errors.New("construction error")
	ErrSimulation   = errors.New("simulation precondition")
)

// Reason is the specific sub-category of a failure.
type Reason string

const (
	ReasonUnterminatedEscape Reason = "unterminated-escape"
	ReasonUnexpectedInput    Reason = "unexpected-input"
	ReasonInvalidStart       Reason = "invalid-start"
	ReasonUnbalancedParens   Reason = "unbalanced-parens"
	ReasonEmptyGroup         Reason = "empty-group"
	ReasonGroupOperator      Reason = "group-operator"
	ReasonInvalidAlternation Reason = "invalid-alternation"
	ReasonMismatchedParens   Reason = "mismatched-parens"
	ReasonMissingOperand     Reason = "missing-operand"
	ReasonStackNotEmpty      Reason = "stack-not-empty"
	ReasonUnexpectedToken    Reason = "unexpected-token"
	ReasonNoDFA              Reason = "no-dfa"
)

// Error is the typed failure of one pipeline stage.
// Pos is the byte offset in the pattern, or -1 when it does not apply.
type Error struct {
	Kind   error
	Reason Reason
	Pos    int
	Msg    string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// ReasonOf returns the sub-category carried by err, or "" if err is not an *Error.
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// KindOf names the category of err: "lex", "syntax", "construction",
// "simulation", or "" for errors from elsewhere.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrLex):
		return "lex"
	case errors.Is(err, ErrSyntax):
		return "syntax"
	case errors.Is(err, ErrConstruction):
		return "construction"
	case errors.Is(err, ErrSimulation):
		return "simulation"
	}
	return ""
}

func lexErrorf(reason Reason, pos int, format string, args ...any) error {
	return &Error{Kind: ErrLex, Reason: reason, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func syntaxErrorf(reason Reason, pos int, format string, args ...any) error {
	return &Error{Kind: ErrSyntax, Reason: reason, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func constructionErrorf(reason Reason, format string, args ...any) error {
	return &Error{Kind: ErrConstruction, Reason: reason, Pos: -1, Msg: fmt.Sprintf(format, args...)}
}
