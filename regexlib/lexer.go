package regexlib

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// TokenKind classifies a pattern token.
type TokenKind int

const (
	Literal TokenKind = iota // single input character
	Star                     // *
	Plus                     // +
	Or                       // |
	LParen                   // (
	RParen                   // )
	Concat                   // explicit concatenation, inserted by ToPostfix
)

var kindNames = [...]string{
	Literal: "LITERAL",
	Star:    "STAR",
	Plus:    "PLUS",
	Or:      "OR",
	LParen:  "LPAREN",
	RParen:  "RPAREN",
	Concat:  "CONCAT",
}

func (k TokenKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Token is one lexical unit of a pattern. Value is set for literals only,
// Pos is the byte offset of the token in the pattern.
type Token struct {
	Kind  TokenKind
	Value rune
	Pos   int
}

// String renders literals as their character and operators by kind name.
func (t Token) String() string {
	if t.Kind == Literal {
		return string(t.Value)
	}
	return t.Kind.String()
}

// FormatTokens joins tokens with single spaces, e.g. "a b CONCAT c OR".
func FormatTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// The rule order matters: an escape must win over the dangling backslash and
// every operator must win over the catch-all character rule.
var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Escaped", Pattern: `\\[\s\S]`},
	{Name: "Dangling", Pattern: `\\`},
	{Name: "Space", Pattern: ` `},
	{Name: "Star", Pattern: `\*`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Or", Pattern: `\|`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Char", Pattern: `[\s\S]`},
})

var (
	symbols      = patternLexer.Symbols()
	escapedType  = symbols["Escaped"]
	danglingType = symbols["Dangling"]
	spaceType    = symbols["Space"]
	charType     = symbols["Char"]
	operatorType = map[lexer.TokenType]TokenKind{
		symbols["Star"]:   Star,
		symbols["Plus"]:   Plus,
		symbols["Or"]:     Or,
		symbols["LParen"]: LParen,
		symbols["RParen"]: RParen,
	}
)

// Tokenize splits a pattern into tokens. A backslash turns the next character
// into a literal; an unescaped space is dropped.
func Tokenize(pattern string) ([]Token, error) {
	lex, err := patternLexer.LexString("", pattern)
	if err != nil {
		return nil, lexErrorf(ReasonUnexpectedInput, 0, "%v", err)
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, lexErrorf(ReasonUnexpectedInput, 0, "%v", err)
	}

	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.EOF() {
			break
		}
		pos := tok.Pos.Offset
		switch tok.Type {
		case spaceType:
			continue
		case danglingType:
			return nil, lexErrorf(ReasonUnterminatedEscape, pos, "unterminated escape at end of pattern")
		case escapedType:
			r, _ := utf8.DecodeRuneInString(tok.Value[1:])
			tokens = append(tokens, Token{Kind: Literal, Value: r, Pos: pos})
		case charType:
			r, _ := utf8.DecodeRuneInString(tok.Value)
			tokens = append(tokens, Token{Kind: Literal, Value: r, Pos: pos})
		default:
			kind, ok := operatorType[tok.Type]
			if !ok {
				return nil, lexErrorf(ReasonUnexpectedInput, pos, "unexpected token %q", tok.Value)
			}
			tokens = append(tokens, Token{Kind: kind, Pos: pos})
		}
	}
	return tokens, nil
}
