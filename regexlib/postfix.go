package regexlib

// precedence of the binary and postfix operators; all are left-associative.
func precedence(k TokenKind) int {
	switch k {
	case Star, Plus:
		return 3
	case Concat:
		return 2
	case Or:
		return 1
	default:
		return 0
	}
}

// endsOperand reports whether a token of kind k can close an operand,
// beginsOperand whether it can open one. A Concat goes between every such pair.
func endsOperand(k TokenKind) bool {
	return k == Literal || k == Star || k == Plus || k == RParen
}

func beginsOperand(k TokenKind) bool {
	return k == Literal || k == LParen
}

func insertConcat(tokens []Token) []Token {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]Token, 0, 2*len(tokens))
	for i, t := range tokens {
		out = append(out, t)
		if i+1 < len(tokens) && endsOperand(t.Kind) && beginsOperand(tokens[i+1].Kind) {
			out = append(out, Token{Kind: Concat, Pos: tokens[i+1].Pos})
		}
	}
	return out
}

// ToPostfix inserts explicit concatenation and reorders tokens into reverse
// Polish notation with the shunting-yard algorithm.
func ToPostfix(tokens []Token) ([]Token, error) {
	var (
		output []Token
		stack  []Token
	)
	for _, tok := range insertConcat(tokens) {
		switch tok.Kind {
		case Literal:
			output = append(output, tok)
		case LParen:
			stack = append(stack, tok)
		case RParen:
			for len(stack) > 0 && stack[len(stack)-1].Kind != LParen {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, syntaxErrorf(ReasonMismatchedParens, tok.Pos, "mismatched parentheses")
			}
			stack = stack[:len(stack)-1]
		default:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind == LParen || precedence(top.Kind) < precedence(tok.Kind) {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		}
	}

	for len(stack) > 0 {
		op := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if op.Kind == LParen {
			return nil, syntaxErrorf(ReasonMismatchedParens, op.Pos, "mismatched parentheses")
		}
		output = append(output, op)
	}
	return output, nil
}
