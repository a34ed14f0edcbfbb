package regexlib

// Validate rejects token sequences that cannot form a pattern. It only looks
// at adjacent pairs and a running parenthesis depth. An empty sequence is valid.
func Validate(tokens []Token) error {
	if len(tokens) == 0 {
		return nil
	}

	switch first := tokens[0]; first.Kind {
	case Star, Plus, Or, RParen:
		return syntaxErrorf(ReasonInvalidStart, first.Pos, "pattern cannot start with '%s'", operatorText(first.Kind))
	}

	depth := 0
	for i, tok := range tokens {
		var next *Token
		if i+1 < len(tokens) {
			next = &tokens[i+1]
		}

		switch tok.Kind {
		case LParen:
			depth++
			if next == nil {
				break
			}
			switch next.Kind {
			case RParen:
				return syntaxErrorf(ReasonEmptyGroup, tok.Pos, "empty group () is not allowed")
			case Star, Plus, Or:
				return syntaxErrorf(ReasonGroupOperator, next.Pos, "'(' cannot be followed by '%s'", operatorText(next.Kind))
			}
		case RParen:
			depth--
			if depth < 0 {
				return syntaxErrorf(ReasonUnbalancedParens, tok.Pos, "unbalanced parentheses: unexpected ')'")
			}
		case Or:
			if next == nil {
				return syntaxErrorf(ReasonInvalidAlternation, tok.Pos, "invalid use of '|': nothing follows it")
			}
			switch next.Kind {
			case Or, RParen, Star, Plus:
				return syntaxErrorf(ReasonInvalidAlternation, next.Pos, "invalid use of '|': followed by '%s'", operatorText(next.Kind))
			}
		}
	}

	if depth != 0 {
		return syntaxErrorf(ReasonUnbalancedParens, -1, "unbalanced parentheses: %d unclosed '('", depth)
	}
	return nil
}

func operatorText(k TokenKind) string {
	switch k {
	case Star:
		return "*"
	case Plus:
		return "+"
	case Or:
		return "|"
	case LParen:
		return "("
	case RParen:
		return ")"
	}
	return k.String()
}
