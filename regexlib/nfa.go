package regexlib

// fragment is a sub-automaton under assembly with one entry and one exit.
type fragment struct {
	start, end *State
}

type builder struct {
	ids   *IDAllocator
	stack []fragment
}

func (b *builder) push(f fragment) { b.stack = append(b.stack, f) }

func (b *builder) pop() fragment {
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return f
}

func (b *builder) need(n int, op string) error {
	if len(b.stack) < n {
		if n == 1 {
			return constructionErrorf(ReasonMissingOperand, "invalid regex: missing operand for %s", op)
		}
		return constructionErrorf(ReasonMissingOperand, "invalid regex: missing operands for %s", op)
	}
	return nil
}

func (b *builder) literal(c rune) fragment {
	s1, s2 := b.ids.NewState(), b.ids.NewState()
	s1.link(s2, c)
	return fragment{start: s1, end: s2}
}

// concat folds second.start into first.end: its outgoing edges are copied
// onto first.end and second.start is left unreachable.
func (b *builder) concat(first, second fragment) fragment {
	for _, t := range second.start.out {
		first.end.link(t.to, t.symbol)
	}
	return fragment{start: first.start, end: second.end}
}

func (b *builder) union(first, second fragment) fragment {
	s, e := b.ids.NewState(), b.ids.NewState()
	s.link(first.start, Epsilon)
	s.link(second.start, Epsilon)
	first.end.link(e, Epsilon)
	second.end.link(e, Epsilon)
	return fragment{start: s, end: e}
}

func (b *builder) repeat(f fragment, allowZero bool) fragment {
	s, e := b.ids.NewState(), b.ids.NewState()
	s.link(f.start, Epsilon)
	f.end.link(f.start, Epsilon)
	f.end.link(e, Epsilon)
	if allowZero {
		s.link(e, Epsilon)
	}
	return fragment{start: s, end: e}
}

// Build evaluates a postfix token stream into an ε-NFA using Thompson's
// construction. An empty stream yields a single accepting start state.
// A nil allocator means a fresh one starting at 0.
func Build(postfix []Token, ids *IDAllocator) (*Automaton, error) {
	if ids == nil {
		ids = &IDAllocator{}
	}
	b := &builder{ids: ids}

	for _, tok := range postfix {
		switch tok.Kind {
		case Literal:
			b.push(b.literal(tok.Value))
		case Concat:
			if err := b.need(2, "concatenation"); err != nil {
				return nil, err
			}
			second, first := b.pop(), b.pop()
			b.push(b.concat(first, second))
		case Or:
			if err := b.need(2, "OR (|)"); err != nil {
				return nil, err
			}
			second, first := b.pop(), b.pop()
			b.push(b.union(first, second))
		case Star:
			if err := b.need(1, "STAR (*)"); err != nil {
				return nil, err
			}
			b.push(b.repeat(b.pop(), true))
		case Plus:
			if err := b.need(1, "PLUS (+)"); err != nil {
				return nil, err
			}
			b.push(b.repeat(b.pop(), false))
		default:
			return nil, constructionErrorf(ReasonUnexpectedToken, "invalid regex: unexpected %s in postfix stream", tok.Kind)
		}
	}

	a := NewAutomaton()
	switch len(b.stack) {
	case 0:
		s := ids.NewState()
		s.Accepting = true
		a.SetStart(s)
		return a, nil
	case 1:
	default:
		return nil, constructionErrorf(ReasonStackNotEmpty, "invalid regex: stack not empty after evaluation (%d fragments)", len(b.stack))
	}

	final := b.pop()
	final.end.Accepting = true
	register(a, final.start)
	return a, nil
}

// register adds every state and edge reachable from start, breadth first.
func register(a *Automaton, start *State) {
	a.SetStart(start)
	seen := map[*State]bool{start: true}
	queue := []*State{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		a.AddState(cur)
		for _, t := range cur.out {
			if t.symbol != Epsilon {
				a.alphabet[t.symbol] = struct{}{}
			}
			if !seen[t.to] {
				seen[t.to] = true
				queue = append(queue, t.to)
			}
		}
	}
}
