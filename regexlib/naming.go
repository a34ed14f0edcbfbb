package regexlib

import (
	"fmt"
	"slices"
)

// RenameStates relabels the states of a to q0, q1, ... in breadth-first order
// from the start state, visiting edges sorted by symbol (then target id).
// States the walk cannot reach follow in registration order. The result
// depends only on the graph, so renaming twice gives the same labels.
func RenameStates(a *Automaton) {
	order := make([]*State, 0, len(a.states))
	seen := make(map[*State]bool, len(a.states))

	if a.start != nil {
		seen[a.start] = true
		queue := []*State{a.start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			order = append(order, cur)

			edges := slices.Clone(cur.out)
			slices.SortStableFunc(edges, func(x, y *Transition) int {
				if x.symbol != y.symbol {
					return int(x.symbol) - int(y.symbol)
				}
				return int(x.to.ID) - int(y.to.ID)
			})
			for _, t := range edges {
				if !seen[t.to] {
					seen[t.to] = true
					queue = append(queue, t.to)
				}
			}
		}
	}

	for _, s := range a.states {
		if !seen[s] {
			seen[s] = true
			order = append(order, s)
		}
	}

	for i, s := range order {
		s.Label = fmt.Sprintf("q%d", i)
	}
}
