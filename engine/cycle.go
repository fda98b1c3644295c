package engine

import "github.com/sheikhrachel/golife/model"

// Cycle describes where a generation history starts repeating itself
type Cycle struct {
	// Start is the first generation of the repeating stretch
	Start int
	// Period is the number of generations before the state recurs, 1 for a still life
	Period int
}

// IsStill reports whether the history settled into a still life (an extinct
// grid is one too)
func (c Cycle) IsStill() bool {
	return c.Period == 1
}

// DetectCycle finds the first generation whose state already appeared
// earlier in history.
func DetectCycle(history []*model.Grid) (Cycle, bool) {
	seen := make(map[string][]int, len(history))
	for i, g := range history {
		hash := g.GetGridHash()
		for _, j := range seen[hash] {
			// confirm, a hash match alone could be a collision
			if history[j].Equal(g) {
				return Cycle{Start: j, Period: i - j}, true
			}
		}
		seen[hash] = append(seen[hash], i)
	}
	return Cycle{}, false
}
