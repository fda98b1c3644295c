package rules

import "strings"

// ConwayRule is the rule string of Conway's Game of Life in B/S notation
const ConwayRule = "B3/S23"

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// IsConway reports whether a rule string names Conway's rule. Both B/S
// notation ("B3/S23") and the older S/B notation ("23/3") are accepted,
// case-insensitively and ignoring surrounding whitespace.
func IsConway(rule string) bool {
	r := strings.ToUpper(strings.TrimSpace(rule))
	switch r {
	case "B3/S23", "S23/B3", "23/3":
		return true
	}
	return false
}
