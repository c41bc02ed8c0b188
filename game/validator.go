package game

// DefaultMinMarked is how many distinct called numbers a claim needs under
// the default rule.
const DefaultMinMarked = 5

// WinRule decides whether a set of claimed numbers wins against a room's
// call history. The rule is pluggable because the shipped policy is a known
// simplification: it counts marked numbers without checking card geometry
// (rows, columns, diagonals) or that the numbers belong to the claimant's
// card. A stricter rule can be dropped in without touching the registry.
type WinRule interface {
	Evaluate(claimed, called []int) bool
}

// MinMarkedRule accepts a claim when every claimed number was actually
// called and at least Min distinct ones were claimed. A claim containing
// any number never called in the room fails outright, and duplicates in the
// claim cannot pad the count.
type MinMarkedRule struct {
	Min int
}

func (r MinMarkedRule) Evaluate(claimed, called []int) bool {
	calledSet := make(map[int]struct{}, len(called))
	for _, n := range called {
		calledSet[n] = struct{}{}
	}
	distinct := make(map[int]struct{}, len(claimed))
	for _, n := range claimed {
		if _, ok := calledSet[n]; !ok {
			return false
		}
		distinct[n] = struct{}{}
	}
	return len(distinct) >= r.Min
}
