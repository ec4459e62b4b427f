package table

import "github.com/cardroom/blackjacksim/internal/stats"

// BestAction picks the action with the highest mean EV among actions that
// have recorded at least one trial. ok is false when no action has data, so
// callers never compare against an undefined mean.
func BestAction(actions map[Action]*stats.Stats) (best Action, ev float64, ok bool) {
	for _, a := range AllActions {
		s, present := actions[a]
		if !present || s.N == 0 {
			continue
		}
		if !ok || s.Mean() > ev {
			best, ev, ok = a, s.Mean(), true
		}
	}
	return best, ev, ok
}

// RankedActions returns the actions with data, ordered by descending mean EV.
func RankedActions(actions map[Action]*stats.Stats) []Action {
	var ranked []Action
	for _, a := range AllActions {
		if s, present := actions[a]; present && s.N > 0 {
			ranked = append(ranked, a)
		}
	}
	// Insertion sort keeps chart order among ties; the slice holds at most
	// five entries.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && actions[ranked[j]].Mean() > actions[ranked[j-1]].Mean(); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked
}
