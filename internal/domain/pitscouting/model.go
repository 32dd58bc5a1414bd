package pitscouting

import (
	"errors"
	"sort"
)

// ErrLookupUnavailable means local records could not be read, e.g. the event's
// pit table has not been created yet.
var ErrLookupUnavailable = errors.New("pit scouting lookup unavailable")

// TeamSet holds team numbers that already have a pit scouting record.
type TeamSet map[int]struct{}

func NewTeamSet(numbers ...int) TeamSet {
	out := make(TeamSet, len(numbers))
	for _, n := range numbers {
		out[n] = struct{}{}
	}
	return out
}

func (s TeamSet) Contains(number int) bool {
	_, ok := s[number]
	return ok
}

// Missing returns the numbers from all that are not in the set, ascending and deduplicated.
func (s TeamSet) Missing(all []int) []int {
	seen := make(map[int]struct{}, len(all))
	out := make([]int, 0, len(all))
	for _, n := range all {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if s.Contains(n) {
			continue
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
