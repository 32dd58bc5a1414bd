package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/cardinalbotics/scouting-backend/internal/domain/pitscouting"
)

// PitScoutingRepository keeps scouted teams per season+event in memory.
type PitScoutingRepository struct {
	mu      sync.RWMutex
	byEvent map[string]pitscouting.TeamSet
}

func NewPitScoutingRepository() *PitScoutingRepository {
	return &PitScoutingRepository{byEvent: make(map[string]pitscouting.TeamSet)}
}

func (r *PitScoutingRepository) ListScoutedTeams(_ context.Context, season, event string) (pitscouting.TeamSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byEvent[eventKey(season, event)]
	out := make(pitscouting.TeamSet, len(stored))
	for n := range stored {
		out[n] = struct{}{}
	}
	return out, nil
}

// MarkScouted records pit scouting for the given team numbers.
func (r *PitScoutingRepository) MarkScouted(season, event string, numbers ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := eventKey(season, event)
	set, ok := r.byEvent[key]
	if !ok {
		set = make(pitscouting.TeamSet, len(numbers))
		r.byEvent[key] = set
	}
	for _, n := range numbers {
		set[n] = struct{}{}
	}
}

func eventKey(season, event string) string {
	return strings.ToLower(strings.TrimSpace(season) + strings.TrimSpace(event))
}
