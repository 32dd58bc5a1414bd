package pitscouting

import "context"

// Repository reads which teams were already pit scouted at an event.
type Repository interface {
	ListScoutedTeams(ctx context.Context, season, event string) (TeamSet, error)
}
