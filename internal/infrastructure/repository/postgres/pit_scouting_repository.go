package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cardinalbotics/scouting-backend/internal/domain/pitscouting"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pitTeamColumn is the team number column as Postgres stores it when the
// scouting app creates the table with an unquoted teamNumber.
const pitTeamColumn = "teamnumber"

// PitScoutingRepository reads the per-event pit tables written by the scouting app.
type PitScoutingRepository struct {
	db sqlx.QueryerContext
}

func NewPitScoutingRepository(db sqlx.QueryerContext) *PitScoutingRepository {
	return &PitScoutingRepository{db: db}
}

func (r *PitScoutingRepository) ListScoutedTeams(ctx context.Context, season, event string) (pitscouting.TeamSet, error) {
	var rows []sql.NullInt64
	if err := sqlx.SelectContext(ctx, r.db, &rows, scoutedTeamsQuery(season, event)); err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("%w: no pit table for %s%s: %w", pitscouting.ErrLookupUnavailable, season, event, err)
		}
		return nil, fmt.Errorf("%w: select scouted teams: %w", pitscouting.ErrLookupUnavailable, err)
	}

	out := make(pitscouting.TeamSet, len(rows))
	for _, row := range rows {
		if n, ok := nullInt64ToInt(row); ok {
			out[n] = struct{}{}
		}
	}
	return out, nil
}

// pitTableName folds case the same way Postgres folds the unquoted name the
// scouting app creates.
func pitTableName(season, event string) string {
	return strings.ToLower("frc" + season + event + "_pit")
}

func scoutedTeamsQuery(season, event string) string {
	return "SELECT " + pq.QuoteIdentifier(pitTeamColumn) + " FROM " + pq.QuoteIdentifier(pitTableName(season, event))
}
