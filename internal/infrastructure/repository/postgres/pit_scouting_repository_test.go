package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/cardinalbotics/scouting-backend/internal/domain/pitscouting"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func TestScoutedTeamsQuery(t *testing.T) {
	tests := []struct {
		name   string
		season string
		event  string
		want   string
	}{
		{
			name:   "plain event",
			season: "2023",
			event:  "casj",
			want:   `SELECT "teamnumber" FROM "frc2023casj_pit"`,
		},
		{
			name:   "folds case like an unquoted identifier",
			season: "2023",
			event:  "CASJ",
			want:   `SELECT "teamnumber" FROM "frc2023casj_pit"`,
		},
		{
			name:   "quotes hostile input",
			season: "2023",
			event:  `x"; drop table users; --`,
			want:   `SELECT "teamnumber" FROM "frc2023x""; drop table users; --_pit"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoutedTeamsQuery(tt.season, tt.event); got != tt.want {
				t.Fatalf("unexpected query:\n got=%s\nwant=%s", got, tt.want)
			}
		})
	}
}

type failingQueryer struct {
	err   error
	query string
}

func (q *failingQueryer) QueryContext(_ context.Context, query string, _ ...any) (*sql.Rows, error) {
	q.query = query
	return nil, q.err
}

func (q *failingQueryer) QueryxContext(_ context.Context, query string, _ ...any) (*sqlx.Rows, error) {
	q.query = query
	return nil, q.err
}

func (q *failingQueryer) QueryRowxContext(context.Context, string, ...any) *sqlx.Row {
	return nil
}

func TestPitScoutingRepository_ErrorsAreLookupUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "missing table", err: &pq.Error{Code: "42P01", Message: `relation "frc2023casj_pit" does not exist`}},
		{name: "missing column", err: &pq.Error{Code: "42703", Message: `column "teamnumber" does not exist`}},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &failingQueryer{err: tt.err}
			_, err := NewPitScoutingRepository(db).ListScoutedTeams(context.Background(), "2023", "casj")
			if !errors.Is(err, pitscouting.ErrLookupUnavailable) {
				t.Fatalf("expected ErrLookupUnavailable, got %v", err)
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected driver error to stay wrapped, got %v", err)
			}
			if db.query != `SELECT "teamnumber" FROM "frc2023casj_pit"` {
				t.Fatalf("unexpected query %q", db.query)
			}
		})
	}
}
