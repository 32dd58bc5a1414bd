package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const sqlStateUndefinedTable = "42P01"

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == sqlStateUndefinedTable
	}
	return false
}

func nullInt64ToInt(v sql.NullInt64) (int, bool) {
	if !v.Valid {
		return 0, false
	}
	return int(v.Int64), true
}
