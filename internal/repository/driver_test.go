package repository

import (
	"github.com/jmoiron/sqlx"
)

// sqlmock is not in sqlx's default bind table; register it as NAMED so
// PrepareNamed keeps the :name placeholders the mock expectations match.
func init() {
	sqlx.BindDriver("sqlmock", sqlx.NAMED)
}
