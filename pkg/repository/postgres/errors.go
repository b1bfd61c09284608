package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

// inUse reports whether err is a delete blocked by a RESTRICT foreign key.
func inUse(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
