package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/newsletter-server/internal/model"
)

// SQLSTATE codes mapped to model errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// unavailable marks err as a store failure the caller cannot correct.
func unavailable(action string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", action, model.ErrStoreUnavailable, err)
}
