package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fsdevblog/ledgerbook/internal/domain"
)

const uniqueViolationCode = "23505"

// errNoRowsAffected lets delete paths report a scoped miss the same way a
// scoped select does.
var errNoRowsAffected = pgx.ErrNoRows

// convertErr maps driver errors onto the domain sentinels: pgx.ErrNoRows
// becomes ErrRecordNotFound, a unique violation becomes ErrDuplicateKey,
// everything else ErrUnknown with the original message preserved.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	errType := domain.ErrUnknown
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		errType = domain.ErrDuplicateKey
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}
