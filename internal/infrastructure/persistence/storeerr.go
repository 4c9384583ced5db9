package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/garment/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// classifyError maps low-level persistence failures onto the domain
// error vocabulary so callers never inspect driver errors directly.
// Connection-level faults become shared.ErrStoreUnavailable, missing
// rows become shared.ErrNotFound, anything else passes through.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if isUnavailable(err) {
		return shared.ErrStoreUnavailable
	}
	return err
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Class 08 covers connection exceptions, 57 covers operator
	// intervention such as shutdown in progress.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		class := ""
		if len(pgErr.Code) >= 2 {
			class = pgErr.Code[:2]
		}
		return class == "08" || class == "57"
	}

	return pgconn.Timeout(err)
}
