package repository

import (
	"errors"

	ledger "github.com/alpenbank/ledger/pkg/domain/ledger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapStoreError converts driver-level failures into the engine's transient
// error kinds, so callers can distinguish "retry the whole operation" from
// validation and state faults. Errors that already carry a ledger kind pass
// through unchanged; anything unrecognized is returned as-is.
func MapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if ledger.KindOf(err) != ledger.KindUnknown {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.LockNotAvailable,
			pgerrcode.DeadlockDetected,
			pgerrcode.SerializationFailure:
			return ledger.ErrLockTimeout
		}
		if pgerrcode.IsConnectionException(pgErr.Code) ||
			pgerrcode.IsOperatorIntervention(pgErr.Code) {
			return ledger.ErrStoreUnavailable
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return ledger.ErrStoreUnavailable
	}
	return err
}
