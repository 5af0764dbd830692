package repositories

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable is wrapped by every storage failure.
var ErrStorageUnavailable = errors.New("storage unavailable")

// storageError wraps a database error with the operation that failed.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
