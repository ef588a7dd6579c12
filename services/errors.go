package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cafesys/cafe-backend/auth"
)

// Error kinds returned by every service operation. Callers match with
// errors.Is; anything wrapped in ErrStore is retryable, the rest are not.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrStore        = errors.New("store error")
)

// classify maps storage and gate failures onto the error kinds above.
// Errors already carrying a kind pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrNotFound, ErrConflict, ErrUnauthorized, ErrInvalidInput, ErrStore} {
		if errors.Is(err, kind) {
			return err
		}
	}
	var denied *auth.Denied
	switch {
	case errors.As(err, &denied):
		return fmt.Errorf("%w: %s", ErrUnauthorized, denied.Reason)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
}
