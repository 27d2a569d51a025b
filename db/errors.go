package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrForbidden       = errors.New("record not owned by user")
	ErrConflict        = errors.New("record already exists")
	ErrInvalidCursor   = errors.New("invalid cursor")
	ErrInvalidSort     = errors.New("invalid sort key")
	ErrAggregateUpdate = errors.New("reviews aggregate update failed")
)

// translateError maps gorm errors to the package sentinel errors
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
