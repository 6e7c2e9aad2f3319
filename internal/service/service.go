package service

import (
	"context"
	"errors"
	"time"

	"fruitwarehouse/internal/apierror"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// notFound turns gorm.ErrRecordNotFound into a NotFound domain error and
// passes any other error through.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(format, args...)
	}
	return err
}

// Clock returns the current time; services take one so tests can pin "today".
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// notFoundAsValidation is notFound for lookups whose absence is a client input problem.
func notFoundAsValidation(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.Validation(format, args...)
	}
	return err
}
