// Package service implements the business rules on top of the repository
// layer. Services return *apierror.Error so handlers can map failures to
// HTTP statuses without string matching.
package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available, or
// calls fn(nil) directly when db is nil (unit test mode with stub repos).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func isDuplicate(err error) bool { return errors.Is(err, gorm.ErrDuplicatedKey) }

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
