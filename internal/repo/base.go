package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/bakery-backend/pkg/db"
)

// Base provides a shared foundation for domain repositories: a context-bound
// connection and store-error classification at the point of failure.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(conn *gorm.DB) Base {
	return Base{db: conn}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Fail classifies a store error for the named operation.
func (b Base) Fail(err error, op string) error {
	return db.ClassifyError(err, op)
}

// Affected turns a write result into an error, treating zero matched rows as
// db.ErrNoRowsMatched.
func (b Base) Affected(res *gorm.DB, op string) error {
	if res.Error != nil {
		return b.Fail(res.Error, op)
	}
	if res.RowsAffected == 0 {
		return b.Fail(db.ErrNoRowsMatched, op)
	}
	return nil
}
