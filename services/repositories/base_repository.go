package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrStaleWrite is returned when a conditional update matched no rows: the
// target row was deleted or its status moved on since the caller last read it.
var ErrStaleWrite = errors.New("conditional update matched no rows")

// BaseRepository provides common database functionality. Repositories expose
// active (non-deleted) views by default; soft deletion and restoration are
// explicit named operations so no call site carries the filter predicate.
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB returns the underlying database connection
func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}

func checkAffected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleWrite
	}
	return nil
}
