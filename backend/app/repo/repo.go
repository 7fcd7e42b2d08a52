package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// first loads the single row matching query into dest. A missing row is not
// an error: found is false and err is nil.
func first(ctx context.Context, db *gorm.DB, dest any, query string, args ...any) (found bool, err error) {
	err = db.WithContext(ctx).Where(query, args...).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
