package repo

import (
	"context"
	"fmt"

	"feedgate/backend/app/models"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findBy(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findBy(ctx, "email = ?", email)
}

func (r *UserRepository) FindByUserName(ctx context.Context, userName string) (*models.User, error) {
	return r.findBy(ctx, "user_name = ?", userName)
}

// findBy returns nil, nil when no user matches.
func (r *UserRepository) findBy(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	found, err := first(ctx, r.db, &u, query, arg)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}

// Update writes the given columns. Unique violations surface as
// gorm.ErrDuplicatedKey.
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// MarkSubscribed flips subscribed to true only if it is still false. It
// reports whether this call made the change.
func (r *UserRepository) MarkSubscribed(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND subscribed = ?", id, false).
		Update("subscribed", true)
	if res.Error != nil {
		return false, fmt.Errorf("mark subscribed: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

type DeleteSummary struct {
	Posts   int64
	Follows int64
}

// DeleteCascade removes the user together with their posts and every follow
// row pointing to or from them, in one transaction. It returns
// gorm.ErrRecordNotFound when the user does not exist.
func (r *UserRepository) DeleteCascade(ctx context.Context, id string) (DeleteSummary, error) {
	var sum DeleteSummary
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		res = tx.Where("user_id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		sum.Posts = res.RowsAffected
		res = tx.Where("follower_id = ? OR followee_id = ?", id, id).Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		sum.Follows = res.RowsAffected
		return nil
	})
	if err != nil {
		return DeleteSummary{}, fmt.Errorf("delete user: %w", err)
	}
	return sum, nil
}
