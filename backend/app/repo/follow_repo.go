package repo

import (
	"context"
	"fmt"

	"feedgate/backend/app/models"

	"gorm.io/gorm"
)

type FollowRepository struct{ db *gorm.DB }

func NewFollowRepository(db *gorm.DB) *FollowRepository { return &FollowRepository{db: db} }

func (r *FollowRepository) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return count > 0, nil
}

// Create inserts the edge. The unique index makes a concurrent duplicate
// fail with gorm.ErrDuplicatedKey.
func (r *FollowRepository) Create(ctx context.Context, followerID, followeeID string) error {
	f := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := r.db.WithContext(ctx).Create(&f).Error; err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

// Delete reports whether an edge was removed.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, fmt.Errorf("delete follow: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// FolloweeNames lists the userNames followed by followerID in follow order.
func (r *FollowRepository) FolloweeNames(ctx context.Context, followerID string) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Select("users.user_name").
		Joins("JOIN users ON users.id = follows.followee_id").
		Where("follows.follower_id = ?", followerID).
		Order("follows.id").
		Pluck("users.user_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list followings: %w", err)
	}
	return names, nil
}
