package repo

import (
	"context"
	"fmt"

	"feedgate/backend/app/models"

	"gorm.io/gorm"
)

type PostRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) *PostRepository { return &PostRepository{db: db} }

func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// FindByID returns nil, nil when the post does not exist.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	found, err := first(ctx, r.db, &p, "id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return false, fmt.Errorf("delete post: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// sortColumns maps the public sort keys to ORDER BY clauses. Dates run newest
// first, text fields alphabetically.
var sortColumns = map[string]string{
	"date":        "date DESC",
	"title":       "title ASC",
	"description": "description ASC",
}

type ListQuery struct {
	// FollowerID limits the listing to authors followed by this user; empty
	// lists every post.
	FollowerID string
	Sort       string
	Offset     int
	Limit      int
}

func (r *PostRepository) List(ctx context.Context, q ListQuery) ([]models.Post, error) {
	order, ok := sortColumns[q.Sort]
	if !ok {
		order = sortColumns["date"]
	}
	tx := r.db.WithContext(ctx).Model(&models.Post{})
	if q.FollowerID != "" {
		followees := r.db.Model(&models.Follow{}).Select("followee_id").Where("follower_id = ?", q.FollowerID)
		tx = tx.Where("user_id IN (?)", followees)
	}
	posts := []models.Post{}
	err := tx.Order(order).Order("id ASC").Offset(q.Offset).Limit(q.Limit).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
