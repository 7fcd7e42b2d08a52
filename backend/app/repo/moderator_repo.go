package repo

import (
	"context"
	"fmt"

	"feedgate/backend/app/models"

	"gorm.io/gorm"
)

type ModeratorRepository struct{ db *gorm.DB }

func NewModeratorRepository(db *gorm.DB) *ModeratorRepository {
	return &ModeratorRepository{db: db}
}

func (r *ModeratorRepository) Create(ctx context.Context, m *models.Moderator) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create moderator: %w", err)
	}
	return nil
}

func (r *ModeratorRepository) FindByID(ctx context.Context, id string) (*models.Moderator, error) {
	return r.findBy(ctx, "id = ?", id)
}

func (r *ModeratorRepository) FindByEmail(ctx context.Context, email string) (*models.Moderator, error) {
	return r.findBy(ctx, "email = ?", email)
}

func (r *ModeratorRepository) findBy(ctx context.Context, query string, arg any) (*models.Moderator, error) {
	var m models.Moderator
	found, err := first(ctx, r.db, &m, query, arg)
	if err != nil {
		return nil, fmt.Errorf("find moderator: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &m, nil
}

func (r *ModeratorRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.Moderator{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update moderator: %w", err)
	}
	return nil
}

// Delete reports whether a row was removed. Moderators own nothing, so there
// is no cascade.
func (r *ModeratorRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Moderator{})
	if res.Error != nil {
		return false, fmt.Errorf("delete moderator: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
