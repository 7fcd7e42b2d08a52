package services

import (
	"context"
	"errors"

	"feedgate/backend/app/dto"
	jwtutil "feedgate/backend/app/jwt"
	"feedgate/backend/app/models"
	"feedgate/backend/app/repo"

	"gorm.io/gorm"
)

type ModeratorService struct {
	moderators *repo.ModeratorRepository
	revoke     Revocation
}

func NewModeratorService(moderators *repo.ModeratorRepository, revoke Revocation) *ModeratorService {
	return &ModeratorService{moderators: moderators, revoke: revoke}
}

func (s *ModeratorService) Update(ctx context.Context, id string, req dto.UpdateModeratorRequest) (*models.Moderator, error) {
	m, err := s.moderators.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrModeratorNotFound
	}

	fields := map[string]any{}
	if req.Email != nil && *req.Email != m.Email {
		other, err := s.moderators.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrEmailTaken
		}
		fields["email"] = *req.Email
		m.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
		m.Password = hash
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
		m.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
		m.LastName = *req.LastName
	}

	if err := s.moderators.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return m, nil
}

func (s *ModeratorService) Delete(ctx context.Context, id string) error {
	removed, err := s.moderators.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrModeratorNotFound
	}
	s.revoke.revoke(ctx, jwtutil.ScopeModerator, id)
	return nil
}
