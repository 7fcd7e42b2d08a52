package services

import (
	"context"

	"feedgate/backend/app/dto"
	"feedgate/backend/app/metrics"
	"feedgate/backend/app/models"
	"feedgate/backend/app/repo"
)

// Actor is whoever acts on a post. Moderators skip the ownership check.
type Actor struct {
	ID        string
	Moderator bool
}

type PostService struct {
	posts *repo.PostRepository
	users *repo.UserRepository
}

func NewPostService(posts *repo.PostRepository, users *repo.UserRepository) *PostService {
	return &PostService{posts: posts, users: users}
}

// Create stores a post for userID, copying their current userName onto it.
func (s *PostService) Create(ctx context.Context, userID string, req dto.CreatePostRequest) (*models.Post, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	p := &models.Post{
		UserID:      u.ID,
		UserName:    u.UserName,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	metrics.PostsCreated.Inc()
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// editable loads the post and checks actor may change it. Existence is
// checked before ownership so a missing post is always 404.
func (s *PostService) editable(ctx context.Context, id string, actor Actor) (*models.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Moderator && p.UserID != actor.ID {
		return nil, ErrNotOwner
	}
	return p, nil
}

func (s *PostService) Update(ctx context.Context, id string, actor Actor, req dto.UpdatePostRequest) (*models.Post, error) {
	p, err := s.editable(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
		p.Title = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		p.Description = *req.Description
	}
	if err := s.posts.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id string, actor Actor) error {
	if _, err := s.editable(ctx, id, actor); err != nil {
		return err
	}
	removed, err := s.posts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrPostNotFound
	}
	return nil
}
