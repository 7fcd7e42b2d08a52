package services

import (
	"context"

	"feedgate/backend/app/dto"
	"feedgate/backend/app/models"
	"feedgate/backend/app/repo"
)

type FeedService struct {
	posts *repo.PostRepository
	users *repo.UserRepository
}

func NewFeedService(posts *repo.PostRepository, users *repo.UserRepository) *FeedService {
	return &FeedService{posts: posts, users: users}
}

func listQuery(followerID string, q dto.FeedQuery) repo.ListQuery {
	return repo.ListQuery{
		FollowerID: followerID,
		Sort:       q.Sort,
		Offset:     (q.Page - 1) * q.Limit,
		Limit:      q.Limit,
	}
}

// UserFeed pages through posts by the users userID follows. Only subscribed
// users get a feed.
func (s *FeedService) UserFeed(ctx context.Context, userID string, q dto.FeedQuery) ([]models.Post, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !u.Subscribed {
		return nil, ErrNotSubscribed
	}
	return s.posts.List(ctx, listQuery(u.ID, q))
}

// ModeratorFeed pages through every post.
func (s *FeedService) ModeratorFeed(ctx context.Context, q dto.FeedQuery) ([]models.Post, error) {
	return s.posts.List(ctx, listQuery("", q))
}
