package services

import (
	"context"
	"errors"
	"time"

	"feedgate/backend/app/cache"
	"feedgate/backend/app/dto"
	jwtutil "feedgate/backend/app/jwt"
	"feedgate/backend/app/models"
	"feedgate/backend/app/repo"
	"feedgate/backend/global"

	"gorm.io/gorm"
)

// Revocation invalidates every outstanding token of a deleted principal. A
// nil Store disables it.
type Revocation struct {
	Store    cache.Store
	TokenTTL time.Duration
}

func (r Revocation) revoke(ctx context.Context, scope jwtutil.Scope, id string) {
	if r.Store == nil {
		return
	}
	if err := r.Store.Revoke(ctx, cache.RevokedKey(string(scope), id), r.TokenTTL); err != nil {
		// the account is gone already; tokens still expire on their own
		global.Logger.Error().Err(err).Str("scope", string(scope)).Str("id", id).Msg("token revocation failed")
	}
}

type UserService struct {
	users   *repo.UserRepository
	follows *repo.FollowRepository
	revoke  Revocation
}

func NewUserService(users *repo.UserRepository, follows *repo.FollowRepository, revoke Revocation) *UserService {
	return &UserService{users: users, follows: follows, revoke: revoke}
}

func (s *UserService) byID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	u, err := s.users.FindByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Update applies the non-nil fields of req to the user. Email and userName
// must not belong to another user.
func (s *UserService) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.User, []string, error) {
	u, err := s.byID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	fields := map[string]any{}
	if req.Email != nil && *req.Email != u.Email {
		other, err := s.users.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, nil, err
		}
		if other != nil {
			return nil, nil, ErrEmailTaken
		}
		fields["email"] = *req.Email
		u.Email = *req.Email
	}
	if req.UserName != nil && *req.UserName != u.UserName {
		other, err := s.users.FindByUserName(ctx, *req.UserName)
		if err != nil {
			return nil, nil, err
		}
		if other != nil {
			return nil, nil, ErrUserNameTaken
		}
		fields["user_name"] = *req.UserName
		u.UserName = *req.UserName
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, nil, err
		}
		fields["password"] = hash
		u.Password = hash
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
		u.LastName = *req.LastName
	}

	if err := s.users.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, ok := fields["email"]; ok {
				return nil, nil, ErrEmailTaken
			}
			return nil, nil, ErrUserNameTaken
		}
		return nil, nil, err
	}

	followings, err := s.follows.FolloweeNames(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return u, followings, nil
}

// Delete removes the user, their posts and follow edges, and revokes their
// tokens.
func (s *UserService) Delete(ctx context.Context, id string) error {
	sum, err := s.users.DeleteCascade(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	s.revoke.revoke(ctx, jwtutil.ScopeUser, id)
	global.Logger.Info().Str("user_id", id).Int64("posts", sum.Posts).Int64("follows", sum.Follows).Msg("user deleted")
	return nil
}

// Follow adds target to the follower's list and returns both users.
func (s *UserService) Follow(ctx context.Context, followerID, targetName string) (*models.User, *models.User, error) {
	follower, target, err := s.pair(ctx, followerID, targetName)
	if err != nil {
		return nil, nil, err
	}
	exists, err := s.follows.Exists(ctx, follower.ID, target.ID)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrAlreadyFollowing
	}
	if err := s.follows.Create(ctx, follower.ID, target.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrAlreadyFollowing
		}
		return nil, nil, err
	}
	return follower, target, nil
}

func (s *UserService) Unfollow(ctx context.Context, followerID, targetName string) (*models.User, *models.User, error) {
	follower, target, err := s.pair(ctx, followerID, targetName)
	if err != nil {
		return nil, nil, err
	}
	removed, err := s.follows.Delete(ctx, follower.ID, target.ID)
	if err != nil {
		return nil, nil, err
	}
	if !removed {
		return nil, nil, ErrNotFollowing
	}
	return follower, target, nil
}

// pair loads both sides of a follow edge. Either side missing is a bad
// request, not a 404.
func (s *UserService) pair(ctx context.Context, followerID, targetName string) (*models.User, *models.User, error) {
	follower, err := s.users.FindByID(ctx, followerID)
	if err != nil {
		return nil, nil, err
	}
	if follower == nil {
		return nil, nil, ErrFollowerMissing
	}
	target, err := s.users.FindByUserName(ctx, targetName)
	if err != nil {
		return nil, nil, err
	}
	if target == nil {
		return nil, nil, ErrFollowTargetMissing
	}
	if target.ID == follower.ID {
		return nil, nil, ErrFollowSelf
	}
	return follower, target, nil
}

// Followings lists who userName follows, in follow order.
func (s *UserService) Followings(ctx context.Context, userName string) ([]string, error) {
	u, err := s.GetByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	return s.follows.FolloweeNames(ctx, u.ID)
}
