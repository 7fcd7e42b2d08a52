package services

import (
	"context"
	"errors"
	"fmt"

	"feedgate/backend/app/dto"
	jwtutil "feedgate/backend/app/jwt"
	"feedgate/backend/app/metrics"
	"feedgate/backend/app/models"
	"feedgate/backend/app/repo"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BcryptCost is the work factor for new password hashes.
var BcryptCost = bcrypt.DefaultCost

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type AuthService struct {
	users      *repo.UserRepository
	moderators *repo.ModeratorRepository
	signer     *jwtutil.Signer
}

func NewAuthService(users *repo.UserRepository, moderators *repo.ModeratorRepository, signer *jwtutil.Signer) *AuthService {
	return &AuthService{users: users, moderators: moderators, signer: signer}
}

func (s *AuthService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*models.User, error) {
	if u, err := s.users.FindByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrEmailTaken
	}
	if u, err := s.users.FindByUserName(ctx, req.UserName); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrUserNameTaken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:     req.Email,
		Password:  hash,
		UserName:  req.UserName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(jwtutil.ScopeUser)).Inc()
	return u, nil
}

// LoginUser checks the credentials and mints a user-scoped token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !checkPassword(u.Password, password) {
		metrics.RecordLogin(string(jwtutil.ScopeUser), false)
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.signer.Sign(u.ID, jwtutil.ScopeUser)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	metrics.RecordLogin(string(jwtutil.ScopeUser), true)
	return token, u, nil
}

func (s *AuthService) RegisterModerator(ctx context.Context, req dto.RegisterModeratorRequest) (*models.Moderator, error) {
	if m, err := s.moderators.FindByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if m != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	m := &models.Moderator{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.moderators.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(jwtutil.ScopeModerator)).Inc()
	return m, nil
}

func (s *AuthService) LoginModerator(ctx context.Context, email, password string) (string, *models.Moderator, error) {
	m, err := s.moderators.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if m == nil || !checkPassword(m.Password, password) {
		metrics.RecordLogin(string(jwtutil.ScopeModerator), false)
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.signer.Sign(m.ID, jwtutil.ScopeModerator)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	metrics.RecordLogin(string(jwtutil.ScopeModerator), true)
	return token, m, nil
}
