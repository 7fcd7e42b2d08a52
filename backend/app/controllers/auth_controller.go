package controllers

import (
	"net/http"

	"feedgate/backend/app/dto"
	"feedgate/backend/app/middleware"
	"feedgate/backend/app/services"
)

type AuthController struct {
	Auth *services.AuthService
	// TokenHeader is the response header carrying a fresh token.
	TokenHeader string
}

func NewAuthController(auth *services.AuthService, tokenHeader string) *AuthController {
	if tokenHeader == "" {
		tokenHeader = middleware.DefaultTokenHeader
	}
	return &AuthController{Auth: auth, TokenHeader: tokenHeader}
}

func (c *AuthController) RegisterUser(w http.ResponseWriter, r *http.Request) {
	req := middleware.Body[dto.RegisterUserRequest](r.Context())
	u, err := c.Auth.RegisterUser(r.Context(), *req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.RegisterUserResponse{
		Message:  "User has been registered successfully",
		UserData: publicUser(u),
	})
}

func (c *AuthController) LoginUser(w http.ResponseWriter, r *http.Request) {
	req := middleware.Body[dto.LoginRequest](r.Context())
	token, u, err := c.Auth.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set(c.TokenHeader, token)
	writeJSON(w, http.StatusOK, dto.UserLoginResponse{
		Message: "User has been logged in successfully",
		User:    dto.UserLogin{UserID: u.ID},
	})
}

func (c *AuthController) RegisterModerator(w http.ResponseWriter, r *http.Request) {
	req := middleware.Body[dto.RegisterModeratorRequest](r.Context())
	m, err := c.Auth.RegisterModerator(r.Context(), *req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.RegisterModeratorResponse{
		Message:       "Moderator has been registered successfully",
		ModeratorData: moderatorProfile(m),
	})
}

func (c *AuthController) LoginModerator(w http.ResponseWriter, r *http.Request) {
	req := middleware.Body[dto.LoginRequest](r.Context())
	token, m, err := c.Auth.LoginModerator(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set(c.TokenHeader, token)
	writeJSON(w, http.StatusOK, dto.ModeratorLoginResponse{
		Message:   "Moderator has been logged in successfully",
		Moderator: dto.ModeratorLogin{ModeratorID: m.ID},
	})
}
