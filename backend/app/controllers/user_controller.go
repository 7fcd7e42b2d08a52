package controllers

import (
	"net/http"

	"feedgate/backend/app/dto"
	"feedgate/backend/app/middleware"
	"feedgate/backend/app/services"

	"github.com/go-chi/chi/v5"
)

type UserController struct{ Users *services.UserService }

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	u, err := c.Users.GetByUserName(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.GetUserResponse{
		Message: "User's information fetched successfully",
		User:    publicUser(u),
	})
}

func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	req := middleware.Body[dto.UpdateUserRequest](r.Context())
	u, followings, err := c.Users.Update(r.Context(), middleware.PrincipalID(r.Context()), *req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UpdateUserResponse{
		Message: "Account updated successfully",
		User:    userProfile(u, followings),
	})
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id := middleware.PrincipalID(r.Context())
	if err := c.Users.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.DeleteUserResponse{
		Message: "User has been deleted successfully",
		UserID:  id,
	})
}

func (c *UserController) Follow(w http.ResponseWriter, r *http.Request) {
	follower, target, err := c.Users.Follow(r.Context(), middleware.PrincipalID(r.Context()), chi.URLParam(r, "username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FollowResponse{
		Message: "User has been followed",
		Data:    dto.FollowData{UserName: follower.UserName, FollowingTo: target.UserName},
	})
}

func (c *UserController) Unfollow(w http.ResponseWriter, r *http.Request) {
	follower, target, err := c.Users.Unfollow(r.Context(), middleware.PrincipalID(r.Context()), chi.URLParam(r, "username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UnfollowResponse{
		Message: "User has been unfollowed",
		Data:    dto.UnfollowData{UserName: follower.UserName, UnfollowingTo: target.UserName},
	})
}

func (c *UserController) Followings(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "username")
	names, err := c.Users.Followings(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FollowingsResponse{
		Message:    "Followings fetched successfully",
		UserName:   name,
		Followings: names,
	})
}
