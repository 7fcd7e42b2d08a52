package controllers

import (
	"net/http"

	"feedgate/backend/app/dto"
	"feedgate/backend/app/middleware"
	"feedgate/backend/app/services"
)

type FeedController struct{ Feed *services.FeedService }

func NewFeedController(feed *services.FeedService) *FeedController {
	return &FeedController{Feed: feed}
}

func (c *FeedController) User(w http.ResponseWriter, r *http.Request) {
	q, _ := middleware.Query(r.Context())
	posts, err := c.Feed.UserFeed(r.Context(), middleware.PrincipalID(r.Context()), q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FeedResponse{
		Message:  "All posts are fetched successfully",
		Params:   q,
		AllPosts: feedPosts(posts, true),
	})
}

func (c *FeedController) Moderator(w http.ResponseWriter, r *http.Request) {
	q, _ := middleware.Query(r.Context())
	posts, err := c.Feed.ModeratorFeed(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FeedResponse{
		Message:  "All posts are fetched successfully",
		Params:   q,
		AllPosts: feedPosts(posts, false),
	})
}
