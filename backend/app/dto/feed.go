package dto

import "time"

// FeedQuery is the pagination contract shared by the user and moderator feeds.
type FeedQuery struct {
	Page  int    `json:"page" validate:"min=1"`
	Limit int    `json:"limit" validate:"min=1"`
	Sort  string `json:"sortBy" validate:"oneof=date title description"`
}

// FeedPost omits userId always and userName when UserName is empty (moderator view).
type FeedPost struct {
	PostID      string    `json:"postId"`
	UserName    string    `json:"userName,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

type FeedResponse struct {
	Message  string     `json:"message"`
	Params   FeedQuery  `json:"params"`
	AllPosts []FeedPost `json:"allPosts"`
}
