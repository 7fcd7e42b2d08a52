package dto

import "time"

type CreatePostRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
}

type UpdatePostRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1,max=5000"`
}

type Post struct {
	PostID      string    `json:"postId"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

type PostRef struct {
	PostID string `json:"postId"`
}

type PostResponse struct {
	Message string `json:"message"`
	Post    Post   `json:"post"`
}

type PostRefResponse struct {
	Message string  `json:"message"`
	Post    PostRef `json:"post"`
}
