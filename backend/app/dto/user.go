package dto

// PublicUser is what other principals may see of a user.
type PublicUser struct {
	UserName  string `json:"userName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UserProfile is the owner's view of their account (no password, no id).
type UserProfile struct {
	Email      string   `json:"email"`
	UserName   string   `json:"userName"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Followings []string `json:"followings"`
	Subscribed bool     `json:"subscribed"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=50"`
	UserName  *string `json:"userName" validate:"omitempty,alphanum,min=3,max=30"`
}

type GetUserResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
}

type UpdateUserResponse struct {
	Message string      `json:"message"`
	User    UserProfile `json:"user"`
}

type DeleteUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type FollowData struct {
	UserName    string `json:"userName"`
	FollowingTo string `json:"following_to"`
}

type UnfollowData struct {
	UserName      string `json:"userName"`
	UnfollowingTo string `json:"unfollowing_to"`
}

type FollowResponse struct {
	Message string     `json:"message"`
	Data    FollowData `json:"data"`
}

type UnfollowResponse struct {
	Message string       `json:"message"`
	Data    UnfollowData `json:"data"`
}

type FollowingsResponse struct {
	Message    string   `json:"message"`
	UserName   string   `json:"userName"`
	Followings []string `json:"followings"`
}
