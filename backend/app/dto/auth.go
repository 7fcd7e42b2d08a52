package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

type RegisterUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,maxbytes=72"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	UserName  string `json:"userName" validate:"required,alphanum,min=3,max=30"`
}

type RegisterModeratorRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,maxbytes=72"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
}

type UserLogin struct {
	UserID string `json:"userId"`
}

type ModeratorLogin struct {
	ModeratorID string `json:"moderatorId"`
}

type UserLoginResponse struct {
	Message string    `json:"message"`
	User    UserLogin `json:"user"`
}

type ModeratorLoginResponse struct {
	Message   string         `json:"message"`
	Moderator ModeratorLogin `json:"moderator"`
}

type RegisterUserResponse struct {
	Message  string     `json:"message"`
	UserData PublicUser `json:"userData"`
}

type RegisterModeratorResponse struct {
	Message       string           `json:"message"`
	ModeratorData ModeratorProfile `json:"moderatorData"`
}
