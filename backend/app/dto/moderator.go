package dto

type ModeratorProfile struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type UpdateModeratorRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=50"`
}

type UpdateModeratorResponse struct {
	Message   string           `json:"message"`
	Moderator ModeratorProfile `json:"moderator"`
}

type DeleteModeratorResponse struct {
	Message     string `json:"message"`
	ModeratorID string `json:"moderatorId"`
}
