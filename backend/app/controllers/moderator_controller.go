package controllers

import (
	"net/http"

	"feedgate/backend/app/dto"
	"feedgate/backend/app/middleware"
	"feedgate/backend/app/services"
)

type ModeratorController struct{ Moderators *services.ModeratorService }

func NewModeratorController(moderators *services.ModeratorService) *ModeratorController {
	return &ModeratorController{Moderators: moderators}
}

func (c *ModeratorController) Update(w http.ResponseWriter, r *http.Request) {
	req := middleware.Body[dto.UpdateModeratorRequest](r.Context())
	m, err := c.Moderators.Update(r.Context(), middleware.PrincipalID(r.Context()), *req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UpdateModeratorResponse{
		Message:   "Account updated successfully",
		Moderator: moderatorProfile(m),
	})
}

func (c *ModeratorController) Delete(w http.ResponseWriter, r *http.Request) {
	id := middleware.PrincipalID(r.Context())
	if err := c.Moderators.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.DeleteModeratorResponse{
		Message:     "Moderator has been deleted successfully",
		ModeratorID: id,
	})
}
