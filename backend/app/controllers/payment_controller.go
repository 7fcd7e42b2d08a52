package controllers

import (
	"net/http"

	"feedgate/backend/app/dto"
	"feedgate/backend/app/middleware"
	"feedgate/backend/app/services"
)

type PaymentController struct{ Payments *services.PaymentService }

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

func (c *PaymentController) Pay(w http.ResponseWriter, r *http.Request) {
	req := middleware.Body[dto.PaymentRequest](r.Context())
	u, err := c.Payments.Pay(r.Context(), middleware.PrincipalID(r.Context()), *req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.PaymentResponse{
		Message: "Payment is done successfully",
		User:    dto.PaymentUser{UserName: u.UserName},
	})
}
