package dto

type PaymentRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	CardName   string `json:"cardName" validate:"required,max=100"`
	CardNumber string `json:"cardNumber" validate:"required,numeric,min=12,max=19"`
	ExpMonth   string `json:"expMonth" validate:"required,numeric,max=2,month"`
	ExpYear    string `json:"expYear" validate:"required,numeric,len=4"`
	CVC        string `json:"cvc" validate:"required,numeric,min=3,max=4"`
}

type PaymentUser struct {
	UserName string `json:"userName"`
}

type PaymentResponse struct {
	Message string      `json:"message"`
	User    PaymentUser `json:"user"`
}
