package controllers

import (
	"errors"
	"net/http"

	"bicycle-odyssey/models"
	"bicycle-odyssey/payment"
	"bicycle-odyssey/utils"

	"go.uber.org/zap"
)

// PaymentController hands out payment intents to the checkout page
type PaymentController struct {
	Bridge *payment.Bridge
}

func NewPaymentController(bridge *payment.Bridge) *PaymentController {
	return &PaymentController{Bridge: bridge}
}

// CreatePaymentIntent returns the client secret for a card payment of totalPrice dollars
func (pc *PaymentController) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentIntentRequest
	if err := decodeBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	intent, err := pc.Bridge.CreateIntent(r.Context(), req.TotalPrice)
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusOK, intent)
	case errors.Is(err, payment.ErrInvalidAmount):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		utils.LoggerFrom(r.Context()).Error("create payment intent", zap.Error(err))
		utils.RespondError(w, http.StatusBadGateway, "Payment provider unavailable")
	}
}
