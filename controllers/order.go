// controllers/order.go
package controllers

import (
	"errors"
	"net/http"

	"bicycle-odyssey/models"
	"bicycle-odyssey/payment"
	"bicycle-odyssey/repository"
	"bicycle-odyssey/store"
	"bicycle-odyssey/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// OrderController handles order-related requests
type OrderController struct {
	Orders *repository.OrderRepository
	Bridge *payment.Bridge
	// AllowUnfiltered lets GET /ordered without an email return every order
	AllowUnfiltered bool
}

// NewOrderController creates a new OrderController
func NewOrderController(orders *repository.OrderRepository, bridge *payment.Bridge, allowUnfiltered bool) *OrderController {
	return &OrderController{
		Orders:          orders,
		Bridge:          bridge,
		AllowUnfiltered: allowUnfiltered,
	}
}

// CreateOrder stores a checkout; new orders always start unpaid
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := decodeBody(r, &order); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := oc.Orders.Create(r.Context(), &order)
	if err != nil {
		respondStoreError(w, r, err, "Order")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// GetOrders lists the orders of ?email=, or all orders when it is omitted
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" && !oc.AllowUnfiltered {
		utils.RespondError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	orders, err := oc.Orders.ListByEmail(r.Context(), email)
	if err != nil {
		respondStoreError(w, r, err, "Order")
		return
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}

// GetOrderByID retrieves a single order
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	order, err := oc.Orders.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, r, err, "Order")
		return
	}
	utils.RespondJSON(w, http.StatusOK, order)
}

// ConfirmPayment marks the order paid and records the payment document.
// The body is the payment record and must carry a transactionId.
func (oc *OrderController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var record models.Payment
	if err := decodeBody(r, &record); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	orderID := mux.Vars(r)["id"]
	conf, err := oc.Bridge.ConfirmPayment(r.Context(), orderID, record)
	switch {
	case err == nil:
	case errors.Is(err, payment.ErrMissingTransaction):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, store.ErrInvalidID):
		utils.RespondError(w, http.StatusBadRequest, "Invalid Order ID")
		return
	default:
		utils.LoggerFrom(r.Context()).Error("payment confirmation incomplete",
			zap.String("order_id", orderID),
			zap.String("transaction_id", record.TransactionID),
			zap.Bool("order_marked", conf != nil && conf.Order != nil),
			zap.Bool("payment_recorded", conf != nil && conf.Payment != nil),
			zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, conf.Order)
}

// UpdateDelivery sets the delivery note shown on the order
func (oc *OrderController) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	var update models.OrderDeliveryUpdate
	if err := decodeBody(r, &update); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if update.DeliverText == "" {
		utils.RespondError(w, http.StatusBadRequest, "delivertext is required")
		return
	}

	result, err := oc.Orders.MarkDelivered(r.Context(), mux.Vars(r)["id"], update.DeliverText)
	if err != nil {
		respondStoreError(w, r, err, "Order")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// DeleteOrder cancels an order
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	result, err := oc.Orders.DeleteByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, r, err, "Order")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}
