// routes/routes.go
package routes

import (
	"net/http"

	"bicycle-odyssey/controllers"
	"bicycle-odyssey/middleware"

	"github.com/gorilla/mux"
)

// Controllers groups every handler set the router needs
type Controllers struct {
	Parts    *controllers.PartController
	Orders   *controllers.OrderController
	Payments *controllers.PaymentController
	Profiles *controllers.ProfileController
	Reviews  *controllers.ReviewController
	Users    *controllers.UserController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers, guard *middleware.Guard) {
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Hello bicycle odyssey!"))
	}).Methods("GET")

	// Part routes
	router.HandleFunc("/parts", c.Parts.GetParts).Methods("GET")
	router.HandleFunc("/parts", c.Parts.CreatePart).Methods("POST")
	router.HandleFunc("/parts/{id}", c.Parts.GetPartByID).Methods("GET")
	router.HandleFunc("/parts/{id}", c.Parts.UpdatePart).Methods("PUT")
	router.HandleFunc("/parts/{id}", c.Parts.DeletePart).Methods("DELETE")

	// Payment routes
	router.HandleFunc("/create-payment-intent", c.Payments.CreatePaymentIntent).Methods("POST")

	// Order routes
	router.HandleFunc("/ordered", c.Orders.CreateOrder).Methods("POST")
	router.HandleFunc("/ordered", c.Orders.GetOrders).Methods("GET")
	router.HandleFunc("/ordered/{id}", c.Orders.GetOrderByID).Methods("GET")
	router.HandleFunc("/ordered/{id}", c.Orders.ConfirmPayment).Methods("PATCH")
	router.HandleFunc("/ordered/{id}", c.Orders.UpdateDelivery).Methods("PUT")
	router.HandleFunc("/ordered/{id}", c.Orders.DeleteOrder).Methods("DELETE")

	// Profile and review routes
	router.HandleFunc("/profiles", c.Profiles.CreateProfile).Methods("POST")
	router.HandleFunc("/profiles", c.Profiles.GetProfiles).Methods("GET")
	router.HandleFunc("/reviews", c.Reviews.CreateReview).Methods("POST")
	router.HandleFunc("/reviews", c.Reviews.GetReviews).Methods("GET")

	// User routes
	router.HandleFunc("/admin/{email}", c.Users.GetAdminStatus).Methods("GET")
	router.HandleFunc("/user/{email}", c.Users.UpsertUser).Methods("PUT")

	// Protected routes
	router.Handle("/users", guard.Authenticate(http.HandlerFunc(c.Users.GetUsers))).Methods("GET")
	router.Handle("/user/admin/{email}", guard.Authenticate(http.HandlerFunc(c.Users.MakeAdmin))).Methods("PUT")
}
