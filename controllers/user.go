package controllers

import (
	"net/http"

	"bicycle-odyssey/middleware"
	"bicycle-odyssey/models"
	"bicycle-odyssey/repository"
	"bicycle-odyssey/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// UserController handles user-related requests
type UserController struct {
	Users  *repository.UserRepository
	Guard  *middleware.Guard
	Tokens *utils.TokenService
}

// NewUserController creates a new UserController
func NewUserController(users *repository.UserRepository, guard *middleware.Guard, tokens *utils.TokenService) *UserController {
	return &UserController{
		Users:  users,
		Guard:  guard,
		Tokens: tokens,
	}
}

// GetUsers lists every user; the route requires a valid token
func (uc *UserController) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := uc.Users.List(r.Context(), nil)
	if err != nil {
		respondStoreError(w, r, err, "User")
		return
	}
	utils.RespondJSON(w, http.StatusOK, users)
}

// GetAdminStatus reports whether the user with {email} is an admin
func (uc *UserController) GetAdminStatus(w http.ResponseWriter, r *http.Request) {
	user, err := uc.Users.FindByEmail(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		respondStoreError(w, r, err, "User")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"admin": user.IsAdmin()})
}

// MakeAdmin elevates {email} to admin. The requester's own role is checked,
// not the target's.
func (uc *UserController) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	isAdmin, err := uc.Guard.AuthorizeAdmin(r.Context(), requester)
	if err != nil {
		respondStoreError(w, r, err, "User")
		return
	}
	if !isAdmin {
		utils.LoggerFrom(r.Context()).Warn("admin elevation denied", zap.String("requester", requester.Email))
		utils.RespondError(w, http.StatusForbidden, "Access Denied")
		return
	}

	result, err := uc.Users.MakeAdmin(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		respondStoreError(w, r, err, "User")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"result": result})
}

// UpsertUser creates or updates the user for {email} and issues a fresh token
func (uc *UserController) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeBody(r, &user); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	email := mux.Vars(r)["email"]
	result, err := uc.Users.Upsert(r.Context(), email, user)
	if err != nil {
		respondStoreError(w, r, err, "User")
		return
	}

	token, err := uc.Tokens.Issue(email)
	if err != nil {
		utils.LoggerFrom(r.Context()).Error("issue token", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
		"token":  token,
	})
}
