package controllers

import (
	"net/http"

	"bicycle-odyssey/models"
	"bicycle-odyssey/repository"
	"bicycle-odyssey/utils"
)

type ProfileController struct {
	Profiles        *repository.ProfileRepository
	AllowUnfiltered bool
}

func NewProfileController(profiles *repository.ProfileRepository, allowUnfiltered bool) *ProfileController {
	return &ProfileController{Profiles: profiles, AllowUnfiltered: allowUnfiltered}
}

func (pc *ProfileController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := decodeBody(r, &profile); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	result, err := pc.Profiles.Insert(r.Context(), &profile)
	if err != nil {
		respondStoreError(w, r, err, "Profile")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// GetProfiles lists the profiles of ?email=
func (pc *ProfileController) GetProfiles(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" && !pc.AllowUnfiltered {
		utils.RespondError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	profiles, err := pc.Profiles.ListByEmail(r.Context(), email)
	if err != nil {
		respondStoreError(w, r, err, "Profile")
		return
	}
	utils.RespondJSON(w, http.StatusOK, profiles)
}
