package controllers

import (
	"net/http"

	"bicycle-odyssey/models"
	"bicycle-odyssey/repository"
	"bicycle-odyssey/utils"

	"github.com/gorilla/mux"
)

// PartController handles catalog requests
type PartController struct {
	Parts *repository.PartRepository
}

func NewPartController(parts *repository.PartRepository) *PartController {
	return &PartController{Parts: parts}
}

// GetParts retrieves all parts
func (pc *PartController) GetParts(w http.ResponseWriter, r *http.Request) {
	parts, err := pc.Parts.List(r.Context(), nil)
	if err != nil {
		respondStoreError(w, r, err, "Part")
		return
	}
	utils.RespondJSON(w, http.StatusOK, parts)
}

// GetPartByID retrieves a single part by ID
func (pc *PartController) GetPartByID(w http.ResponseWriter, r *http.Request) {
	part, err := pc.Parts.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, r, err, "Part")
		return
	}
	utils.RespondJSON(w, http.StatusOK, part)
}

// CreatePart adds a part to the catalog
func (pc *PartController) CreatePart(w http.ResponseWriter, r *http.Request) {
	var part models.Part
	if err := decodeBody(r, &part); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	result, err := pc.Parts.Insert(r.Context(), &part)
	if err != nil {
		respondStoreError(w, r, err, "Part")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// UpdatePart replaces the stock quantity after a delivery
func (pc *PartController) UpdatePart(w http.ResponseWriter, r *http.Request) {
	var update models.PartUpdate
	if err := decodeBody(r, &update); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if update.DeliveredQuantity == nil {
		utils.RespondError(w, http.StatusBadRequest, "deliveredQuantity is required")
		return
	}
	if *update.DeliveredQuantity < 0 {
		utils.RespondError(w, http.StatusBadRequest, "deliveredQuantity must not be negative")
		return
	}

	result, err := pc.Parts.SetQuantity(r.Context(), mux.Vars(r)["id"], *update.DeliveredQuantity)
	if err != nil {
		respondStoreError(w, r, err, "Part")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// DeletePart removes a part from the catalog
func (pc *PartController) DeletePart(w http.ResponseWriter, r *http.Request) {
	result, err := pc.Parts.DeleteByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, r, err, "Part")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}
