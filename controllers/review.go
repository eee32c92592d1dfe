package controllers

import (
	"net/http"

	"bicycle-odyssey/models"
	"bicycle-odyssey/repository"
	"bicycle-odyssey/utils"
)

type ReviewController struct {
	Reviews *repository.ReviewRepository
}

func NewReviewController(reviews *repository.ReviewRepository) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

func (rc *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := decodeBody(r, &review); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	result, err := rc.Reviews.Insert(r.Context(), &review)
	if err != nil {
		respondStoreError(w, r, err, "Review")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func (rc *ReviewController) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := rc.Reviews.List(r.Context(), nil)
	if err != nil {
		respondStoreError(w, r, err, "Review")
		return
	}
	utils.RespondJSON(w, http.StatusOK, reviews)
}
