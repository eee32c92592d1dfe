package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bicycle-odyssey/store"
	"bicycle-odyssey/utils"

	"go.uber.org/zap"
)

// decodeBody reads a JSON body into v; an empty body leaves v untouched
func decodeBody(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// respondStoreError maps store failures to a status without leaking detail
func respondStoreError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		utils.RespondError(w, http.StatusBadRequest, "Invalid "+what+" ID")
	case errors.Is(err, store.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, what+" not found")
	default:
		utils.LoggerFrom(r.Context()).Error("store operation failed", zap.String("entity", what), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
