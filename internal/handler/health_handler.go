package handlers

import (
	"net/http"

	"fixitflow/internal/models"
)

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]string{
		"message": "Fix-It-Flow Backend is running",
		"status":  "OK",
	}, http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, models.ErrStorageUnavailable.Error(), http.StatusInternalServerError)
		return
	}

	WriteJSON(w, map[string]string{"status": "OK"}, http.StatusOK)
}
