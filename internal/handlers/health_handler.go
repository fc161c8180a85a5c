package handlers

import (
	"net/http"

	"interviewprep/backend/internal/utils"
)

// HealthHandler reports liveness at / and under the versioned prefix.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
