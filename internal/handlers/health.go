package handlers

import (
	"net/http"

	"signoff/internal/utils"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
