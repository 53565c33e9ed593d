package handlers

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"signoff/internal/utils"
	"signoff/pkg/apperrors"
)

// respondEngineError maps engine errors onto the HTTP taxonomy: validation
// 400, missing entities 404, permission 403, lost races and completed
// requests 409, everything else 500.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEmptyTitle),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrUnknownRole),
		errors.Is(err, apperrors.ErrNoNextRole),
		errors.Is(err, apperrors.ErrNoApproverForRole):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrRequestNotFound),
		errors.Is(err, apperrors.ErrAttachmentNotFound),
		errors.Is(err, apperrors.ErrNoSteps),
		errors.Is(err, apperrors.ErrNoPendingStep):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrNoAccess):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrRequestCompleted),
		errors.Is(err, apperrors.ErrConcurrentModification):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Errorf("approval operation failed: %v", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Operation failed",
			"details": err.Error(),
		})
	}
}
