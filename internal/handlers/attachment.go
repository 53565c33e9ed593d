package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"signoff/internal/middleware"
	"signoff/internal/utils"
)

// DeleteAttachment handles DELETE /api/attachments/{attachmentId}
func (h *ApprovalHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.CurrentUser(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	attachmentID, err := strconv.Atoi(mux.Vars(r)["attachmentId"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid attachment id")
		return
	}

	if err := h.service.DeleteAttachment(r.Context(), attachmentID, userID, role); err != nil {
		respondEngineError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Attachment deleted",
	})
}

// DownloadAttachment handles GET /api/attachments/{attachmentId} with a
// redirect to the blob's public URL.
func (h *ApprovalHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	attachmentID, err := strconv.Atoi(mux.Vars(r)["attachmentId"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid attachment id")
		return
	}

	attachment, err := h.service.Attachment(r.Context(), attachmentID)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	http.Redirect(w, r, attachment.URL, http.StatusFound)
}
