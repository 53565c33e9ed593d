package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"signoff/internal/middleware"
	"signoff/internal/models"
	"signoff/internal/services"
	"signoff/internal/utils"
)

// ApprovalService is what the handlers need from the engine.
type ApprovalService interface {
	CreateRequest(ctx context.Context, input services.CreateRequestInput) (*models.ApprovalRequest, error)
	ProcessStep(ctx context.Context, requestID int, newStatus models.Status, processedByID int, processorRole string) (*models.ApprovalRequest, error)
	Request(ctx context.Context, requestID int) (*models.ApprovalRequest, error)
	ListRequests(ctx context.Context, status string, page, limit int) ([]models.ApprovalRequest, int64, error)
	Attachment(ctx context.Context, attachmentID int) (*models.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID, actorID int, actorRole string) error
}

type ApprovalHandler struct {
	service ApprovalService
}

func NewApprovalHandler(service ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{service: service}
}

const maxUploadBytes = 32 << 20

// Create handles POST /api/approvals (multipart form).
func (h *ApprovalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.CurrentUser(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	input := services.CreateRequestInput{
		Title:     title,
		Content:   r.FormValue("content"),
		Links:     r.Form["links"],
		CreatorID: userID,
	}

	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			log.Errorf("failed to open uploaded file %s: %v", header.Filename, err)
			continue
		}
		defer file.Close()
		input.Files = append(input.Files, services.AttachmentUpload{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Reader:      file,
		})
	}

	request, err := h.service.CreateRequest(r.Context(), input)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Approval request created",
		"approvalId": request.ID,
	})
}

// List handles GET /api/approvals?status=&page=&limit=
func (h *ApprovalHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	status := query.Get("status")
	if status != "" && status != "all" {
		switch models.Status(status) {
		case models.StatusPending, models.StatusApproved, models.StatusRejected, models.StatusCanceled:
		default:
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown status filter")
			return
		}
	} else {
		status = ""
	}

	page := 1
	if raw := query.Get("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			page = p
		}
	}
	limit := 20
	if raw := query.Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	requests, total, err := h.service.ListRequests(r.Context(), status, page, limit)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data": requests,
		"pagination": map[string]interface{}{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": totalPages,
		},
	})
}

// Get handles GET /api/approvals/{id}
func (h *ApprovalHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid approval id")
		return
	}

	request, err := h.service.Request(r.Context(), requestID)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, request)
}

// Process handles PATCH /api/approvals/{id}
func (h *ApprovalHandler) Process(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.CurrentUser(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid approval id")
		return
	}

	var body struct {
		Status            models.Status `json:"status"`
		ProcessedByID     int           `json:"processedById"`
		ProcessorPosition string        `json:"processorPosition"`
	}
	if err := utils.ParseJSON(r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if body.ProcessedByID == 0 {
		body.ProcessedByID = userID
	}

	request, err := h.service.ProcessStep(r.Context(), requestID, body.Status, body.ProcessedByID, body.ProcessorPosition)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Approval step processed",
		"data":    request,
	})
}
