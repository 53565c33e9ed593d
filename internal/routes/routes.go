package routes

import (
	"github.com/gorilla/mux"

	"signoff/internal/handlers"
	"signoff/internal/middleware"
)

var (
	methodsGetOnly    = []string{"GET", "OPTIONS"}
	methodsPostOnly   = []string{"POST", "OPTIONS"}
	methodsPatchOnly  = []string{"PATCH", "OPTIONS"}
	methodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router, approval *handlers.ApprovalHandler, auth *handlers.AuthHandler) {
	r.HandleFunc("/health", handlers.HealthCheck).Methods(methodsGetOnly...)

	r.HandleFunc("/api/auth/login", auth.Login).Methods(methodsPostOnly...)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware)

	api.HandleFunc("/approvals", approval.Create).Methods(methodsPostOnly...)
	api.HandleFunc("/approvals", approval.List).Methods(methodsGetOnly...)
	api.HandleFunc("/approvals/{id}", approval.Get).Methods(methodsGetOnly...)
	api.HandleFunc("/approvals/{id}", approval.Process).Methods(methodsPatchOnly...)

	api.HandleFunc("/attachments/{attachmentId}", approval.DownloadAttachment).Methods(methodsGetOnly...)
	api.HandleFunc("/attachments/{attachmentId}", approval.DeleteAttachment).Methods(methodsDeleteOnly...)
}
