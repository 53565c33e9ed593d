package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"signoff/internal/repositories"
	"signoff/internal/utils"
	"signoff/pkg/apperrors"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.ParseJSON(r, &creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || !strings.Contains(creds.Email, "@") {
		utils.RespondWithError(w, http.StatusBadRequest, "Valid email required")
		return
	}

	user, err := repositories.UserByEmail(h.db.WithContext(r.Context()), creds.Email)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	if !utils.CheckPasswordHash(creds.Password, user.PasswordHash) {
		respondEngineError(w, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
