package session

import "github.com/dmitrijs2005/gallerykeeper/internal/client/models"

const (
	actionVerifySession = "verify-session"
	actionLogin         = "login"
)

type verifyRequest struct {
	Action       string `json:"action"`
	SessionToken string `json:"sessionToken"`
}

type verifyResponse struct {
	Valid bool             `json:"valid"`
	User  *models.AuthUser `json:"user,omitempty"`
}

type loginRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success      bool             `json:"success"`
	User         *models.AuthUser `json:"user"`
	SessionToken string           `json:"sessionToken"`
	Message      string           `json:"message,omitempty"`
}
