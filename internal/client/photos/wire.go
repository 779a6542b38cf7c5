package photos

import "github.com/dmitrijs2005/gallerykeeper/internal/client/models"

const (
	actionGetPublic   = "get-public"
	actionGetAllAdmin = "get-all-admin"
	actionGetStats    = "get-stats"
	actionDelete      = "delete"
	actionUpdate      = "update"
)

type listRequest struct {
	Action       string `json:"action"`
	SessionToken string `json:"sessionToken,omitempty"`
}

type listResponse struct {
	Photos []models.Photo `json:"photos"`
}

type statsRequest struct {
	Action       string `json:"action"`
	SessionToken string `json:"sessionToken"`
}

type deleteRequest struct {
	Action       string `json:"action"`
	SessionToken string `json:"sessionToken"`
	PhotoID      int64  `json:"photoId"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type updateRequest struct {
	Action       string            `json:"action"`
	SessionToken string            `json:"sessionToken"`
	PhotoID      int64             `json:"photoId"`
	UpdateData   models.PhotoPatch `json:"updateData"`
}

type updateResponse struct {
	Success bool               `json:"success"`
	Photo   *models.PhotoPatch `json:"photo,omitempty"`
	Message string             `json:"message,omitempty"`
}

type uploadRequest struct {
	ImageData   string          `json:"imageData"`
	FileName    string          `json:"fileName"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    models.Category `json:"category,omitempty"`
}

type uploadResponse struct {
	Photo   *models.Photo `json:"photo,omitempty"`
	Message string        `json:"message,omitempty"`
}
