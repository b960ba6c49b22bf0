package model

import "time"

// Document is a shared file record. The binary content is fetched
// separately via GET /documents/{id}/file.
type Document struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	MimeType    string `json:"mimeType"`
	Category    string `json:"category,omitempty"`
	UploadedBy  string `json:"uploadedBy"`

	// Downloads is bumped server-side via PUT /documents/{id}/download.
	Downloads int `json:"downloadCount"`

	CreatedAt time.Time `json:"createdAt"`
}
