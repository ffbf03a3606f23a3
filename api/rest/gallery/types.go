package gallery

import "codeberg.org/iamhere/server/iamhere/images"

// ListResponse wraps a user's gallery
type ListResponse struct {
	Images []images.GeneratedImage `json:"images"`
	Total  int                     `json:"total"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
