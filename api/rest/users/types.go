package users

// UpdateLanguageRequest selects the interface language
type UpdateLanguageRequest struct {
	Language string `json:"language" binding:"required,oneof=zh en"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
