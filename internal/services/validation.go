package services

// FieldError describes one rejected input field in a ValidationError's
// details.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}
