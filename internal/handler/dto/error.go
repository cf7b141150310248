package dto

// ErrorResponse is the uniform error body rendered to callers.
// Message is either a single string or a list of per-field messages.
type ErrorResponse struct {
	Message any `json:"message"`
	Status  int `json:"status"`
}
