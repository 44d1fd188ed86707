package dto

// MessageResponse is the body of a successful auth call.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed auth call.
type ErrorResponse struct {
	Error string `json:"error"`
}
