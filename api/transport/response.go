package transport

// ErrorResponse is the wire shape shared by every failure outcome.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// NewError builds an error body with optional validation or failure details.
func NewError(message string, details interface{}) ErrorResponse {
	return ErrorResponse{Error: message, Details: details}
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}
