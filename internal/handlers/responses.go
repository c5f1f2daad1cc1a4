package handlers

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned by the API.
const (
	CodeNotFound       = "not_found"
	CodeInvalidProfile = "invalid_profile"
	CodeInternal       = "internal_error"
)
