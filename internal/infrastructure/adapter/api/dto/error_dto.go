package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // Per-field binding errors, keyed by JSON name
	Action  string            `json:"action,omitempty"` // Suggested next step, e.g. "top_up"
}
