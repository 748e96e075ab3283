package dto

// SuccessResponse represents a standard success response for API endpoints
// that have no entity body to return.
type SuccessResponse struct {
	Message string `json:"message"`
}
