package request

// CreateGuestRequest is the request body for creating a guest profile
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}
