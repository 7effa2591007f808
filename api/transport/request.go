package transport

// AuthRequest is the body for both authentication and registration.
type AuthRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TaskCreateRequest requires every field to be present; pointer fields let
// the validator distinguish an absent boolean from an explicit false.
type TaskCreateRequest struct {
	Title       *string `json:"title" validate:"required"`
	Description *string `json:"description" validate:"required"`
	Owner       *string `json:"owner" validate:"required"`
	Completed   *bool   `json:"completed" validate:"required"`
}

// TaskUpdateRequest carries a partial field replacement. Owner is not
// updatable.
type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
