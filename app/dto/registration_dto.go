package dto

// RegisterRequest carries the registration form fields
type RegisterRequest struct {
	Name  string `json:"name" form:"name" validate:"required,max=200"`
	Email string `json:"email" form:"email" validate:"required,email"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  uint64 `json:"user_id"`
	Email   string `json:"email"` // normalized form actually stored
}
