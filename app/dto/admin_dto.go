package dto

// AdminLoginRequest carries the admin login form fields
type AdminLoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// BroadcastRequest carries the broadcast form fields. The message may contain
// zero or more {{Student_name}} placeholder tokens.
type BroadcastRequest struct {
	Message string `json:"message" form:"message" validate:"required"`
}

// BroadcastFailure records a single recipient the broadcast could not reach
type BroadcastFailure struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// BroadcastResponse summarizes a broadcast run
type BroadcastResponse struct {
	RunID      string             `json:"run_id"`
	Recipients int                `json:"recipients"`
	Sent       int                `json:"sent"`
	Failures   []BroadcastFailure `json:"failures,omitempty"`
}
