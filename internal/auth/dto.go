package auth

import (
	errors "github.com/frahmantamala/employee-management/internal"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse mirrors what the caller needs to act on behalf of the
// identity: the token plus the claims it asserts.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Validate checks required fields.
func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return errors.NewValidationError("username is required", errors.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return errors.NewValidationError("password is required", errors.ErrCodeValidationFailed)
	}
	return nil
}
