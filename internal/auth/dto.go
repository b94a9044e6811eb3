package auth

import (
	"errors"
	"strings"

	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
)

// LoginDTO is the login form payload. Validation happens before the
// operation is dispatched; a validation failure never reaches the
// store.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(dto.Email, "@") || strings.HasPrefix(dto.Email, "@") {
		return errors.New("email is not valid")
	}
	if dto.Password == "" {
		return errors.New("password is required")
	}
	if len(dto.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

type loginPayload struct {
	User  *datamodel.User `json:"user"`
	Token string          `json:"token"`
}

type loginResponse struct {
	Data    loginPayload `json:"data"`
	Message string       `json:"message"`
}

type dashboardResponse struct {
	Data datamodel.DashboardStats `json:"data"`
}

type profileResponse struct {
	Data datamodel.User `json:"data"`
}
