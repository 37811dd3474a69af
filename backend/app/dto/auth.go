package dto

import (
	"net/http"

	"bugtracker/backend/app/services"
)

type LoginRequest struct {
	Email    string
	Password string
}

func LoginRequestFromForm(r *http.Request) LoginRequest {
	return LoginRequest{Email: r.PostFormValue("email"), Password: r.PostFormValue("password")}
}

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func RegisterRequestFromForm(r *http.Request) RegisterRequest {
	return RegisterRequest{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}
}

func (req RegisterRequest) Input() services.RegisterInput {
	return services.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password, Role: req.Role}
}
