package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studykit/studykit/internal/repository"
	"github.com/studykit/studykit/internal/server"
	"github.com/studykit/studykit/internal/service"
	"github.com/studykit/studykit/internal/validation"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, services *service.Services) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    services.Auth,
	}
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
}

func (r *RegisterRequest) Validate() error {
	return validation.Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

// AuthResponse is the common response of both auth endpoints.
type AuthResponse struct {
	User        *repository.User `json:"user"`
	AccessToken string           `json:"access_token"`
}

func (h *AuthHandler) Register(c echo.Context, req *RegisterRequest) (*AuthResponse, error) {
	user, accessToken, err := h.auth.Register(c.Request().Context(), req.Email, req.Password, req.FirstName)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, AccessToken: accessToken}, nil
}

func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (*AuthResponse, error) {
	user, accessToken, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, AccessToken: accessToken}, nil
}

// Routes returns the echo handlers with the shared pipeline applied.
func (h *AuthHandler) RegisterRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.Register, http.StatusCreated, func() *RegisterRequest { return &RegisterRequest{} })
}

func (h *AuthHandler) LoginRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.Login, http.StatusOK, func() *LoginRequest { return &LoginRequest{} })
}
