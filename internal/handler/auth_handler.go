package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"fixitflow/internal/models"
	"fixitflow/internal/service"
)

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type VerifyResponse struct {
	Valid   bool          `json:"valid"`
	Expired bool          `json:"expired,omitempty"`
	User    *UserResponse `json:"user,omitempty"`
}

func userResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.UserID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := service.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}

	_, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			WriteError(w, models.ErrEmailTaken.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Аккаунт успешно создан"}, http.StatusOK)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			WriteError(w, models.ErrInvalidCredentials.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, LoginResponse{Token: token, User: userResponse(user)}, http.StatusOK)
}

// Verify отвечает {valid:false} на любую проблему с токеном, истекший
// токен дополнительно помечается полем expired
func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	tokenString, err := extractBearerToken(r)
	if err != nil {
		WriteJSON(w, VerifyResponse{Valid: false}, http.StatusUnauthorized)
		return
	}

	user, err := h.AuthService.VerifyToken(r.Context(), tokenString)
	if err != nil {
		if errors.Is(err, models.ErrTokenExpired) {
			WriteJSON(w, VerifyResponse{Valid: false, Expired: true}, http.StatusUnauthorized)
			return
		}
		WriteJSON(w, VerifyResponse{Valid: false}, http.StatusUnauthorized)
		return
	}

	resp := userResponse(user)
	WriteJSON(w, VerifyResponse{Valid: true, User: &resp}, http.StatusOK)
}
