package controllers

import (
	"encoding/json"
	"net/http"

	"inkwell/app/models"
	"inkwell/app/services"
)

// UserController handles registration and login.
type UserController struct {
	service    *services.UserService
	production bool
}

// NewUserController creates a new UserController
func NewUserController(service *services.UserService, production bool) *UserController {
	return &UserController{service: service, production: production}
}

// Register handles account creation.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	user, err := uc.service.Register(r.Context(), reg)
	if err != nil {
		writeError(w, err, uc.production)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles credential checks and token issuance.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	session, err := uc.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err, uc.production)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
