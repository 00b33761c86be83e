package controller

import (
	"encoding/json"
	"net/http"

	"github.com/leadpilot/bankleads-backend/internal/model"
	"github.com/leadpilot/bankleads-backend/internal/service"
)

type AuthController struct {
	AuthService *service.AuthService
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := c.AuthService.Login(body.Email, body.Password)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if body.Role != "" && body.Role != model.RoleAdmin && body.Role != model.RoleSales {
		writeError(w, http.StatusBadRequest, "role must be admin or sales")
		return
	}

	result, err := c.AuthService.Register(body.Name, body.Email, body.Password, body.Role)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
