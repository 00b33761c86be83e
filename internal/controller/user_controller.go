package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/bankleads-backend/internal/model"
	"github.com/leadpilot/bankleads-backend/internal/repository"
)

type UserController struct {
	Repo repository.UserRepositoryInterface
}

func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.Repo.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch users: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	user, err := c.Repo.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Role  *string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Role != nil && *body.Role != model.RoleAdmin && *body.Role != model.RoleSales {
		writeError(w, http.StatusBadRequest, "role must be admin or sales")
		return
	}

	user, err := c.Repo.Update(chi.URLParam(r, "id"), repository.UserUpdate{
		Name:  body.Name,
		Email: body.Email,
		Role:  body.Role,
	})
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Repo.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
