package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/leadpilot/bankleads-backend/internal/controller"
	appErrors "github.com/leadpilot/bankleads-backend/internal/errors"
	"github.com/leadpilot/bankleads-backend/internal/model"
	"github.com/leadpilot/bankleads-backend/internal/repository"
	"github.com/leadpilot/bankleads-backend/internal/service"
)

type mockUserRepo struct {
	users map[string]*model.User
}

func (m *mockUserRepo) Create(u *model.User) error {
	if _, ok := m.users[u.Email]; ok {
		return appErrors.ErrEmailTaken
	}
	u.ID = "user-" + u.Email
	m.users[u.Email] = u
	return nil
}

func (m *mockUserRepo) GetByEmail(email string) (*model.User, error) {
	return m.users[email], nil
}

func (m *mockUserRepo) GetByID(id string) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, appErrors.NewUserNotFound(id)
}

func (m *mockUserRepo) List() ([]model.User, error) { return []model.User{}, nil }

func (m *mockUserRepo) Update(id string, u repository.UserUpdate) (*model.User, error) {
	return nil, appErrors.NewUserNotFound(id)
}

func (m *mockUserRepo) Delete(id string) error { return appErrors.NewUserNotFound(id) }

func newAuthController(t *testing.T) *controller.AuthController {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := &mockUserRepo{users: map[string]*model.User{
		"sales@bank.test": {
			ID:           "u1",
			Name:         "Sales One",
			Email:        "sales@bank.test",
			PasswordHash: string(hash),
			Role:         model.RoleSales,
		},
	}}
	return &controller.AuthController{
		AuthService: &service.AuthService{Users: repo, Secret: []byte("test-secret")},
	}
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	ctrl := newAuthController(t)

	body, _ := json.Marshal(map[string]string{"email": "sales@bank.test", "password": "correct-horse"})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Role != model.RoleSales {
		t.Errorf("expected sales role, got %q", resp.User.Role)
	}
}

func TestLoginWrongPasswordReturns401WithoutToken(t *testing.T) {
	ctrl := newAuthController(t)

	body, _ := json.Marshal(map[string]string{"email": "sales@bank.test", "password": "wrong"})
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := resp["token"]; ok {
		t.Error("no token must be issued on failed login")
	}
}

func TestLoginRejectsMissingFields(t *testing.T) {
	ctrl := newAuthController(t)

	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte(`{"email":"sales@bank.test"}`)))
	w := httptest.NewRecorder()
	ctrl.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRegisterCreatesUserWith201(t *testing.T) {
	ctrl := newAuthController(t)

	body, _ := json.Marshal(map[string]string{
		"name":     "New Admin",
		"email":    "admin2@bank.test",
		"password": "pw123456",
		"role":     "admin",
	})
	req := httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterDuplicateEmailReturns400(t *testing.T) {
	ctrl := newAuthController(t)

	body, _ := json.Marshal(map[string]string{
		"name":     "Dup",
		"email":    "sales@bank.test",
		"password": "pw123456",
	})
	req := httptest.NewRequest("POST", "/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
