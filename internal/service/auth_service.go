package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/leadpilot/bankleads-backend/internal/auth"
	appErrors "github.com/leadpilot/bankleads-backend/internal/errors"
	"github.com/leadpilot/bankleads-backend/internal/model"
	"github.com/leadpilot/bankleads-backend/internal/repository"
)

type AuthService struct {
	Users  repository.UserRepositoryInterface
	Secret []byte
}

// UserSummary is the client-facing user shape returned with tokens.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResult is a signed token plus the user it identifies.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.Users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Register creates a user (role defaults to sales) and issues a token for
// it. The route is admin-gated by middleware.
func (s *AuthService) Register(name, email, password, role string) (*AuthResult, error) {
	existing, err := s.Users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = model.RoleSales
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(s.Secret, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token: token,
		User: UserSummary{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
