package appErrors

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the auth layer.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// ErrCustomerNotFound is a sentinel error
type ErrCustomerNotFound struct {
	CustomerID string
}

func (e *ErrCustomerNotFound) Error() string {
	return fmt.Sprintf("customer with ID %s not found", e.CustomerID)
}

// Helper constructor
func NewCustomerNotFound(id string) error {
	return &ErrCustomerNotFound{CustomerID: id}
}

// ErrUserNotFound is a sentinel error
type ErrUserNotFound struct {
	UserID string
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user with ID %s not found", e.UserID)
}

func NewUserNotFound(id string) error {
	return &ErrUserNotFound{UserID: id}
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	var c *ErrCustomerNotFound
	var u *ErrUserNotFound
	return errors.As(err, &c) || errors.As(err, &u)
}
