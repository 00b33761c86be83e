package model

import "time"

const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

// User is a persisted auth user. PasswordHash is a bcrypt hash and is never
// serialized to clients.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
