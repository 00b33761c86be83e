package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	appErrors "github.com/leadpilot/bankleads-backend/internal/errors"
	"github.com/leadpilot/bankleads-backend/internal/model"
)

// UserUpdate carries the admin-editable user fields. Nil leaves a field
// untouched.
type UserUpdate struct {
	Name  *string
	Email *string
	Role  *string
}

type UserRepositoryInterface interface {
	Create(u *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByID(id string) (*model.User, error)
	List() ([]model.User, error)
	Update(id string, u UserUpdate) (*model.User, error)
	Delete(id string) error
}

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

func (r *UserRepository) Create(u *model.User) error {
	now := time.Now()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = model.RoleSales
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.DB.Exec(query, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return appErrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetByEmail returns nil, nil when no user has the given email.
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	u, err := scanUser(r.DB.QueryRow(query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	u, err := scanUser(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewUserNotFound(id)
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List() ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(id string, u UserUpdate) (*model.User, error) {
	sets := []string{"updated_at=$1"}
	args := []interface{}{time.Now()}
	argPos := 2

	if u.Name != nil {
		sets = append(sets, fmt.Sprintf("name=$%d", argPos))
		args = append(args, *u.Name)
		argPos++
	}
	if u.Email != nil {
		sets = append(sets, fmt.Sprintf("email=$%d", argPos))
		args = append(args, *u.Email)
		argPos++
	}
	if u.Role != nil {
		sets = append(sets, fmt.Sprintf("role=$%d", argPos))
		args = append(args, *u.Role)
		argPos++
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE id=$%d", strings.Join(sets, ", "), argPos)
	args = append(args, id)

	res, err := r.DB.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, appErrors.ErrEmailTaken
		}
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, appErrors.NewUserNotFound(id)
	}
	return r.GetByID(id)
}

func (r *UserRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewUserNotFound(id)
	}
	return nil
}

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
