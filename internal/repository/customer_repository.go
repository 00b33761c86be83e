package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/leadpilot/bankleads-backend/internal/errors"
	"github.com/leadpilot/bankleads-backend/internal/model"
)

// CustomerFilter is the full set of optional list filters. Pointer fields
// distinguish "not supplied" from a zero bound.
type CustomerFilter struct {
	Search         string
	Status         string
	Prediction     string
	CallStatus     string
	DecisionStatus string
	MinScore       *float64
	MaxScore       *float64
	MinAge         *int
	MaxAge         *int
	Limit          int
	Offset         int
}

// CustomerUpdate carries the PATCH /customers/{id} fields. Nil means the
// field is untouched.
type CustomerUpdate struct {
	Status     *string
	SalesNotes *string
}

// CustomerStatusUpdate carries the PATCH /customers/{id}/status fields.
type CustomerStatusUpdate struct {
	CallStatus     *string
	DecisionStatus *string
	Notes          *string
}

type CustomerRepositoryInterface interface {
	Create(c *model.Customer) error
	CreateBatch(customers []*model.Customer) error
	GetByID(id string) (*model.Customer, error)
	List(f CustomerFilter) ([]*model.Customer, int, error)
	Update(id string, u CustomerUpdate) (*model.Customer, error)
	UpdateStatus(id string, u CustomerStatusUpdate) (*model.Customer, error)
}

type CustomerRepository struct {
	DB *sql.DB
}

const customerColumns = `id, name, phone, age, job, marital, education, credit_default,
       housing, loan, contact, month, day_of_week, campaign, pdays, previous, poutcome,
       duration, euribor3m, y, prediction, score, sales_notes, notes,
       status, call_status, decision_status, last_called_at, created_at, updated_at`

func (r *CustomerRepository) Create(c *model.Customer) error {
	prepareCustomer(c)
	query := `
        INSERT INTO customers (` + customerColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30)
    `
	_, err := r.DB.Exec(query, customerArgs(c)...)
	return err
}

// CreateBatch inserts all records in a single statement. Partial failure of
// the statement leaves nothing behind; the caller does not retry.
func (r *CustomerRepository) CreateBatch(customers []*model.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	query := `INSERT INTO customers (` + customerColumns + `) VALUES `
	args := []interface{}{}
	argPos := 1

	for i, c := range customers {
		prepareCustomer(c)
		if i > 0 {
			query += ", "
		}
		query += "("
		for j := 0; j < 30; j++ {
			if j > 0 {
				query += ","
			}
			query += fmt.Sprintf("$%d", argPos)
			argPos++
		}
		query += ")"
		args = append(args, customerArgs(c)...)
	}

	_, err := r.DB.Exec(query, args...)
	return err
}

func (r *CustomerRepository) GetByID(id string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	c, err := scanCustomer(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCustomerNotFound(id)
		}
		return nil, err
	}
	return c, nil
}

// List returns one page of customers plus the total count for the same
// predicate. Both queries share the WHERE clause so the total can never
// drift from the page contents.
func (r *CustomerRepository) List(f CustomerFilter) ([]*model.Customer, int, error) {
	where, args := buildCustomerPredicate(f)

	query := fmt.Sprintf(
		`SELECT `+customerColumns+` FROM customers %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	rows, err := r.DB.Query(query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	customers := []*model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM customers %s`, where)
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// Update applies status/salesNotes changes and stamps last_called_at, then
// returns the fresh record.
func (r *CustomerRepository) Update(id string, u CustomerUpdate) (*model.Customer, error) {
	set := "SET last_called_at=$1, updated_at=$1"
	args := []interface{}{time.Now()}
	argPos := 2

	if u.Status != nil {
		set += fmt.Sprintf(", status=$%d", argPos)
		args = append(args, *u.Status)
		argPos++
	}
	if u.SalesNotes != nil {
		set += fmt.Sprintf(", sales_notes=$%d", argPos)
		args = append(args, *u.SalesNotes)
		argPos++
	}

	query := fmt.Sprintf("UPDATE customers %s WHERE id=$%d", set, argPos)
	args = append(args, id)

	res, err := r.DB.Exec(query, args...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, appErrors.NewCustomerNotFound(id)
	}
	return r.GetByID(id)
}

func (r *CustomerRepository) UpdateStatus(id string, u CustomerStatusUpdate) (*model.Customer, error) {
	set := "SET updated_at=$1"
	args := []interface{}{time.Now()}
	argPos := 2

	if u.CallStatus != nil {
		set += fmt.Sprintf(", call_status=$%d", argPos)
		args = append(args, *u.CallStatus)
		argPos++
	}
	if u.DecisionStatus != nil {
		set += fmt.Sprintf(", decision_status=$%d", argPos)
		args = append(args, *u.DecisionStatus)
		argPos++
	}
	if u.Notes != nil {
		set += fmt.Sprintf(", notes=$%d", argPos)
		args = append(args, *u.Notes)
		argPos++
	}

	query := fmt.Sprintf("UPDATE customers %s WHERE id=$%d", set, argPos)
	args = append(args, id)

	res, err := r.DB.Exec(query, args...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, appErrors.NewCustomerNotFound(id)
	}
	return r.GetByID(id)
}

// buildCustomerPredicate translates a filter into a WHERE clause with
// positional args. Score bounds compare the numeric prefix of the stored
// percentage string; NULL scores never match a score bound.
func buildCustomerPredicate(f CustomerFilter) (string, []interface{}) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if f.Search != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%[1]d OR phone ILIKE $%[1]d OR job ILIKE $%[1]d
            OR education ILIKE $%[1]d OR prediction ILIKE $%[1]d OR status ILIKE $%[1]d
            OR call_status ILIKE $%[1]d OR decision_status ILIKE $%[1]d)`, argPos)
		args = append(args, "%"+f.Search+"%")
		argPos++
	}
	if f.Status != "" {
		where += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, f.Status)
		argPos++
	}
	if f.Prediction != "" {
		where += fmt.Sprintf(" AND prediction=$%d", argPos)
		args = append(args, f.Prediction)
		argPos++
	}
	if f.CallStatus != "" {
		where += fmt.Sprintf(" AND call_status=$%d", argPos)
		args = append(args, f.CallStatus)
		argPos++
	}
	if f.DecisionStatus != "" {
		where += fmt.Sprintf(" AND decision_status=$%d", argPos)
		args = append(args, f.DecisionStatus)
		argPos++
	}
	if f.MinAge != nil {
		where += fmt.Sprintf(" AND age >= $%d", argPos)
		args = append(args, *f.MinAge)
		argPos++
	}
	if f.MaxAge != nil {
		where += fmt.Sprintf(" AND age <= $%d", argPos)
		args = append(args, *f.MaxAge)
		argPos++
	}
	if f.MinScore != nil {
		where += fmt.Sprintf(" AND score IS NOT NULL AND CAST(RTRIM(score, '%%') AS DOUBLE PRECISION) >= $%d", argPos)
		args = append(args, *f.MinScore)
		argPos++
	}
	if f.MaxScore != nil {
		where += fmt.Sprintf(" AND score IS NOT NULL AND CAST(RTRIM(score, '%%') AS DOUBLE PRECISION) <= $%d", argPos)
		args = append(args, *f.MaxScore)
		argPos++
	}

	return where, args
}

func prepareCustomer(c *model.Customer) {
	now := time.Now()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = model.StatusNew
	}
	if c.CallStatus == "" {
		c.CallStatus = model.CallStatusNotCalled
	}
	if c.DecisionStatus == "" {
		c.DecisionStatus = model.DecisionStatusUndecided
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func customerArgs(c *model.Customer) []interface{} {
	return []interface{}{
		c.ID, c.Name, c.Phone, c.Age, c.Job, c.Marital, c.Education, c.CreditDefault,
		c.Housing, c.Loan, c.Contact, c.Month, c.DayOfWeek, c.Campaign, c.PDays, c.Previous, c.POutcome,
		c.Duration, c.Euribor3M, c.Outcome, c.Prediction, c.Score, c.SalesNotes, c.Notes,
		c.Status, c.CallStatus, c.DecisionStatus, c.LastCalledAt, c.CreatedAt, c.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Age, &c.Job, &c.Marital, &c.Education, &c.CreditDefault,
		&c.Housing, &c.Loan, &c.Contact, &c.Month, &c.DayOfWeek, &c.Campaign, &c.PDays, &c.Previous, &c.POutcome,
		&c.Duration, &c.Euribor3M, &c.Outcome, &c.Prediction, &c.Score, &c.SalesNotes, &c.Notes,
		&c.Status, &c.CallStatus, &c.DecisionStatus, &c.LastCalledAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
