package model

import "time"

// Workflow states for a lead. Status is the only constrained enum; call and
// decision statuses are free-form and merely default to these values.
const (
	StatusNew           = "new"
	StatusContacted     = "contacted"
	StatusInterested    = "interested"
	StatusNotInterested = "not_interested"

	CallStatusNotCalled     = "not_called"
	DecisionStatusUndecided = "undecided"
)

// ValidStatus reports whether s is one of the allowed workflow statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusInterested, StatusNotInterested:
		return true
	}
	return false
}

// Customer is a bank-deposit lead. Score, when non-nil, is always a
// percentage string like "85.2%" whose numeric prefix is in [0,100].
// Duration, Euribor3M and Outcome only appear on records created through
// the CSV import path.
type Customer struct {
	ID             string     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name,omitempty"`
	Phone          string     `db:"phone" json:"phone,omitempty"`
	Age            int        `db:"age" json:"age"`
	Job            string     `db:"job" json:"job"`
	Marital        string     `db:"marital" json:"marital"`
	Education      string     `db:"education" json:"education"`
	CreditDefault  string     `db:"credit_default" json:"default"`
	Housing        string     `db:"housing" json:"housing"`
	Loan           string     `db:"loan" json:"loan"`
	Contact        string     `db:"contact" json:"contact"`
	Month          string     `db:"month" json:"month"`
	DayOfWeek      string     `db:"day_of_week" json:"day_of_week"`
	Campaign       int        `db:"campaign" json:"campaign"`
	PDays          int        `db:"pdays" json:"pdays"`
	Previous       int        `db:"previous" json:"previous"`
	POutcome       string     `db:"poutcome" json:"poutcome"`
	Duration       *int       `db:"duration" json:"duration,omitempty"`
	Euribor3M      *float64   `db:"euribor3m" json:"euribor3m,omitempty"`
	Outcome        *string    `db:"y" json:"y,omitempty"`
	Prediction     string     `db:"prediction" json:"prediction"`
	Score          *string    `db:"score" json:"score"`
	SalesNotes     string     `db:"sales_notes" json:"salesNotes"`
	Notes          string     `db:"notes" json:"notes"`
	Status         string     `db:"status" json:"status"`
	CallStatus     string     `db:"call_status" json:"callStatus"`
	DecisionStatus string     `db:"decision_status" json:"decisionStatus"`
	LastCalledAt   *time.Time `db:"last_called_at" json:"lastCalledAt,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}
