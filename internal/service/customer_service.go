package service

import (
	"context"
	"encoding/json"
	"io"
	"log"

	"github.com/leadpilot/bankleads-backend/internal/events"
	"github.com/leadpilot/bankleads-backend/internal/model"
	"github.com/leadpilot/bankleads-backend/internal/repository"
)

// FallbackSalesNote is stored when the model service cannot be reached.
const FallbackSalesNote = "model service unreachable"

type CustomerService struct {
	Repo   repository.CustomerRepositoryInterface
	Scorer Scorer
	Events events.Publisher
}

// CreateResult is the outcome of a lead creation. ScoringErr is non-nil on
// the degraded path: the customer was persisted with fallback values and
// the caller should answer 502 instead of 201.
type CreateResult struct {
	Customer    *model.Customer
	ModelResult json.RawMessage
	ScoringErr  error
}

// ListResult is one page of leads plus pagination metadata. Total counts
// every record matching the filter, independent of the page window.
type ListResult struct {
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Count int               `json:"count"`
	Data  []*model.Customer `json:"data"`
}

// ImportBatchResult summarizes a batch import.
type ImportBatchResult struct {
	Imported     int             `json:"imported"`
	TotalData    int             `json:"total_data"`
	EconomicData json.RawMessage `json:"data_ekonomi_digunakan,omitempty"`
}

// Create scores the lead and persists it. Scoring failure never blocks
// intake: the record is stored with UNKNOWN prediction, no score and a
// fallback note, and the error is reported back alongside the record.
func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*CreateResult, error) {
	customer := customerFromInput(in)

	scored, scoringErr := s.Scorer.ScoreCustomer(ctx, in)
	if scoringErr != nil {
		log.Println("scoring service call failed:", scoringErr)
		customer.Prediction = "UNKNOWN"
		customer.Score = nil
		customer.SalesNotes = FallbackSalesNote
	} else {
		customer.Prediction = scored.Prediction
		customer.Score = scored.Score
		customer.SalesNotes = scored.SalesNotes
	}

	if err := s.Repo.Create(customer); err != nil {
		return nil, err
	}
	s.publish(events.LeadCreated, customer)

	result := &CreateResult{Customer: customer, ScoringErr: scoringErr}
	if scored != nil {
		result.ModelResult = scored.Raw
	}
	return result, nil
}

// List applies pagination defaults (page 1, limit 20, capped at 100) and
// returns the page plus the filter-wide total.
func (s *CustomerService) List(f repository.CustomerFilter, page int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	f.Offset = (page - 1) * f.Limit

	items, total, err := s.Repo.List(f)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Total: total,
		Page:  page,
		Limit: f.Limit,
		Count: len(items),
		Data:  items,
	}, nil
}

func (s *CustomerService) Get(id string) (*model.Customer, error) {
	return s.Repo.GetByID(id)
}

func (s *CustomerService) Update(id string, u repository.CustomerUpdate) (*model.Customer, error) {
	return s.Repo.Update(id, u)
}

func (s *CustomerService) UpdateStatus(id string, u repository.CustomerStatusUpdate) (*model.Customer, error) {
	return s.Repo.UpdateStatus(id, u)
}

// ImportBatch forwards the uploaded file to the batch scoring endpoint and
// persists every returned row in one write. A malformed model response
// rejects the whole batch before anything is written.
func (s *CustomerService) ImportBatch(ctx context.Context, filename string, file io.Reader) (*ImportBatchResult, error) {
	batch, err := s.Scorer.ScoreBatch(ctx, filename, file)
	if err != nil {
		return nil, err
	}

	customers := make([]*model.Customer, 0, len(batch.Rows))
	for _, row := range batch.Rows {
		score := row.Score
		customers = append(customers, &model.Customer{
			Age:           row.Age,
			Job:           row.Job,
			Marital:       row.Marital,
			Education:     row.Education,
			CreditDefault: row.CreditDefault,
			Housing:       row.Housing,
			Loan:          row.Loan,
			Contact:       row.Contact,
			Month:         row.Month,
			DayOfWeek:     row.DayOfWeek,
			Campaign:      row.Campaign,
			PDays:         row.PDays,
			Previous:      row.Previous,
			POutcome:      row.POutcome,
			Prediction:    row.Prediction,
			Score:         &score,
			SalesNotes:    row.SalesNotes,
		})
	}

	if err := s.Repo.CreateBatch(customers); err != nil {
		return nil, err
	}
	s.publish(events.LeadsImported, map[string]any{"imported": len(customers)})

	return &ImportBatchResult{
		Imported:     len(customers),
		TotalData:    batch.TotalData,
		EconomicData: batch.EconomicData,
	}, nil
}

func (s *CustomerService) publish(eventType string, payload any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(eventType, payload); err != nil {
		log.Printf("failed to publish %s event: %v", eventType, err)
	}
}

func customerFromInput(in CustomerInput) *model.Customer {
	return &model.Customer{
		Name:          in.Name,
		Phone:         in.Phone,
		Age:           in.Age,
		Job:           in.Job,
		Marital:       in.Marital,
		Education:     in.Education,
		CreditDefault: in.CreditDefault,
		Housing:       in.Housing,
		Loan:          in.Loan,
		Contact:       in.Contact,
		Month:         in.Month,
		DayOfWeek:     in.DayOfWeek,
		Campaign:      in.Campaign,
		PDays:         in.PDays,
		Previous:      in.Previous,
		POutcome:      in.POutcome,
	}
}
