package service

import (
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/leadpilot/bankleads-backend/internal/events"
	"github.com/leadpilot/bankleads-backend/internal/model"
	"github.com/leadpilot/bankleads-backend/internal/repository"
	"github.com/leadpilot/bankleads-backend/internal/scoring"
)

// ErrEmptyCSV rejects an empty request body before any parsing happens.
var ErrEmptyCSV = fmt.Errorf("no CSV payload")

// ImportService ingests raw delimited text and scores each row with the
// deterministic offline formula. No model-service call is involved.
type ImportService struct {
	Repo   repository.CustomerRepositoryInterface
	Events events.Publisher
}

// ImportCSV parses header-labeled rows, computes a local score per row and
// bulk-inserts the results. Returns the number of imported records.
func (s *ImportService) ImportCSV(payload []byte) (int, error) {
	if len(strings.TrimSpace(string(payload))) == 0 {
		return 0, ErrEmptyCSV
	}

	reader := csv.NewReader(strings.NewReader(string(payload)))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parse CSV: %w", err)
	}
	if len(records) < 2 {
		return 0, fmt.Errorf("CSV has no data rows")
	}

	header := map[string]int{}
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		i, ok := header[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	customers := make([]*model.Customer, 0, len(records)-1)
	for _, row := range records[1:] {
		age, _ := strconv.Atoi(field(row, "age"))
		duration, _ := strconv.Atoi(field(row, "duration"))
		euribor, _ := strconv.ParseFloat(field(row, "euribor3m"), 64)
		outcome := field(row, "y")

		score := scoring.Compute(scoring.Row{
			Age:       age,
			Job:       field(row, "job"),
			Loan:      field(row, "loan"),
			Euribor3M: euribor,
		})
		scoreStr := scoring.FormatPercent(score)

		customers = append(customers, &model.Customer{
			Age:       age,
			Job:       field(row, "job"),
			Marital:   field(row, "marital"),
			Education: field(row, "education"),
			Housing:   field(row, "housing"),
			Loan:      field(row, "loan"),
			Month:     field(row, "month"),
			DayOfWeek: field(row, "day_of_week"),
			Duration:  &duration,
			Euribor3M: &euribor,
			Outcome:   &outcome,
			Score:     &scoreStr,
		})
	}

	if err := s.Repo.CreateBatch(customers); err != nil {
		return 0, err
	}
	if s.Events != nil {
		if err := s.Events.Publish(events.LeadsImported, map[string]any{"imported": len(customers)}); err != nil {
			log.Printf("failed to publish %s event: %v", events.LeadsImported, err)
		}
	}

	return len(customers), nil
}
