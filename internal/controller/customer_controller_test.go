package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/bankleads-backend/internal/controller"
	appErrors "github.com/leadpilot/bankleads-backend/internal/errors"
	"github.com/leadpilot/bankleads-backend/internal/model"
	"github.com/leadpilot/bankleads-backend/internal/repository"
	"github.com/leadpilot/bankleads-backend/internal/service"
)

// --- Mocks ---

type mockCustomerRepo struct {
	created  []*model.Customer
	customer *model.Customer
}

func (m *mockCustomerRepo) Create(c *model.Customer) error {
	m.created = append(m.created, c)
	return nil
}

func (m *mockCustomerRepo) CreateBatch(customers []*model.Customer) error { return nil }

func (m *mockCustomerRepo) GetByID(id string) (*model.Customer, error) {
	if m.customer != nil && m.customer.ID == id {
		return m.customer, nil
	}
	return nil, appErrors.NewCustomerNotFound(id)
}

func (m *mockCustomerRepo) List(f repository.CustomerFilter) ([]*model.Customer, int, error) {
	return []*model.Customer{}, 0, nil
}

func (m *mockCustomerRepo) Update(id string, u repository.CustomerUpdate) (*model.Customer, error) {
	return m.GetByID(id)
}

func (m *mockCustomerRepo) UpdateStatus(id string, u repository.CustomerStatusUpdate) (*model.Customer, error) {
	return m.GetByID(id)
}

type stubScorer struct {
	result *service.ScoreResult
	err    error
}

func (s *stubScorer) ScoreCustomer(ctx context.Context, input service.CustomerInput) (*service.ScoreResult, error) {
	return s.result, s.err
}

func (s *stubScorer) ScoreBatch(ctx context.Context, filename string, file io.Reader) (*service.BatchResult, error) {
	return nil, s.err
}

func strPtr(s string) *string { return &s }

func newCustomerRouter(repo *mockCustomerRepo, scorer service.Scorer) chi.Router {
	svc := &service.CustomerService{Repo: repo, Scorer: scorer}
	ctrl := &controller.CustomerController{Service: svc}

	r := chi.NewRouter()
	r.Post("/customers", ctrl.Create)
	r.Get("/customers", ctrl.List)
	r.Get("/customers/{id}", ctrl.Get)
	r.Patch("/customers/{id}", ctrl.Update)
	return r
}

func validCreateBody() []byte {
	b, _ := json.Marshal(map[string]interface{}{
		"nama_nasabah":  "Budi Santoso",
		"nomor_telepon": "+62811111111",
		"age":           40,
		"job":           "technician",
		"marital":       "married",
		"education":     "university.degree",
		"default":       "no",
		"housing":       "yes",
		"loan":          "no",
		"contact":       "cellular",
		"month":         "may",
		"day_of_week":   "mon",
		"campaign":      1,
		"pdays":         999,
		"previous":      0,
		"poutcome":      "nonexistent",
	})
	return b
}

// --- Tests ---

func TestCreateCustomerReturns201WithModelResult(t *testing.T) {
	repo := &mockCustomerRepo{}
	scorer := &stubScorer{
		result: &service.ScoreResult{
			Prediction: "HUBUNGI SEGERA",
			Score:      strPtr("85.2%"),
			Raw:        json.RawMessage(`{"hasil_analisis":{"rekomendasi":"HUBUNGI SEGERA","skor_potensi":"85.2%"}}`),
		},
	}
	r := newCustomerRouter(repo, scorer)

	req := httptest.NewRequest("POST", "/customers", bytes.NewReader(validCreateBody()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data model.Customer `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Prediction != "HUBUNGI SEGERA" {
		t.Errorf("expected prediction HUBUNGI SEGERA, got %q", resp.Data.Prediction)
	}
	if resp.Data.Score == nil || *resp.Data.Score != "85.2%" {
		t.Errorf("expected score 85.2%%, got %v", resp.Data.Score)
	}
}

func TestCreateCustomerReturns502OnScoringFailure(t *testing.T) {
	repo := &mockCustomerRepo{}
	scorer := &stubScorer{err: fmt.Errorf("dial tcp: connection refused")}
	r := newCustomerRouter(repo, scorer)

	req := httptest.NewRequest("POST", "/customers", bytes.NewReader(validCreateBody()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}

	// The lead is still persisted with fallback values
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 persisted customer, got %d", len(repo.created))
	}
	if repo.created[0].Prediction != "UNKNOWN" {
		t.Errorf("expected UNKNOWN prediction, got %q", repo.created[0].Prediction)
	}
	if repo.created[0].Score != nil {
		t.Errorf("expected nil score, got %v", *repo.created[0].Score)
	}

	var resp struct {
		Error string          `json:"error"`
		Data  *model.Customer `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected the scoring error message in the response")
	}
	if resp.Data == nil {
		t.Error("expected the stored record in the response")
	}
}

func TestCreateCustomerRejectsMissingFields(t *testing.T) {
	r := newCustomerRouter(&mockCustomerRepo{}, &stubScorer{})

	req := httptest.NewRequest("POST", "/customers", bytes.NewReader([]byte(`{"age": 40}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListRejectsNonNumericScoreFilter(t *testing.T) {
	r := newCustomerRouter(&mockCustomerRepo{}, &stubScorer{})

	req := httptest.NewRequest("GET", "/customers?minScore=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListReturnsPaginationEnvelope(t *testing.T) {
	r := newCustomerRouter(&mockCustomerRepo{}, &stubScorer{})

	req := httptest.NewRequest("GET", "/customers?page=2&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Total int               `json:"total"`
		Page  int               `json:"page"`
		Limit int               `json:"limit"`
		Count int               `json:"count"`
		Data  []*model.Customer `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Page != 2 || resp.Limit != 10 {
		t.Errorf("expected page=2 limit=10, got page=%d limit=%d", resp.Page, resp.Limit)
	}
	if resp.Data == nil {
		t.Error("expected data array, got null")
	}
}

func TestGetCustomerReturns404WhenAbsent(t *testing.T) {
	r := newCustomerRouter(&mockCustomerRepo{}, &stubScorer{})

	req := httptest.NewRequest("GET", "/customers/missing-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateCustomerRejectsInvalidStatus(t *testing.T) {
	repo := &mockCustomerRepo{customer: &model.Customer{ID: "c1"}}
	r := newCustomerRouter(repo, &stubScorer{})

	req := httptest.NewRequest("PATCH", "/customers/c1", bytes.NewReader([]byte(`{"status":"bogus"}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateCustomerAcceptsValidStatus(t *testing.T) {
	repo := &mockCustomerRepo{customer: &model.Customer{ID: "c1", Status: model.StatusContacted}}
	r := newCustomerRouter(repo, &stubScorer{})

	req := httptest.NewRequest("PATCH", "/customers/c1", bytes.NewReader([]byte(`{"status":"contacted","salesNotes":"left voicemail"}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
