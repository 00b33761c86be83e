package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leadpilot/bankleads-backend/internal/model"
	"github.com/leadpilot/bankleads-backend/internal/repository"
	"github.com/leadpilot/bankleads-backend/internal/service"
)

const maxUploadBytes = 10 << 20

type CustomerController struct {
	Service *service.CustomerService
}

func (c *CustomerController) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CustomerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if msg := validateCustomerInput(input); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := c.Service.Create(r.Context(), input)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	if result.ScoringErr != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"message": "customer stored, but the model service could not be reached",
			"error":   result.ScoringErr.Error(),
			"data":    result.Customer,
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "customer created and analyzed successfully",
		"modelResult": result.ModelResult,
		"data":        result.Customer,
	})
}

func (c *CustomerController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.CustomerFilter{
		Search:         q.Get("search"),
		Status:         q.Get("status"),
		Prediction:     q.Get("prediction"),
		CallStatus:     q.Get("callStatus"),
		DecisionStatus: q.Get("decisionStatus"),
	}

	var parseErr string
	filter.MinScore, parseErr = floatParam(q.Get("minScore"), "minScore", parseErr)
	filter.MaxScore, parseErr = floatParam(q.Get("maxScore"), "maxScore", parseErr)
	filter.MinAge, parseErr = intParam(q.Get("minAge"), "minAge", parseErr)
	filter.MaxAge, parseErr = intParam(q.Get("maxAge"), "maxAge", parseErr)
	if parseErr != "" {
		writeError(w, http.StatusBadRequest, parseErr)
		return
	}

	page := 1
	if v := q.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "page must be a number")
			return
		}
		page = p
	}
	if v := q.Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		filter.Limit = l
	}

	result, err := c.Service.List(filter, page)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch customers: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (c *CustomerController) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	customer, err := c.Service.Get(id)
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Status     *string `json:"status"`
		SalesNotes *string `json:"salesNotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Status != nil && !model.ValidStatus(*body.Status) {
		writeError(w, http.StatusBadRequest, "status must be one of new, contacted, interested, not_interested")
		return
	}

	customer, err := c.Service.Update(id, repository.CustomerUpdate{
		Status:     body.Status,
		SalesNotes: body.SalesNotes,
	})
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		CallStatus     *string `json:"callStatus"`
		DecisionStatus *string `json:"decisionStatus"`
		Notes          *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	customer, err := c.Service.UpdateStatus(id, repository.CustomerStatusUpdate{
		CallStatus:     body.CallStatus,
		DecisionStatus: body.DecisionStatus,
		Notes:          body.Notes,
	})
	if err != nil {
		writeError(w, statusFromError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "status updated",
		"data":    customer,
	})
}

func (c *CustomerController) ImportBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file not found in upload")
		return
	}
	defer file.Close()

	result, err := c.Service.ImportBatch(r.Context(), header.Filename, file)
	if err != nil {
		if err == service.ErrEmptyBatchResult {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "batch import failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "batch upload succeeded",
		"imported": result.Imported,
		"modelSummary": map[string]interface{}{
			"total_data":             result.TotalData,
			"data_ekonomi_digunakan": result.EconomicData,
		},
	})
}

func validateCustomerInput(in service.CustomerInput) string {
	required := map[string]string{
		"nama_nasabah":  in.Name,
		"nomor_telepon": in.Phone,
		"job":           in.Job,
		"marital":       in.Marital,
		"education":     in.Education,
		"default":       in.CreditDefault,
		"housing":       in.Housing,
		"loan":          in.Loan,
		"contact":       in.Contact,
		"month":         in.Month,
		"day_of_week":   in.DayOfWeek,
		"poutcome":      in.POutcome,
	}
	for name, v := range required {
		if v == "" {
			return name + " is required"
		}
	}
	if in.Age < 17 || in.Age > 100 {
		return "age must be between 17 and 100"
	}
	if in.Campaign < 1 {
		return "campaign must be at least 1"
	}
	if in.PDays < 0 || in.Previous < 0 {
		return "pdays and previous must not be negative"
	}
	return ""
}

func floatParam(raw, name, prevErr string) (*float64, string) {
	if prevErr != "" || raw == "" {
		return nil, prevErr
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, name + " must be a number"
	}
	return &v, ""
}

func intParam(raw, name, prevErr string) (*int, string) {
	if prevErr != "" || raw == "" {
		return nil, prevErr
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, name + " must be a number"
	}
	return &v, ""
}
