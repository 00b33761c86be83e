package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// CustomerInput is the validated lead-creation payload. The same field names
// are sent to the model service as its feature vector.
type CustomerInput struct {
	Name          string `json:"nama_nasabah"`
	Phone         string `json:"nomor_telepon"`
	Age           int    `json:"age"`
	Job           string `json:"job"`
	Marital       string `json:"marital"`
	Education     string `json:"education"`
	CreditDefault string `json:"default"`
	Housing       string `json:"housing"`
	Loan          string `json:"loan"`
	Contact       string `json:"contact"`
	Month         string `json:"month"`
	DayOfWeek     string `json:"day_of_week"`
	Campaign      int    `json:"campaign"`
	PDays         int    `json:"pdays"`
	Previous      int    `json:"previous"`
	POutcome      string `json:"poutcome"`
}

// ScoreResult is the parsed single-record model response. Raw carries the
// verbatim response body so the API can echo the full model output.
type ScoreResult struct {
	Prediction string
	Score      *string
	SalesNotes string
	Raw        json.RawMessage
}

// BatchRow is one scored row from the batch endpoint, with the probability
// already rendered as a percentage string.
type BatchRow struct {
	Age           int     `json:"age"`
	Job           string  `json:"job"`
	Marital       string  `json:"marital"`
	Education     string  `json:"education"`
	CreditDefault string  `json:"default"`
	Housing       string  `json:"housing"`
	Loan          string  `json:"loan"`
	Contact       string  `json:"contact"`
	Month         string  `json:"month"`
	DayOfWeek     string  `json:"day_of_week"`
	Campaign      int     `json:"campaign"`
	PDays         int     `json:"pdays"`
	Previous      int     `json:"previous"`
	POutcome      string  `json:"poutcome"`
	Prediction    string  `json:"prediction"`
	Score         string  `json:"score"`
	SalesNotes    string  `json:"salesNotes"`
	Probability   float64 `json:"-"`
}

// BatchResult is the parsed batch-endpoint response.
type BatchResult struct {
	Rows         []BatchRow
	TotalData    int
	EconomicData json.RawMessage
}

// ErrEmptyBatchResult marks a batch response without the expected result
// array. The whole batch is rejected; nothing is written.
var ErrEmptyBatchResult = fmt.Errorf("no batch results from model")

// Scorer abstracts the model service so services and tests can substitute
// the HTTP client.
type Scorer interface {
	ScoreCustomer(ctx context.Context, input CustomerInput) (*ScoreResult, error)
	ScoreBatch(ctx context.Context, filename string, file io.Reader) (*BatchResult, error)
}

// HTTPScoringClient calls the external model service over HTTP. Timeouts
// are fixed per path: 8s for single records, 20s for batch uploads.
type HTTPScoringClient struct {
	SingleURL   string
	BatchURL    string
	Client      *http.Client
	BatchClient *http.Client
}

func NewHTTPScoringClient(singleURL, batchURL string, singleTimeout, batchTimeout time.Duration) *HTTPScoringClient {
	return &HTTPScoringClient{
		SingleURL:   singleURL,
		BatchURL:    batchURL,
		Client:      &http.Client{Timeout: singleTimeout},
		BatchClient: &http.Client{Timeout: batchTimeout},
	}
}

func (c *HTTPScoringClient) ScoreCustomer(ctx context.Context, input CustomerInput) (*ScoreResult, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.SingleURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("model service returned status %d", resp.StatusCode)
	}

	var parsed struct {
		HasilAnalisis struct {
			Rekomendasi    string          `json:"rekomendasi"`
			SkorPotensi    json.RawMessage `json:"skor_potensi"`
			CatatanPenting []string        `json:"catatan_penting"`
		} `json:"hasil_analisis"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("malformed model response: %w", err)
	}

	result := &ScoreResult{
		Prediction: parsed.HasilAnalisis.Rekomendasi,
		Raw:        json.RawMessage(body),
	}
	if result.Prediction == "" {
		result.Prediction = "UNKNOWN"
	}
	if score := parsePotentialScore(parsed.HasilAnalisis.SkorPotensi); score != "" {
		result.Score = &score
	}
	if len(parsed.HasilAnalisis.CatatanPenting) > 0 {
		result.SalesNotes = strings.Join(parsed.HasilAnalisis.CatatanPenting, ", ")
	}

	return result, nil
}

func (c *HTTPScoringClient) ScoreBatch(ctx context.Context, filename string, file io.Reader) (*BatchResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BatchURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.BatchClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("model batch service returned status %d", resp.StatusCode)
	}

	var parsed struct {
		HasilBatch []struct {
			Age           json.Number `json:"age"`
			Job           string      `json:"job"`
			Marital       string      `json:"marital"`
			Education     string      `json:"education"`
			CreditDefault string      `json:"default"`
			Housing       string      `json:"housing"`
			Loan          string      `json:"loan"`
			Contact       string      `json:"contact"`
			Month         string      `json:"month"`
			DayOfWeek     string      `json:"day_of_week"`
			Campaign      json.Number `json:"campaign"`
			PDays         json.Number `json:"pdays"`
			Previous      json.Number `json:"previous"`
			POutcome      string      `json:"poutcome"`
			Prediksi      string      `json:"PREDIKSI_REKOMENDASI"`
			Skor          float64     `json:"SKOR_PROBABILITAS"`
			Catatan       string      `json:"CATATAN"`
		} `json:"hasil_batch"`
		TotalData   int             `json:"total_data"`
		DataEkonomi json.RawMessage `json:"data_ekonomi_digunakan"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("malformed model batch response: %w", err)
	}
	if parsed.HasilBatch == nil {
		return nil, ErrEmptyBatchResult
	}

	result := &BatchResult{
		TotalData:    parsed.TotalData,
		EconomicData: parsed.DataEkonomi,
	}
	for _, row := range parsed.HasilBatch {
		age, _ := row.Age.Int64()
		campaign, _ := row.Campaign.Int64()
		pdays, _ := row.PDays.Int64()
		previous, _ := row.Previous.Int64()
		result.Rows = append(result.Rows, BatchRow{
			Age:           int(age),
			Job:           row.Job,
			Marital:       row.Marital,
			Education:     row.Education,
			CreditDefault: row.CreditDefault,
			Housing:       row.Housing,
			Loan:          row.Loan,
			Contact:       row.Contact,
			Month:         row.Month,
			DayOfWeek:     row.DayOfWeek,
			Campaign:      int(campaign),
			PDays:         int(pdays),
			Previous:      int(previous),
			POutcome:      row.POutcome,
			Prediction:    row.Prediksi,
			Score:         fmt.Sprintf("%.1f%%", row.Skor*100),
			SalesNotes:    row.Catatan,
			Probability:   row.Skor,
		})
	}

	return result, nil
}

// parsePotentialScore accepts the two shapes the model has been observed
// returning: a ready percentage string ("85.2%") or a 0-1 probability.
func parsePotentialScore(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return fmt.Sprintf("%.1f%%", f*100)
	}
	return ""
}

var _ Scorer = (*HTTPScoringClient)(nil)
