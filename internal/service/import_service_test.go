package service_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/leadpilot/bankleads-backend/internal/service"
)

const sampleCSV = `age,job,marital,education,housing,loan,month,duration,day_of_week,euribor3m,y
40,technician,married,university.degree,yes,no,may,120,mon,3.0,no
29,admin.,single,high.school,no,yes,jun,45,tue,1.2,no
53,retired,married,basic.4y,yes,no,jul,310,wed,4.8,yes
`

func TestImportCSVScoresAndPersistsRows(t *testing.T) {
	repo := &mockCustomerRepo{}
	svc := &service.ImportService{Repo: repo}

	imported, err := svc.ImportCSV([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imported != 3 {
		t.Errorf("expected imported=3, got %d", imported)
	}

	if len(repo.batches) != 1 {
		t.Fatalf("expected one bulk write, got %d", len(repo.batches))
	}
	rows := repo.batches[0]
	if len(rows) != 3 {
		t.Fatalf("expected 3 records, got %d", len(rows))
	}

	// technician, no loan, euribor > 2: 0.2 + 0.2 + 0.05 + 0.05 + 0.05
	if rows[0].Score == nil || *rows[0].Score != "55.0%" {
		t.Errorf("expected first row score 55.0%%, got %v", rows[0].Score)
	}

	for i, row := range rows {
		if row.Score == nil || !percentString(*row.Score) {
			t.Fatalf("row %d: expected percentage-string score, got %v", i, row.Score)
		}
		numeric, err := strconv.ParseFloat((*row.Score)[:len(*row.Score)-1], 64)
		if err != nil || numeric < 0 || numeric > 100 {
			t.Errorf("row %d: score %q out of [0,100]", i, *row.Score)
		}
	}

	if rows[2].Job != "retired" || rows[2].Age != 53 {
		t.Errorf("row fields not mapped from CSV columns: %+v", rows[2])
	}
}

func TestImportCSVRejectsEmptyPayload(t *testing.T) {
	svc := &service.ImportService{Repo: &mockCustomerRepo{}}

	for _, payload := range [][]byte{nil, []byte(""), []byte("   \n  ")} {
		if _, err := svc.ImportCSV(payload); !errors.Is(err, service.ErrEmptyCSV) {
			t.Errorf("expected ErrEmptyCSV for %q, got %v", payload, err)
		}
	}
}

func TestImportCSVRejectsHeaderOnlyPayload(t *testing.T) {
	svc := &service.ImportService{Repo: &mockCustomerRepo{}}
	if _, err := svc.ImportCSV([]byte("age,job\n")); err == nil {
		t.Fatal("expected error for CSV with no data rows")
	}
}
