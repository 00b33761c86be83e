package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/leadpilot/bankleads-backend/internal/service"
)

type ImportController struct {
	Service *service.ImportService
}

// ImportCSV ingests a raw CSV body and scores it locally.
func (c *ImportController) ImportCSV(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	imported, err := c.Service.ImportCSV(payload)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCSV) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "CSV import failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
