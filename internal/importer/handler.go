// Package importer creates runs in bulk from an uploaded XLSX workbook.
//
// Rows are appended to the run log one at a time, so a storage failure
// mid-import leaves the earlier rows committed. The response always
// carries the runs that were created, with an error message when the
// import stopped early.
package importer

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	run "MixLab/internal/run"
)

type Handler struct {
	Store run.Store
}

type ImportResult struct {
	Count int       `json:"count"`
	Runs  []run.Run `json:"runs"`
	Error string    `json:"error,omitempty"`
}

// Runs reads the first sheet of the uploaded workbook. Rows after the
// header are (projectName, projectSite, mixId, castingDate, fck,
// cementGrade, exposure); rows with a missing or invalid fck are
// skipped, everything else is computed and appended to the run log.
func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	var created []run.Run
	for i := 1; i < len(rows); i++ {
		req, err := parseRow(rows[i])
		if err != nil {
			continue
		}
		rec, err := run.NewRun(req, time.Now())
		if err != nil {
			continue
		}
		saved, err := h.Store.Append(r.Context(), rec)
		if err != nil {
			log.Printf("Append error: %v", err)
			// Earlier rows are already committed; report them so the
			// client knows what was created before the failure.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ImportResult{
				Count: len(created),
				Runs:  created,
				Error: "storage error, import stopped early",
			})
			return
		}
		created = append(created, saved)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Count: len(created), Runs: created})
}

func parseRow(row []string) (run.CreateRequest, error) {
	// expected: projectName, projectSite, mixId, castingDate, fck, cementGrade, exposure
	req := run.CreateRequest{}
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	req.ProjectName = cell(0)
	req.ProjectSite = cell(1)
	req.MixID = cell(2)
	req.CastingDate = cell(3)
	raw, err := json.Marshal(cell(4))
	if err != nil {
		return run.CreateRequest{}, err
	}
	req.Fck = raw
	req.CementGrade = cell(5)
	req.Exposure = cell(6)
	return req, nil
}
