package run

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	exposure "MixLab/internal/exposure"
	mixdesign "MixLab/internal/mixdesign"
)

type Handler struct {
	Store Store
}

type CreateRequest struct {
	Fck         json.RawMessage `json:"fck"`
	CementGrade string          `json:"cementGrade"`
	Exposure    string          `json:"exposure"`
	ProjectName string          `json:"projectName"`
	ProjectSite string          `json:"projectSite"`
	MixID       string          `json:"mixId"`
	CastingDate string          `json:"castingDate"`
}

// NewRun builds an unsaved Run from a creation request: parses fck,
// computes the design and fills in metadata defaults. The only failure
// is an invalid strength.
func NewRun(req CreateRequest, now time.Time) (Run, error) {
	fck, err := mixdesign.ParseStrength(req.Fck)
	if err != nil {
		return Run{}, err
	}
	res, err := mixdesign.Calculate(fck, req.Exposure)
	if err != nil {
		return Run{}, err
	}

	if req.ProjectName == "" {
		req.ProjectName = "Untitled Project"
	}
	if req.ProjectSite == "" {
		req.ProjectSite = "Not specified"
	}
	if req.CementGrade == "" {
		req.CementGrade = "OPC 43"
	}
	if req.CastingDate == "" {
		req.CastingDate = now.UTC().Format("2006-01-02")
	}
	if req.MixID == "" {
		req.MixID = "MIX-" + req.CastingDate
	}

	return Run{
		Timestamp:   now.UTC(),
		ProjectName: req.ProjectName,
		ProjectSite: req.ProjectSite,
		MixID:       req.MixID,
		CastingDate: req.CastingDate,
		Fck:         fck,
		CementGrade: req.CementGrade,
		Exposure:    res.Checks.Exposure.ID,
		Design:      res,
	}, nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	rec, err := NewRun(req, time.Now())
	if err != nil {
		http.Error(w, "Invalid characteristic strength (fck)", http.StatusBadRequest)
		return
	}
	if req.Exposure != "" && !exposure.Known(req.Exposure) {
		log.Printf("unknown exposure %q, using mild limits", req.Exposure)
	}
	saved, err := h.Store.Append(r.Context(), rec)
	if err != nil {
		log.Printf("Append error: %v", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("List error: %v", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []Run{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}
