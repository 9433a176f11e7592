package mixdesign

import (
	"encoding/json"
	"net/http"
)

type Handler struct{}

// Calc computes a single design without recording it as a run.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	fck, err := ParseStrength(input.Fck)
	if err != nil {
		http.Error(w, "Invalid characteristic strength (fck)", http.StatusBadRequest)
		return
	}
	res, err := Calculate(fck, input.Exposure)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
