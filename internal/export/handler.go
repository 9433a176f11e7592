package export

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"

	run "MixLab/internal/run"
)

type Handler struct {
	Store run.Store
}

// CSV streams the full run log as a CSV attachment.
func (h *Handler) CSV(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("List error: %v", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\"mix_runs.csv\"")
	w.Write([]byte(CSV(runs)))
}

// XLSX streams the run log as a workbook with the same columns as the CSV.
func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("List error: %v", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(Header))
	for i, name := range Header {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	for i, rec := range runs {
		cells := Row(rec)
		rowVals := make([]interface{}, len(cells))
		for j, c := range cells {
			rowVals[j] = c
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &rowVals); err != nil {
			http.Error(w, "Export error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"mix_runs.xlsx\"")
	if err := f.Write(w); err != nil {
		log.Printf("XLSX write error: %v", err)
	}
}

// PDF renders a one-page report for a single run.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid run id", http.StatusBadRequest)
		return
	}
	runs, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("List error: %v", err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	var rec *run.Run
	for i := range runs {
		if runs[i].ID == id {
			rec = &runs[i]
			break
		}
	}
	if rec == nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Concrete Mix Design Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", rec.ProjectName))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Site: %s", rec.ProjectSite))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Mix ID: %s    Casting date: %s", rec.MixID, rec.CastingDate))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Recorded: %s", rec.Timestamp.UTC().Format(time.RFC3339)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Design values")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Characteristic strength fck: %g MPa (%s exposure, cement %s)", rec.Fck, rec.Exposure, rec.CementGrade),
		fmt.Sprintf("Target mean strength: %g MPa", rec.Design.TargetMeanStrength),
		fmt.Sprintf("Water-cement ratio: %g", rec.Design.WaterCementRatio),
		fmt.Sprintf("Water content: %g kg/m3", rec.Design.WaterContent),
		fmt.Sprintf("Cement content: %g kg/m3", rec.Design.CementContent),
		fmt.Sprintf("Fine aggregate: %g kg/m3", rec.Design.FineAggregate),
		fmt.Sprintf("Coarse aggregate: %g kg/m3", rec.Design.CoarseAggregate),
	}
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Compliance")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	cls := rec.Design.Checks.Exposure
	checks := []string{
		fmt.Sprintf("Water-cement ratio <= %g: %s", cls.MaxWaterCementRatio, verdict(rec.Design.Checks.WcOK)),
		fmt.Sprintf("Cement content >= %g kg/m3: %s", cls.MinCementContent, verdict(rec.Design.Checks.CementOK)),
		fmt.Sprintf("Grade >= M%g: %s", cls.MinGradeFck, verdict(rec.Design.Checks.GradeOK)),
	}
	for _, line := range checks {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"mix_run_%d.pdf\"", rec.ID))
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "NOT OK"
}
