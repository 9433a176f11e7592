// Package export serializes the run log as CSV, XLSX and per-run PDF
// reports.
package export

import (
	"strconv"
	"strings"
	"time"

	run "MixLab/internal/run"
)

// Header is the fixed 18-column layout consumers of the CSV depend on.
var Header = []string{
	"id", "timestamp", "projectName", "projectSite", "mixId", "castingDate",
	"fck", "cementGrade", "exposure",
	"fckMean", "w_c", "water", "cement", "fineAgg", "coarseAgg",
	"isWcOk", "isCementOk", "isGradeOk",
}

// sanitize keeps free-text fields from breaking the row: commas become
// spaces, no quoting.
func sanitize(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fixed prints computed columns at the precision the rounding policy
// emits: 189.4 exports as "189.40", never a shorter form.
func fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Row flattens one run into the 18 header columns.
func Row(r run.Run) []string {
	return []string{
		strconv.Itoa(r.ID),
		r.Timestamp.UTC().Format(time.RFC3339),
		sanitize(r.ProjectName),
		sanitize(r.ProjectSite),
		sanitize(r.MixID),
		sanitize(r.CastingDate),
		num(r.Fck),
		sanitize(r.CementGrade),
		r.Exposure,
		fixed(r.Design.TargetMeanStrength, 2),
		fixed(r.Design.WaterCementRatio, 3),
		fixed(r.Design.WaterContent, 2),
		fixed(r.Design.CementContent, 2),
		fixed(r.Design.FineAggregate, 2),
		fixed(r.Design.CoarseAggregate, 2),
		strconv.FormatBool(r.Design.Checks.WcOK),
		strconv.FormatBool(r.Design.Checks.CementOK),
		strconv.FormatBool(r.Design.Checks.GradeOK),
	}
}

// CSV assembles the whole document, header first, one row per run.
func CSV(runs []run.Run) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	b.WriteByte('\n')
	for _, r := range runs {
		b.WriteString(strings.Join(Row(r), ","))
		b.WriteByte('\n')
	}
	return b.String()
}
