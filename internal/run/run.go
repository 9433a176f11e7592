// Package run records mix-design computations as named runs with
// project metadata and exposes the run log over HTTP.
package run

import (
	"time"

	mixdesign "MixLab/internal/mixdesign"
)

// Run is one recorded computation. The ID is assigned sequentially by
// the store; Exposure holds the RESOLVED class identifier, so a run
// created with an unrecognized exposure key records "mild".
type Run struct {
	ID          int              `json:"id"`
	Timestamp   time.Time        `json:"timestamp"`
	ProjectName string           `json:"projectName"`
	ProjectSite string           `json:"projectSite"`
	MixID       string           `json:"mixId"`
	CastingDate string           `json:"castingDate"`
	Fck         float64          `json:"fck"`
	CementGrade string           `json:"cementGrade"`
	Exposure    string           `json:"exposure"`
	Design      mixdesign.Result `json:"design"`
}
