// Package mixdesign computes a concrete mix-design recommendation from a
// target characteristic strength (fck) and an exposure class.
package mixdesign

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	exposure "MixLab/internal/exposure"
)

// ErrInvalidStrength is returned when fck is missing, non-numeric,
// non-finite or not strictly positive. It is the only error this
// package produces.
var ErrInvalidStrength = errors.New("invalid characteristic strength")

type Input struct {
	Fck      json.RawMessage `json:"fck"`
	Exposure string          `json:"exposure"`
}

// Checks carries the three compliance flags against the resolved
// exposure limits. All three are informational, none rejects the design.
type Checks struct {
	WcOK     bool           `json:"isWcOk"`
	CementOK bool           `json:"isCementOk"`
	GradeOK  bool           `json:"isGradeOk"`
	Exposure exposure.Class `json:"exposure"`
}

type Result struct {
	TargetMeanStrength float64 `json:"fckMean"`   // MPa
	WaterCementRatio   float64 `json:"w_c"`       //
	WaterContent       float64 `json:"water"`     // kg/m3
	CementContent      float64 `json:"cement"`    // kg/m3
	FineAggregate      float64 `json:"fineAgg"`   // kg/m3
	CoarseAggregate    float64 `json:"coarseAgg"` // kg/m3
	Checks             Checks  `json:"checks"`
}

type quadratic struct{ a, b, c float64 }

func (q quadratic) at(x float64) float64 { return q.a*x*x + q.b*x + q.c }

// Empirical regression fits, x = fck. The coefficients are fixed
// constants of the design and must not be refitted or approximated.
var (
	fitMeanStrength = quadratic{-0.0035, 1.3074, 1.6883}
	fitWcRatio      = quadratic{0.000009, -0.0044, 0.5617}
	fitWater        = quadratic{-0.0107, -0.0941, 195.56}
	fitCement       = quadratic{-0.0308, 4.7223, 298.78}
	fitFineAgg      = quadratic{-0.1156, 10.473, 484.42}
	fitCoarseAgg    = quadratic{0.0335, -5.2723, 1234.4}
)

// roundTo rounds half away from zero at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// Calculate evaluates the six regressions at fck and checks the result
// against the limits of the resolved exposure class. Compliance is
// evaluated on the unrounded water-cement ratio and cement content;
// rounding applies only to the emitted values (3 decimals for the
// water-cement ratio, 2 for everything else).
//
// An unrecognized exposureID is not an error: it resolves to the mild
// class (see package exposure).
func Calculate(fck float64, exposureID string) (Result, error) {
	if !validStrength(fck) {
		return Result{}, ErrInvalidStrength
	}
	cls := exposure.Resolve(exposureID)

	wc := fitWcRatio.at(fck)
	cement := fitCement.at(fck)

	return Result{
		TargetMeanStrength: roundTo(fitMeanStrength.at(fck), 2),
		WaterCementRatio:   roundTo(wc, 3),
		WaterContent:       roundTo(fitWater.at(fck), 2),
		CementContent:      roundTo(cement, 2),
		FineAggregate:      roundTo(fitFineAgg.at(fck), 2),
		CoarseAggregate:    roundTo(fitCoarseAgg.at(fck), 2),
		Checks: Checks{
			WcOK:     wc <= cls.MaxWaterCementRatio,
			CementOK: cement >= cls.MinCementContent,
			GradeOK:  fck >= cls.MinGradeFck,
			Exposure: cls,
		},
	}, nil
}

// validStrength: fck must be finite and strictly positive. ParseFloat
// accepts "inf"/"Infinity" spellings, so infinity is checked here, not
// only NaN.
func validStrength(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ParseStrength coerces a raw JSON fck value into a number. It accepts
// a JSON number or a numeric string; absent, null, empty, non-numeric,
// non-finite and non-positive values all yield ErrInvalidStrength. The
// function is total over its input.
func ParseStrength(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, ErrInvalidStrength
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, ErrInvalidStrength
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return 0, ErrInvalidStrength
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil || !validStrength(v) {
			return 0, ErrInvalidStrength
		}
		return v, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, ErrInvalidStrength
	}
	if !validStrength(v) {
		return 0, ErrInvalidStrength
	}
	return v, nil
}
