// Package recommend derives a mix design from an exposure class alone,
// using the minimum grade that class allows as the target strength.
package recommend

import (
	exposure "MixLab/internal/exposure"
	mixdesign "MixLab/internal/mixdesign"
)

type Input struct {
	Exposure string `json:"exposure"`
}

type Result struct {
	Exposure exposure.Class   `json:"exposure"`
	Design   mixdesign.Result `json:"design"`
	Notes    string           `json:"notes"`
}

// ForExposure computes the design at the resolved class's minimum
// grade. An unrecognized identifier falls back to mild limits.
func ForExposure(in Input) (Result, error) {
	cls := exposure.Resolve(in.Exposure)
	res, err := mixdesign.Calculate(cls.MinGradeFck, cls.ID)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Exposure: cls,
		Design:   res,
		Notes:    "Design at the minimum grade for the exposure class.",
	}, nil
}
