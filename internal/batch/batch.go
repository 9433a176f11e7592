// Package batch computes many mix designs in one request. Results are
// returned directly, not recorded as runs.
package batch

import (
	"fmt"

	mixdesign "MixLab/internal/mixdesign"
)

type Input struct {
	Items []mixdesign.Input `json:"items"`
}

type Result struct {
	Results []mixdesign.Result `json:"results"`
}

// Calculate evaluates every item. An empty list or any invalid item
// fails the whole batch.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Results: make([]mixdesign.Result, 0, len(in.Items))}
	for _, item := range in.Items {
		fck, err := mixdesign.ParseStrength(item.Fck)
		if err != nil {
			return Result{}, err
		}
		res, err := mixdesign.Calculate(fck, item.Exposure)
		if err != nil {
			return Result{}, err
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
