// Package exposure holds the durability exposure catalog: five fixed
// classes (mild..extreme) with the limits they impose on a mix design.
//
// Resolve never fails. An unrecognized or empty identifier falls back to
// the mild class; a typo in the exposure field therefore silently
// produces a mild-exposure design instead of an error. This matches the
// historical behavior callers depend on.
package exposure

// Class identifiers, in order of increasing severity.
const (
	Mild       = "mild"
	Moderate   = "moderate"
	Severe     = "severe"
	VerySevere = "verySevere"
	Extreme    = "extreme"
)

type Class struct {
	ID                  string  `json:"id"`
	Label               string  `json:"label"`
	MaxWaterCementRatio float64 `json:"maxWaterCementRatio"`
	MinCementContent    float64 `json:"minCementContent"` // kg/m3
	MinGradeFck         float64 `json:"minGradeFck"`      // MPa
}

// Limits per IS 456 for reinforced concrete.
var catalog = []Class{
	{ID: Mild, Label: "Mild", MaxWaterCementRatio: 0.55, MinCementContent: 300, MinGradeFck: 20},
	{ID: Moderate, Label: "Moderate", MaxWaterCementRatio: 0.50, MinCementContent: 300, MinGradeFck: 25},
	{ID: Severe, Label: "Severe", MaxWaterCementRatio: 0.45, MinCementContent: 320, MinGradeFck: 30},
	{ID: VerySevere, Label: "Very Severe", MaxWaterCementRatio: 0.45, MinCementContent: 340, MinGradeFck: 35},
	{ID: Extreme, Label: "Extreme", MaxWaterCementRatio: 0.40, MinCementContent: 360, MinGradeFck: 40},
}

var byID = func() map[string]Class {
	m := make(map[string]Class, len(catalog))
	for _, c := range catalog {
		m[c.ID] = c
	}
	return m
}()

// Resolve returns the class for id, or the mild class when id is not one
// of the five known identifiers. The match is an exact, case-sensitive
// key lookup.
func Resolve(id string) Class {
	if c, ok := byID[id]; ok {
		return c
	}
	return byID[Mild]
}

// Known reports whether id is one of the five catalog identifiers.
func Known(id string) bool {
	_, ok := byID[id]
	return ok
}

// Classes returns the catalog ordered mild to extreme.
func Classes() []Class {
	out := make([]Class, len(catalog))
	copy(out, catalog)
	return out
}
