package domain_models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Dimension indexes one axis of the lifestyle profile vector.
type Dimension int

const (
	DimFamilyFriendly Dimension = iota
	DimAdventure
	DimEcoConscious
	DimLuxury
	DimPerformance
	DimBudgetConscious
	DimCityDriving
	DimCommuter
	DimTechEnthusiast
	DimSafetyFocused

	DimensionCount = 10
)

var dimensionNames = [DimensionCount]string{
	"family_friendly",
	"adventure",
	"eco_conscious",
	"luxury",
	"performance",
	"budget_conscious",
	"city_driving",
	"commuter",
	"tech_enthusiast",
	"safety_focused",
}

func (d Dimension) String() string {
	if d < 0 || d >= DimensionCount {
		return "unknown"
	}
	return dimensionNames[d]
}

// DisplayName returns a human readable label, e.g. "Family Friendly".
func (d Dimension) DisplayName() string {
	name := d.String()
	out := make([]byte, 0, len(name))
	upper := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			out = append(out, ' ')
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}

// AllDimensions returns the ten dimensions in their canonical order.
func AllDimensions() []Dimension {
	dims := make([]Dimension, DimensionCount)
	for i := range dims {
		dims[i] = Dimension(i)
	}
	return dims
}

// ParseDimension maps a wire name ("eco_conscious") to its index.
func ParseDimension(name string) (Dimension, bool) {
	for i, n := range dimensionNames {
		if n == name {
			return Dimension(i), true
		}
	}
	return 0, false
}

// ProfileVector holds one value per lifestyle dimension. Using a fixed-size
// array makes the "all ten dimensions always present" contract structural
// instead of something every caller has to re-check.
type ProfileVector [DimensionCount]float64

// NeutralProfile returns a vector with every dimension at the baseline 5.
func NeutralProfile() ProfileVector {
	var p ProfileVector
	for i := range p {
		p[i] = 5
	}
	return p
}

// Get returns the value for a dimension.
func (p ProfileVector) Get(d Dimension) float64 { return p[d] }

// TopDimensions returns the n highest-valued dimensions, strongest first.
// Ties resolve in canonical dimension order.
func (p ProfileVector) TopDimensions(n int) []Dimension {
	dims := AllDimensions()
	for i := 1; i < len(dims); i++ {
		for j := i; j > 0 && p[dims[j]] > p[dims[j-1]]; j-- {
			dims[j], dims[j-1] = dims[j-1], dims[j]
		}
	}
	if n > len(dims) {
		n = len(dims)
	}
	return dims[:n]
}

// MarshalJSON renders the vector as the named ten-key object clients expect.
func (p ProfileVector) MarshalJSON() ([]byte, error) {
	m := make(map[string]float64, DimensionCount)
	for i, name := range dimensionNames {
		m[name] = p[i]
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts the named object form. Unknown keys are rejected so a
// mistyped dimension in a catalog file fails loudly at load time.
func (p *ProfileVector) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*p = NeutralProfile()
	for name, v := range m {
		d, ok := ParseDimension(name)
		if !ok {
			return fmt.Errorf("unknown lifestyle dimension %q", name)
		}
		(*p)[d] = v
	}
	return nil
}

// ClampRound forces every dimension into [1, 10] and rounds half-up.
func (p ProfileVector) ClampRound() ProfileVector {
	var out ProfileVector
	for i, v := range p {
		r := math.Floor(v + 0.5)
		if r < 1 {
			r = 1
		}
		if r > 10 {
			r = 10
		}
		out[i] = r
	}
	return out
}
