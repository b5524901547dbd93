package domain_models

// BasicInfo identifies a vehicle and its sticker price.
type BasicInfo struct {
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Trim     string `json:"trim,omitempty"`
	BodyType string `json:"body_type"`
	MSRP     int    `json:"msrp"`
	ImageURL string `json:"image_url,omitempty"`
}

// Specifications carries the mechanical numbers the scorers read. Extra holds
// open-ended catalog fields that pass through untouched.
type Specifications struct {
	Engine          string            `json:"engine"`
	Drivetrain      string            `json:"drivetrain,omitempty"`
	Horsepower      int               `json:"horsepower"`
	MPGCombined     int               `json:"mpg_combined"`
	SeatingCapacity int               `json:"seating_capacity"`
	CargoSpace      float64           `json:"cargo_space,omitempty"`
	Extra           map[string]string `json:"extra,omitempty"`
}

// FeatureSet groups listed features by category.
type FeatureSet struct {
	Safety        []string `json:"safety"`
	Technology    []string `json:"technology"`
	Comfort       []string `json:"comfort"`
	Entertainment []string `json:"entertainment"`
}

// Total counts features across all four categories.
func (f FeatureSet) Total() int {
	return len(f.Safety) + len(f.Technology) + len(f.Comfort) + len(f.Entertainment)
}

// Categories returns how many categories have at least one feature.
func (f FeatureSet) Categories() int {
	n := 0
	for _, c := range [][]string{f.Safety, f.Technology, f.Comfort, f.Entertainment} {
		if len(c) > 0 {
			n++
		}
	}
	return n
}

// OwnershipCosts are annual estimates in currency units.
type OwnershipCosts struct {
	InsuranceAnnual   int `json:"insurance_annual_estimate"`
	MaintenanceAnnual int `json:"maintenance_annual_estimate"`
}

// Vehicle is one catalog record. Vehicles are immutable after catalog load
// and shared read-only across sessions.
type Vehicle struct {
	ID              string         `json:"id"`
	BasicInfo       BasicInfo      `json:"basic_info"`
	Specs           Specifications `json:"specifications"`
	LifestyleScores ProfileVector  `json:"lifestyle_scores"`
	Features        FeatureSet     `json:"features"`
	Costs           OwnershipCosts `json:"costs"`
	Pros            []string       `json:"pros"`
	Cons            []string       `json:"cons"`
}

// DisplayName returns "Make Model", the form used in comparisons and prompts.
func (v Vehicle) DisplayName() string {
	return v.BasicInfo.Make + " " + v.BasicInfo.Model
}
