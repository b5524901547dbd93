package domain_models

// ScoreBreakdown exposes the four independently computed sub-scores, each in
// [0, 100], so the client can explain a ranking.
type ScoreBreakdown struct {
	LifestyleMatch float64 `json:"lifestyle_match"`
	BudgetFit      float64 `json:"budget_fit"`
	FeatureQuality float64 `json:"feature_quality"`
	ValueScore     float64 `json:"value_score"`
}

// MatchResult is one ranked recommendation.
type MatchResult struct {
	Vehicle    Vehicle        `json:"vehicle"`
	MatchScore float64        `json:"match_score"`
	Breakdown  ScoreBreakdown `json:"score_breakdown"`
	Reasons    []string       `json:"match_reasons"`
}

// FilterHints are structured constraints extracted from the conversation by
// the external AI collaborator. The engine never parses free text; it only
// applies these already-validated fields. Zero values mean "no constraint".
type FilterHints struct {
	BodyType         string   `json:"body_type,omitempty"`
	ExcludeBodyTypes []string `json:"exclude_body_types,omitempty"`
	FuelPreference   string   `json:"fuel_preference,omitempty"` // "hybrid" or "electric"
	Drivetrain       string   `json:"drivetrain,omitempty"`
	MinMPG           int      `json:"min_mpg,omitempty"`
	MinHorsepower    int      `json:"min_horsepower,omitempty"`
	MinSeating       int      `json:"min_seating,omitempty"`
	MaxPrice         int      `json:"max_price,omitempty"`
}

// IsZero reports whether no constraint is set.
func (f FilterHints) IsZero() bool {
	return f.BodyType == "" && len(f.ExcludeBodyTypes) == 0 &&
		f.FuelPreference == "" && f.Drivetrain == "" &&
		f.MinMPG == 0 && f.MinHorsepower == 0 && f.MinSeating == 0 && f.MaxPrice == 0
}

// Merge overlays the non-zero fields of other onto a copy of f. Later chat
// turns refine earlier ones rather than discarding them.
func (f FilterHints) Merge(other FilterHints) FilterHints {
	out := f
	if other.BodyType != "" {
		out.BodyType = other.BodyType
	}
	if len(other.ExcludeBodyTypes) > 0 {
		out.ExcludeBodyTypes = append(append([]string(nil), out.ExcludeBodyTypes...), other.ExcludeBodyTypes...)
	}
	if other.FuelPreference != "" {
		out.FuelPreference = other.FuelPreference
	}
	if other.Drivetrain != "" {
		out.Drivetrain = other.Drivetrain
	}
	if other.MinMPG > 0 {
		out.MinMPG = other.MinMPG
	}
	if other.MinHorsepower > 0 {
		out.MinHorsepower = other.MinHorsepower
	}
	if other.MinSeating > 0 {
		out.MinSeating = other.MinSeating
	}
	if other.MaxPrice > 0 {
		out.MaxPrice = other.MaxPrice
	}
	return out
}
