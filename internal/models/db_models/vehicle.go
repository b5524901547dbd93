package db_models

import (
	"encoding/json"
	"fmt"

	"carconvo/internal/models/domain_models"
)

// Vehicle is the Postgres row shape for the optional DB-backed catalog
// source. Nested catalog structures (lifestyle scores, features, pros/cons)
// are stored as jsonb columns and decoded on load; the application only ever
// reads this table once at startup.
type Vehicle struct {
	ID        string `gorm:"primaryKey"`
	SortOrder int    `gorm:"index"` // preserves catalog insertion order

	Make     string
	Model    string
	Year     int
	Trim     string
	BodyType string
	MSRP     int
	ImageURL string

	Engine          string
	Drivetrain      string
	Horsepower      int
	MPGCombined     int
	SeatingCapacity int
	CargoSpace      float64

	LifestyleScores []byte `gorm:"type:jsonb"`
	Features        []byte `gorm:"type:jsonb"`
	Pros            []byte `gorm:"type:jsonb"`
	Cons            []byte `gorm:"type:jsonb"`

	InsuranceAnnual   int
	MaintenanceAnnual int

	CreatedAt int64 `gorm:"autoCreateTime"`
	UpdatedAt int64 `gorm:"autoUpdateTime"`
}

func (Vehicle) TableName() string { return "vehicles" }

// ToDomain decodes the row into the immutable catalog record.
func (v Vehicle) ToDomain() (domain_models.Vehicle, error) {
	out := domain_models.Vehicle{
		ID: v.ID,
		BasicInfo: domain_models.BasicInfo{
			Make:     v.Make,
			Model:    v.Model,
			Year:     v.Year,
			Trim:     v.Trim,
			BodyType: v.BodyType,
			MSRP:     v.MSRP,
			ImageURL: v.ImageURL,
		},
		Specs: domain_models.Specifications{
			Engine:          v.Engine,
			Drivetrain:      v.Drivetrain,
			Horsepower:      v.Horsepower,
			MPGCombined:     v.MPGCombined,
			SeatingCapacity: v.SeatingCapacity,
			CargoSpace:      v.CargoSpace,
		},
		Costs: domain_models.OwnershipCosts{
			InsuranceAnnual:   v.InsuranceAnnual,
			MaintenanceAnnual: v.MaintenanceAnnual,
		},
	}

	if len(v.LifestyleScores) > 0 {
		if err := json.Unmarshal(v.LifestyleScores, &out.LifestyleScores); err != nil {
			return domain_models.Vehicle{}, fmt.Errorf("vehicle %s lifestyle_scores: %w", v.ID, err)
		}
	} else {
		out.LifestyleScores = domain_models.NeutralProfile()
	}
	if len(v.Features) > 0 {
		if err := json.Unmarshal(v.Features, &out.Features); err != nil {
			return domain_models.Vehicle{}, fmt.Errorf("vehicle %s features: %w", v.ID, err)
		}
	}
	if len(v.Pros) > 0 {
		if err := json.Unmarshal(v.Pros, &out.Pros); err != nil {
			return domain_models.Vehicle{}, fmt.Errorf("vehicle %s pros: %w", v.ID, err)
		}
	}
	if len(v.Cons) > 0 {
		if err := json.Unmarshal(v.Cons, &out.Cons); err != nil {
			return domain_models.Vehicle{}, fmt.Errorf("vehicle %s cons: %w", v.ID, err)
		}
	}

	return out, nil
}
