package response_models

import "carconvo/internal/models/domain_models"

// ComparisonCar is one column of a side-by-side comparison.
type ComparisonCar struct {
	ID       string                       `json:"id"`
	Name     string                       `json:"name"`
	Price    int                          `json:"price"`
	ImageURL string                       `json:"image,omitempty"`
	Specs    domain_models.Specifications `json:"specs"`
	Features domain_models.FeatureSet     `json:"features"`
	Pros     []string                     `json:"pros"`
	Cons     []string                     `json:"cons"`
}

// CategoryValue is one car's value within a comparison category table.
type CategoryValue struct {
	Car   string  `json:"car"`
	Value float64 `json:"value"`
}

type Comparison struct {
	Cars       []ComparisonCar            `json:"cars"`
	Categories map[string][]CategoryValue `json:"categories"`
}

type CarRef struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	MSRP  int    `json:"msrp"`
}

type Financing struct {
	DownPayment    int     `json:"down_payment"`
	TradeInValue   int     `json:"trade_in_value"`
	LoanAmount     float64 `json:"loan_amount"`
	InterestRate   float64 `json:"interest_rate"`
	LoanTermMonths int     `json:"loan_term_months"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalCost      float64 `json:"total_cost"`
}

type AnnualCosts struct {
	Insurance    int     `json:"insurance"`
	Maintenance  int     `json:"maintenance"`
	FuelEstimate float64 `json:"fuel_estimate"`
}

type CostEstimate struct {
	Car         CarRef      `json:"car"`
	Financing   Financing   `json:"financing"`
	AnnualCosts AnnualCosts `json:"annual_costs"`
}
