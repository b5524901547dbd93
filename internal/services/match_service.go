package services

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"carconvo/internal/models/domain_models"
	"carconvo/internal/models/response_models"
	"carconvo/internal/repositories"
	"carconvo/pkg/utils"
)

// ScoringWeights combines the four sub-scores into the final match score.
// The same instance is applied to every vehicle in a ranking call so results
// stay comparable. Weights must sum to 1.
type ScoringWeights struct {
	Lifestyle float64
	Budget    float64
	Feature   float64
	Value     float64
}

func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{Lifestyle: 0.40, Budget: 0.30, Feature: 0.20, Value: 0.10}
}

func (w ScoringWeights) Validate() error {
	sum := w.Lifestyle + w.Budget + w.Feature + w.Value
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1, got %v", sum)
	}
	return nil
}

const (
	// DefaultTopN is how many recommendations a chat turn surfaces.
	DefaultTopN = 4

	// neutralBudgetFit is used when no budget is stated, so price neither
	// penalizes nor rewards and ranking is driven by lifestyle and features.
	neutralBudgetFit = 70.0

	// budgetFloorRatio marks where budget_fit bottoms out at its low,
	// non-zero floor; past budgetZeroRatio it reaches 0.
	budgetFloorRatio = 1.20
	budgetFloor      = 25.0
	budgetZeroRatio  = 1.50

	reasonThreshold = 85.0
	maxReasons      = 4

	annualMileage      = 15000
	fuelPricePerGallon = 3.50
)

// dimensionImportance weights each lifestyle dimension's contribution to the
// match, independent of any single user. Safety and budget drive purchase
// decisions hardest; luxury and adventure are narrower preferences.
var dimensionImportance = [domain_models.DimensionCount]float64{
	domain_models.DimFamilyFriendly:  1.10,
	domain_models.DimAdventure:       0.90,
	domain_models.DimEcoConscious:    1.10,
	domain_models.DimLuxury:          0.85,
	domain_models.DimPerformance:     0.95,
	domain_models.DimBudgetConscious: 1.15,
	domain_models.DimCityDriving:     1.00,
	domain_models.DimCommuter:        1.00,
	domain_models.DimTechEnthusiast:  0.90,
	domain_models.DimSafetyFocused:   1.20,
}

type MatchServiceInterface interface {
	FindMatches(profile domain_models.ProfileVector, budget *int, hints domain_models.FilterHints, topN int) ([]domain_models.MatchResult, error)
	GetVehicleByID(id string) (domain_models.Vehicle, error)
	CompareVehicles(ids []string) (response_models.Comparison, error)
	EstimateCosts(id string, tradeIn, downPayment, loanTermMonths int) (response_models.CostEstimate, error)
}

type MatchService struct {
	vehicleRepo repositories.VehicleRepository
	weights     ScoringWeights

	// catalog-wide feature norms, fixed at construction since the catalog
	// is immutable for the process lifetime
	categoryMeans [4]float64
}

func NewMatchService(vehicleRepo repositories.VehicleRepository, weights ScoringWeights) (MatchServiceInterface, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	s := &MatchService{vehicleRepo: vehicleRepo, weights: weights}
	s.categoryMeans = featureCategoryMeans(vehicleRepo.All())
	return s, nil
}

func featureCategoryMeans(vehicles []domain_models.Vehicle) [4]float64 {
	var sums [4]float64
	for _, v := range vehicles {
		sums[0] += float64(len(v.Features.Safety))
		sums[1] += float64(len(v.Features.Technology))
		sums[2] += float64(len(v.Features.Comfort))
		sums[3] += float64(len(v.Features.Entertainment))
	}
	if n := float64(len(vehicles)); n > 0 {
		for i := range sums {
			sums[i] /= n
		}
	}
	return sums
}

// FindMatches scores every catalog vehicle against the profile, budget and
// filter hints and returns the top N results, highest match score first.
// Ties break by lower MSRP, then catalog insertion order, so repeated calls
// with identical inputs produce identical orderings. The engine mutates
// nothing; concurrent calls for independent sessions are safe.
//
// topN <= 0 returns the full ranking.
func (s *MatchService) FindMatches(profile domain_models.ProfileVector, budget *int, hints domain_models.FilterHints, topN int) ([]domain_models.MatchResult, error) {
	vehicles := s.vehicleRepo.All()
	if len(vehicles) == 0 {
		return nil, utils.ErrEmptyCatalog
	}

	type rankedEntry struct {
		result domain_models.MatchResult
		msrp   int
		index  int
	}

	entries := make([]rankedEntry, 0, len(vehicles))
	for i, vehicle := range vehicles {
		if !meetsFilterHints(vehicle, hints) {
			continue
		}

		breakdown := domain_models.ScoreBreakdown{
			LifestyleMatch: round2(s.lifestyleMatch(profile, vehicle.LifestyleScores)),
			BudgetFit:      round2(budgetFit(vehicle.BasicInfo.MSRP, budget)),
			FeatureQuality: round2(s.featureQuality(vehicle.Features)),
			ValueScore:     round2(s.valueScore(vehicle)),
		}

		composite := breakdown.LifestyleMatch*s.weights.Lifestyle +
			breakdown.BudgetFit*s.weights.Budget +
			breakdown.FeatureQuality*s.weights.Feature +
			breakdown.ValueScore*s.weights.Value

		entries = append(entries, rankedEntry{
			result: domain_models.MatchResult{
				Vehicle:    vehicle,
				MatchScore: round2(composite),
				Breakdown:  breakdown,
				Reasons:    matchReasons(vehicle, profile, breakdown, budget),
			},
			msrp:  vehicle.BasicInfo.MSRP,
			index: i,
		})
	}

	// Filters excluding every vehicle is a valid empty result, not an error.
	if len(entries) == 0 {
		return []domain_models.MatchResult{}, nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].result.MatchScore != entries[j].result.MatchScore {
			return entries[i].result.MatchScore > entries[j].result.MatchScore
		}
		if entries[i].msrp != entries[j].msrp {
			return entries[i].msrp < entries[j].msrp
		}
		return entries[i].index < entries[j].index
	})

	if topN > 0 && topN < len(entries) {
		entries = entries[:topN]
	}

	results := make([]domain_models.MatchResult, len(entries))
	for i, e := range entries {
		results[i] = e.result
	}
	return results, nil
}

// lifestyleMatch measures how close a vehicle's lifestyle scores sit to the
// user's profile, as a normalized inverse weighted Euclidean distance scaled
// to 0-100. A dimension where the user is extreme (<=2 or >=9) is a strong
// stated preference and weighs 1.5x; a neutral dimension (4-6) carries
// little discriminating power and weighs 0.6x. Moving a vehicle's score
// toward the profile on any dimension never lowers this value.
func (s *MatchService) lifestyleMatch(profile, scores domain_models.ProfileVector) float64 {
	var distSq, maxSq float64
	for d := 0; d < domain_models.DimensionCount; d++ {
		w := dimensionImportance[d] * emphasisFor(profile[d])
		diff := profile[d] - scores[d]
		distSq += w * diff * diff
		maxSq += w * 81 // both values live in [1,10], so |diff| <= 9
	}
	if maxSq == 0 {
		return 0
	}
	return (1 - math.Sqrt(distSq)/math.Sqrt(maxSq)) * 100
}

func emphasisFor(userValue float64) float64 {
	switch {
	case userValue <= 2 || userValue >= 9:
		return 1.5
	case userValue >= 4 && userValue <= 6:
		return 0.6
	default:
		return 1.0
	}
}

// budgetFit is 100 at or under budget and decays smoothly past it: down to a
// floor of 25 at 20% over, then on toward 0, reaching it at 50% over. It is
// a soft signal, not a hard filter; a hard price cap arrives via FilterHints.
func budgetFit(msrp int, budget *int) float64 {
	if budget == nil || *budget <= 0 {
		return neutralBudgetFit
	}

	ratio := float64(msrp) / float64(*budget)
	switch {
	case ratio <= 1.0:
		return 100
	case ratio <= budgetFloorRatio:
		return 100 - (ratio-1.0)*(100-budgetFloor)/(budgetFloorRatio-1.0)
	case ratio <= budgetZeroRatio:
		return budgetFloor * (budgetZeroRatio - ratio) / (budgetZeroRatio - budgetFloorRatio)
	default:
		return 0
	}
}

// featureQuality rewards breadth of equipment relative to the catalog: each
// category's count is compared against the catalog mean (capped at 2x so one
// stuffed category cannot dominate), and the average ratio is scaled by how
// many categories are populated at all.
func (s *MatchService) featureQuality(features domain_models.FeatureSet) float64 {
	counts := [4]float64{
		float64(len(features.Safety)),
		float64(len(features.Technology)),
		float64(len(features.Comfort)),
		float64(len(features.Entertainment)),
	}

	var ratioSum float64
	for i, mean := range s.categoryMeans {
		if mean <= 0 {
			continue
		}
		ratioSum += math.Min(2, counts[i]/mean)
	}

	avgRatio := ratioSum / 4 // in [0, 2]
	breadth := float64(features.Categories()) / 4
	return math.Min(100, avgRatio*50*(0.5+0.5*breadth))
}

// valueScore estimates total-cost-of-ownership value: how much equipment and
// specification the sticker price buys, and how cheap the vehicle is to run.
func (s *MatchService) valueScore(v domain_models.Vehicle) float64 {
	price := float64(v.BasicInfo.MSRP)
	if price <= 0 {
		price = 1
	}
	mpg := float64(v.Specs.MPGCombined)
	if mpg <= 0 {
		mpg = 25
	}

	// equipment per $10k
	featureDensity := float64(v.Features.Total()) / (price / 10000)
	featureScore := math.Min(100, featureDensity*15)

	// annual running costs: insurance + maintenance + fuel
	annual := float64(v.Costs.InsuranceAnnual+v.Costs.MaintenanceAnnual) +
		annualMileage/mpg*fuelPricePerGallon
	costEfficiency := clampScore(100 - (annual-2000)/50)

	// horsepower and fuel economy per dollar, normalized around a $30k car
	specNorm := math.Min(100, (float64(v.Specs.Horsepower)/400+mpg/50)/2*100)
	specPerDollar := math.Min(100, specNorm*30000/price)

	return featureScore*0.4 + costEfficiency*0.3 + specPerDollar*0.3
}

func clampScore(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 100 {
		return 100
	}
	return x
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// matchReasons renders short explanations for the strongest signals behind a
// match: aligned high-priority lifestyle dimensions first, then sub-scores
// above the threshold, then notable specs. At most maxReasons entries.
func matchReasons(v domain_models.Vehicle, profile domain_models.ProfileVector, b domain_models.ScoreBreakdown, budget *int) []string {
	var reasons []string

	for _, d := range profile.TopDimensions(3) {
		if profile.Get(d) >= 7 && v.LifestyleScores.Get(d) >= 7 {
			reasons = append(reasons, "Strong "+d.DisplayName()+" match")
		}
	}

	if b.BudgetFit >= reasonThreshold && budget != nil {
		reasons = append(reasons, "Fits your budget")
	}
	if b.ValueScore >= reasonThreshold {
		reasons = append(reasons, "Outstanding value for money")
	}

	switch {
	case v.BasicInfo.MSRP < 30000:
		reasons = append(reasons, "Great value")
	case v.BasicInfo.MSRP > 50000:
		reasons = append(reasons, "Premium features")
	}

	if v.Specs.MPGCombined > 35 {
		reasons = append(reasons, "Excellent fuel economy")
	}
	if v.Specs.Horsepower > 300 {
		reasons = append(reasons, "High performance")
	}
	if len(v.Features.Safety) > 5 {
		reasons = append(reasons, "Advanced safety tech")
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

func meetsFilterHints(v domain_models.Vehicle, hints domain_models.FilterHints) bool {
	if hints.IsZero() {
		return true
	}

	if hints.BodyType != "" && !strings.EqualFold(v.BasicInfo.BodyType, hints.BodyType) {
		return false
	}
	for _, excluded := range hints.ExcludeBodyTypes {
		if strings.EqualFold(v.BasicInfo.BodyType, excluded) {
			return false
		}
	}
	if hints.MinMPG > 0 && v.Specs.MPGCombined < hints.MinMPG {
		return false
	}
	if hints.MinHorsepower > 0 && v.Specs.Horsepower < hints.MinHorsepower {
		return false
	}
	if hints.MinSeating > 0 && v.Specs.SeatingCapacity < hints.MinSeating {
		return false
	}
	if hints.MaxPrice > 0 && v.BasicInfo.MSRP > hints.MaxPrice {
		return false
	}
	if hints.Drivetrain != "" && !strings.Contains(strings.ToUpper(v.Specs.Drivetrain), strings.ToUpper(hints.Drivetrain)) {
		return false
	}
	if hints.FuelPreference != "" {
		engine := strings.ToLower(v.Specs.Engine)
		switch strings.ToLower(hints.FuelPreference) {
		case "hybrid":
			if !strings.Contains(engine, "hybrid") {
				return false
			}
		case "electric":
			if !strings.Contains(engine, "electric") && !strings.Contains(engine, "ev") {
				return false
			}
		}
	}

	return true
}

func (s *MatchService) GetVehicleByID(id string) (domain_models.Vehicle, error) {
	vehicle, ok := s.vehicleRepo.GetByID(id)
	if !ok {
		return domain_models.Vehicle{}, fmt.Errorf("%w: %q", utils.ErrVehicleNotFound, id)
	}
	return vehicle, nil
}

// CompareVehicles builds side-by-side records plus per-category tables for
// the given ids. Any missing id fails the whole comparison.
func (s *MatchService) CompareVehicles(ids []string) (response_models.Comparison, error) {
	comparison := response_models.Comparison{
		Cars: make([]response_models.ComparisonCar, 0, len(ids)),
		Categories: map[string][]response_models.CategoryValue{
			"price":           {},
			"fuel_efficiency": {},
			"performance":     {},
			"safety":          {},
			"space":           {},
		},
	}

	for _, id := range ids {
		vehicle, ok := s.vehicleRepo.GetByID(id)
		if !ok {
			return response_models.Comparison{}, fmt.Errorf("%w: %q", utils.ErrVehicleNotFound, id)
		}

		name := vehicle.DisplayName()
		comparison.Cars = append(comparison.Cars, response_models.ComparisonCar{
			ID:       vehicle.ID,
			Name:     name,
			Price:    vehicle.BasicInfo.MSRP,
			ImageURL: vehicle.BasicInfo.ImageURL,
			Specs:    vehicle.Specs,
			Features: vehicle.Features,
			Pros:     vehicle.Pros,
			Cons:     vehicle.Cons,
		})

		cats := comparison.Categories
		cats["price"] = append(cats["price"], response_models.CategoryValue{Car: name, Value: float64(vehicle.BasicInfo.MSRP)})
		cats["fuel_efficiency"] = append(cats["fuel_efficiency"], response_models.CategoryValue{Car: name, Value: float64(vehicle.Specs.MPGCombined)})
		cats["performance"] = append(cats["performance"], response_models.CategoryValue{Car: name, Value: float64(vehicle.Specs.Horsepower)})
		cats["safety"] = append(cats["safety"], response_models.CategoryValue{Car: name, Value: float64(len(vehicle.Features.Safety))})
		cats["space"] = append(cats["space"], response_models.CategoryValue{Car: name, Value: float64(vehicle.Specs.SeatingCapacity)})
	}

	return comparison, nil
}

const annualInterestRate = 0.065

// EstimateCosts amortizes a loan for the vehicle at the average APR and adds
// the annual ownership estimates.
func (s *MatchService) EstimateCosts(id string, tradeIn, downPayment, loanTermMonths int) (response_models.CostEstimate, error) {
	vehicle, ok := s.vehicleRepo.GetByID(id)
	if !ok {
		return response_models.CostEstimate{}, fmt.Errorf("%w: %q", utils.ErrVehicleNotFound, id)
	}

	if loanTermMonths <= 0 {
		loanTermMonths = 60
	}

	price := vehicle.BasicInfo.MSRP
	loanAmount := float64(price - tradeIn - downPayment)

	var monthlyPayment, totalCost, totalInterest float64
	if loanAmount > 0 {
		monthlyRate := annualInterestRate / 12
		factor := math.Pow(1+monthlyRate, float64(loanTermMonths))
		monthlyPayment = loanAmount * monthlyRate * factor / (factor - 1)
		totalCost = monthlyPayment*float64(loanTermMonths) + float64(downPayment)
		totalInterest = totalCost - float64(price) + float64(tradeIn)
	} else {
		log.Printf("Estimate for %s: trade-in plus down payment covers the price, no loan needed", id)
		loanAmount = 0
		totalCost = float64(price - tradeIn)
	}

	mpg := float64(vehicle.Specs.MPGCombined)
	if mpg <= 0 {
		mpg = 25
	}

	return response_models.CostEstimate{
		Car: response_models.CarRef{
			Make:  vehicle.BasicInfo.Make,
			Model: vehicle.BasicInfo.Model,
			MSRP:  price,
		},
		Financing: response_models.Financing{
			DownPayment:    downPayment,
			TradeInValue:   tradeIn,
			LoanAmount:     round2(loanAmount),
			InterestRate:   annualInterestRate,
			LoanTermMonths: loanTermMonths,
			MonthlyPayment: round2(monthlyPayment),
			TotalInterest:  round2(totalInterest),
			TotalCost:      round2(totalCost),
		},
		AnnualCosts: response_models.AnnualCosts{
			Insurance:    vehicle.Costs.InsuranceAnnual,
			Maintenance:  vehicle.Costs.MaintenanceAnnual,
			FuelEstimate: round2(annualMileage / mpg * fuelPricePerGallon),
		},
	}, nil
}
