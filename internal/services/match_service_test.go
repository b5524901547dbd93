package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carconvo/internal/models/domain_models"
	"carconvo/internal/repositories"
	"carconvo/pkg/utils"
)

type emptyVehicleRepo struct{}

func (emptyVehicleRepo) All() []domain_models.Vehicle { return nil }
func (emptyVehicleRepo) GetByID(string) (domain_models.Vehicle, bool) {
	return domain_models.Vehicle{}, false
}

func testVehicle(id string, msrp int, scores domain_models.ProfileVector) domain_models.Vehicle {
	return domain_models.Vehicle{
		ID: id,
		BasicInfo: domain_models.BasicInfo{
			Make:     "Make",
			Model:    id,
			Year:     2024,
			BodyType: "SUV",
			MSRP:     msrp,
		},
		Specs: domain_models.Specifications{
			Engine:          "2.5L I4",
			Drivetrain:      "AWD",
			Horsepower:      200,
			MPGCombined:     30,
			SeatingCapacity: 5,
		},
		LifestyleScores: scores,
		Features: domain_models.FeatureSet{
			Safety:        []string{"AEB", "Lane keep"},
			Technology:    []string{"CarPlay"},
			Comfort:       []string{"Heated seats"},
			Entertainment: []string{"Audio"},
		},
		Costs: domain_models.OwnershipCosts{InsuranceAnnual: 1500, MaintenanceAnnual: 500},
		Pros:  []string{"Solid"},
		Cons:  []string{"Plain"},
	}
}

func newTestMatcher(t *testing.T, vehicles ...domain_models.Vehicle) MatchServiceInterface {
	t.Helper()
	repo, err := repositories.NewStaticVehicleRepository(vehicles)
	require.NoError(t, err)
	svc, err := NewMatchService(repo, DefaultScoringWeights())
	require.NoError(t, err)
	return svc
}

func scoresWith(overrides map[domain_models.Dimension]float64) domain_models.ProfileVector {
	p := domain_models.NeutralProfile()
	for d, v := range overrides {
		p[d] = v
	}
	return p
}

func TestScoringWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultScoringWeights().Validate())
	assert.Error(t, ScoringWeights{Lifestyle: 0.5, Budget: 0.5, Feature: 0.5, Value: 0.5}.Validate())

	t.Run("constructor rejects bad weights", func(t *testing.T) {
		repo, err := repositories.NewStaticVehicleRepository([]domain_models.Vehicle{
			testVehicle("a", 30000, domain_models.NeutralProfile()),
		})
		require.NoError(t, err)
		_, err = NewMatchService(repo, ScoringWeights{Lifestyle: 1, Budget: 1})
		assert.Error(t, err)
	})
}

func TestBudgetFit(t *testing.T) {
	budget := func(b int) *int { return &b }

	t.Run("no budget is neutral", func(t *testing.T) {
		assert.Equal(t, neutralBudgetFit, budgetFit(30000, nil))
		assert.Equal(t, neutralBudgetFit, budgetFit(30000, budget(0)))
	})

	t.Run("at or under budget scores 100", func(t *testing.T) {
		assert.Equal(t, 100.0, budgetFit(30000, budget(30000)))
		assert.Equal(t, 100.0, budgetFit(21000, budget(30000)))
	})

	t.Run("over budget decays to the floor then zero", func(t *testing.T) {
		assert.Less(t, budgetFit(30001, budget(30000)), 100.0)
		assert.InDelta(t, budgetFloor, budgetFit(36000, budget(30000)), 1e-9)
		assert.InDelta(t, 0, budgetFit(45000, budget(30000)), 1e-9)
		assert.Equal(t, 0.0, budgetFit(60000, budget(30000)))
	})

	t.Run("monotonically non-increasing in price", func(t *testing.T) {
		prev := 101.0
		for msrp := 25000; msrp <= 50000; msrp += 500 {
			fit := budgetFit(msrp, budget(30000))
			assert.GreaterOrEqual(t, prev, fit, "msrp %d", msrp)
			assert.GreaterOrEqual(t, fit, 0.0)
			prev = fit
		}
	})
}

func TestLifestyleMatch(t *testing.T) {
	svc := &MatchService{weights: DefaultScoringWeights()}

	t.Run("identical vectors score 100", func(t *testing.T) {
		p := scoresWith(map[domain_models.Dimension]float64{domain_models.DimAdventure: 9})
		assert.InDelta(t, 100, svc.lifestyleMatch(p, p), 1e-9)
	})

	t.Run("moving a dimension toward the profile never lowers the score", func(t *testing.T) {
		profile := scoresWith(map[domain_models.Dimension]float64{
			domain_models.DimEcoConscious: 9,
			domain_models.DimCommuter:     8,
		})
		far := scoresWith(map[domain_models.Dimension]float64{domain_models.DimEcoConscious: 2})
		for eco := 2.0; eco < 9; eco++ {
			near := far
			near[domain_models.DimEcoConscious] = eco + 1
			assert.GreaterOrEqual(t,
				svc.lifestyleMatch(profile, near),
				svc.lifestyleMatch(profile, far),
				"eco %v", eco)
			far = near
		}
	})

	t.Run("extreme preferences weigh heavier than neutral ones", func(t *testing.T) {
		profile := scoresWith(map[domain_models.Dimension]float64{domain_models.DimSafetyFocused: 10})

		// same absolute miss, once on the stated priority, once on a
		// neutral dimension
		missOnPriority := profile
		missOnPriority[domain_models.DimSafetyFocused] = 6
		missOnNeutral := profile
		missOnNeutral[domain_models.DimLuxury] = 1

		assert.Less(t,
			svc.lifestyleMatch(profile, missOnPriority),
			svc.lifestyleMatch(profile, missOnNeutral))
	})
}

func TestFindMatches(t *testing.T) {
	profile := scoresWith(map[domain_models.Dimension]float64{
		domain_models.DimEcoConscious: 9,
		domain_models.DimCommuter:     8,
	})

	aligned := testVehicle("aligned", 28000, scoresWith(map[domain_models.Dimension]float64{
		domain_models.DimEcoConscious: 9,
		domain_models.DimCommuter:     8,
	}))
	opposed := testVehicle("opposed", 28000, scoresWith(map[domain_models.Dimension]float64{
		domain_models.DimEcoConscious: 1,
		domain_models.DimCommuter:     2,
	}))
	pricey := testVehicle("pricey", 55000, scoresWith(map[domain_models.Dimension]float64{
		domain_models.DimEcoConscious: 9,
		domain_models.DimCommuter:     8,
	}))

	t.Run("aligned vehicle outranks opposed one", func(t *testing.T) {
		svc := newTestMatcher(t, opposed, aligned)
		results, err := svc.FindMatches(profile, nil, domain_models.FilterHints{}, 0)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "aligned", results[0].Vehicle.ID)
		assert.Greater(t, results[0].MatchScore, results[1].MatchScore)
	})

	t.Run("budget pushes the expensive twin down", func(t *testing.T) {
		svc := newTestMatcher(t, pricey, aligned)
		b := 30000
		results, err := svc.FindMatches(profile, &b, domain_models.FilterHints{}, 0)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "aligned", results[0].Vehicle.ID)
		assert.Equal(t, 100.0, results[0].Breakdown.BudgetFit)
		assert.Equal(t, 0.0, results[1].Breakdown.BudgetFit)
	})

	t.Run("at-budget vehicle scores full budget fit", func(t *testing.T) {
		affordable := testVehicle("affordable", 20000, domain_models.NeutralProfile())
		expensive := testVehicle("expensive", 50000, domain_models.NeutralProfile())
		svc := newTestMatcher(t, affordable, expensive)

		b := 20000
		results, err := svc.FindMatches(domain_models.NeutralProfile(), &b, domain_models.FilterHints{}, 0)
		require.NoError(t, err)
		require.Len(t, results, 2)

		byID := map[string]domain_models.MatchResult{}
		for _, r := range results {
			byID[r.Vehicle.ID] = r
		}
		assert.Equal(t, 100.0, byID["affordable"].Breakdown.BudgetFit)
		assert.Less(t, byID["expensive"].Breakdown.BudgetFit, 100.0)
	})

	t.Run("identical vehicles keep catalog order", func(t *testing.T) {
		twinA := testVehicle("twin_a", 28000, aligned.LifestyleScores)
		twinB := testVehicle("twin_b", 28000, aligned.LifestyleScores)
		svc := newTestMatcher(t, twinA, twinB)
		results, err := svc.FindMatches(profile, nil, domain_models.FilterHints{}, 0)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "twin_a", results[0].Vehicle.ID)
		assert.Equal(t, "twin_b", results[1].Vehicle.ID)
	})

	t.Run("repeated calls return identical rankings", func(t *testing.T) {
		svc := newTestMatcher(t, opposed, aligned, pricey)
		b := 32000
		hints := domain_models.FilterHints{MinSeating: 5}
		first, err := svc.FindMatches(profile, &b, hints, DefaultTopN)
		require.NoError(t, err)
		second, err := svc.FindMatches(profile, &b, hints, DefaultTopN)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("topN trims and zero means all", func(t *testing.T) {
		svc := newTestMatcher(t, opposed, aligned, pricey)
		trimmed, err := svc.FindMatches(profile, nil, domain_models.FilterHints{}, 2)
		require.NoError(t, err)
		assert.Len(t, trimmed, 2)

		all, err := svc.FindMatches(profile, nil, domain_models.FilterHints{}, 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("sub-scores stay inside 0-100", func(t *testing.T) {
		svc := newTestMatcher(t, opposed, aligned, pricey)
		results, err := svc.FindMatches(profile, nil, domain_models.FilterHints{}, 0)
		require.NoError(t, err)
		for _, r := range results {
			for _, v := range []float64{r.MatchScore, r.Breakdown.LifestyleMatch, r.Breakdown.BudgetFit, r.Breakdown.FeatureQuality, r.Breakdown.ValueScore} {
				assert.GreaterOrEqual(t, v, 0.0, r.Vehicle.ID)
				assert.LessOrEqual(t, v, 100.0, r.Vehicle.ID)
			}
		}
	})

	t.Run("empty catalog is an error", func(t *testing.T) {
		svc, err := NewMatchService(emptyVehicleRepo{}, DefaultScoringWeights())
		require.NoError(t, err)
		_, err = svc.FindMatches(profile, nil, domain_models.FilterHints{}, 0)
		assert.ErrorIs(t, err, utils.ErrEmptyCatalog)
	})

	t.Run("filters excluding everything is an empty result, not an error", func(t *testing.T) {
		svc := newTestMatcher(t, aligned, opposed)
		results, err := svc.FindMatches(profile, nil, domain_models.FilterHints{MinSeating: 9}, 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("at most four reasons, each explaining a real signal", func(t *testing.T) {
		loaded := testVehicle("loaded", 26000, scoresWith(map[domain_models.Dimension]float64{
			domain_models.DimEcoConscious: 9,
			domain_models.DimCommuter:     9,
		}))
		loaded.Specs.MPGCombined = 50
		loaded.Specs.Horsepower = 350
		loaded.Features.Safety = []string{"a", "b", "c", "d", "e", "f"}

		svc := newTestMatcher(t, loaded)
		b := 30000
		results, err := svc.FindMatches(profile, &b, domain_models.FilterHints{}, 0)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.NotEmpty(t, results[0].Reasons)
		assert.LessOrEqual(t, len(results[0].Reasons), 4)
		assert.Contains(t, results[0].Reasons, "Strong Eco Conscious match")
	})
}

func TestMeetsFilterHints(t *testing.T) {
	suv := testVehicle("suv", 33000, domain_models.NeutralProfile())
	hybrid := testVehicle("hybrid", 29000, domain_models.NeutralProfile())
	hybrid.BasicInfo.BodyType = "Sedan"
	hybrid.Specs.Engine = "1.6L I4 Hybrid"
	hybrid.Specs.Drivetrain = "FWD"
	hybrid.Specs.MPGCombined = 52

	cases := []struct {
		name  string
		hints domain_models.FilterHints
		want  []string
	}{
		{"no hints keeps everything", domain_models.FilterHints{}, []string{"suv", "hybrid"}},
		{"body type is case-insensitive", domain_models.FilterHints{BodyType: "suv"}, []string{"suv"}},
		{"exclusions drop matching bodies", domain_models.FilterHints{ExcludeBodyTypes: []string{"sedan"}}, []string{"suv"}},
		{"max price", domain_models.FilterHints{MaxPrice: 30000}, []string{"hybrid"}},
		{"min mpg", domain_models.FilterHints{MinMPG: 40}, []string{"hybrid"}},
		{"hybrid fuel preference reads the engine", domain_models.FilterHints{FuelPreference: "hybrid"}, []string{"hybrid"}},
		{"electric preference excludes both", domain_models.FilterHints{FuelPreference: "electric"}, []string{}},
		{"drivetrain substring", domain_models.FilterHints{Drivetrain: "awd"}, []string{"suv"}},
	}

	profile := domain_models.NeutralProfile()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestMatcher(t, suv, hybrid)
			results, err := svc.FindMatches(profile, nil, tc.hints, 0)
			require.NoError(t, err)

			ids := make([]string, 0, len(results))
			for _, r := range results {
				ids = append(ids, r.Vehicle.ID)
			}
			assert.ElementsMatch(t, tc.want, ids)
		})
	}
}

func TestGetVehicleByID(t *testing.T) {
	svc := newTestMatcher(t, testVehicle("known", 30000, domain_models.NeutralProfile()))

	vehicle, err := svc.GetVehicleByID("known")
	require.NoError(t, err)
	assert.Equal(t, "known", vehicle.ID)

	_, err = svc.GetVehicleByID("ghost")
	assert.ErrorIs(t, err, utils.ErrVehicleNotFound)
}

func TestCompareVehicles(t *testing.T) {
	a := testVehicle("a", 28000, domain_models.NeutralProfile())
	b := testVehicle("b", 45000, domain_models.NeutralProfile())
	b.Specs.Horsepower = 350
	svc := newTestMatcher(t, a, b)

	t.Run("builds per-category tables for every car", func(t *testing.T) {
		comparison, err := svc.CompareVehicles([]string{"a", "b"})
		require.NoError(t, err)
		require.Len(t, comparison.Cars, 2)

		for _, category := range []string{"price", "fuel_efficiency", "performance", "safety", "space"} {
			assert.Len(t, comparison.Categories[category], 2, category)
		}
		assert.Equal(t, 28000.0, comparison.Categories["price"][0].Value)
		assert.Equal(t, 350.0, comparison.Categories["performance"][1].Value)
	})

	t.Run("any missing id fails the comparison", func(t *testing.T) {
		_, err := svc.CompareVehicles([]string{"a", "ghost"})
		assert.ErrorIs(t, err, utils.ErrVehicleNotFound)
	})
}

func TestEstimateCosts(t *testing.T) {
	v := testVehicle("car", 30000, domain_models.NeutralProfile())
	svc := newTestMatcher(t, v)

	t.Run("amortizes the loan at the standard rate", func(t *testing.T) {
		estimate, err := svc.EstimateCosts("car", 0, 5000, 60)
		require.NoError(t, err)

		f := estimate.Financing
		assert.Equal(t, 25000.0, f.LoanAmount)
		assert.Equal(t, 60, f.LoanTermMonths)
		assert.InDelta(t, 489.18, f.MonthlyPayment, 0.05)
		assert.InDelta(t, f.MonthlyPayment*60+5000, f.TotalCost, 0.5)
		assert.InDelta(t, f.TotalCost-30000, f.TotalInterest, 0.01)

		assert.Equal(t, 1500, estimate.AnnualCosts.Insurance)
		assert.Equal(t, 500, estimate.AnnualCosts.Maintenance)
		assert.InDelta(t, 1750.0, estimate.AnnualCosts.FuelEstimate, 0.01)
	})

	t.Run("zero loan term defaults to 60 months", func(t *testing.T) {
		estimate, err := svc.EstimateCosts("car", 0, 5000, 0)
		require.NoError(t, err)
		assert.Equal(t, 60, estimate.Financing.LoanTermMonths)
	})

	t.Run("fully covered price needs no loan", func(t *testing.T) {
		estimate, err := svc.EstimateCosts("car", 10000, 25000, 60)
		require.NoError(t, err)

		f := estimate.Financing
		assert.Equal(t, 0.0, f.LoanAmount)
		assert.Equal(t, 0.0, f.MonthlyPayment)
		assert.Equal(t, 0.0, f.TotalInterest)
		assert.Equal(t, 20000.0, f.TotalCost)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		_, err := svc.EstimateCosts("ghost", 0, 0, 60)
		assert.ErrorIs(t, err, utils.ErrVehicleNotFound)
	})
}
