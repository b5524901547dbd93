package services

import (
	"fmt"
	"strings"

	"carconvo/internal/models/domain_models"
	"carconvo/internal/repositories"
	"carconvo/pkg/utils"
)

type ProfileServiceInterface interface {
	Questions() []domain_models.Question
	BuildProfile(answers domain_models.AnswerSet) (domain_models.ProfileVector, error)
	DescribeProfile(profile domain_models.ProfileVector) string
}

type ProfileService struct {
	questionRepo repositories.QuestionRepository
}

func NewProfileService(questionRepo repositories.QuestionRepository) ProfileServiceInterface {
	return &ProfileService{questionRepo: questionRepo}
}

func (p *ProfileService) Questions() []domain_models.Question {
	return p.questionRepo.All()
}

// BuildProfile folds a validated answer set into the ten-dimension lifestyle
// profile. Every dimension starts at the neutral baseline 5; each selected
// option contributes its sparse deltas, with the options of one multi-select
// answer averaged so picking three things is not worth triple credit. The
// mean delta per dimension (conceptual range -10..10) is mapped onto the
// 1-10 scale as 5 + delta/2, clamped and rounded half-up.
//
// The builder is a pure function of its inputs: same answers, same profile.
func (p *ProfileService) BuildProfile(answers domain_models.AnswerSet) (domain_models.ProfileVector, error) {
	var accum, weight [domain_models.DimensionCount]float64

	for questionID, values := range answers {
		question, ok := p.questionRepo.GetByID(questionID)
		if !ok {
			return domain_models.ProfileVector{}, fmt.Errorf("%w: unknown question %q", utils.ErrValidation, questionID)
		}
		if len(values) == 0 {
			return domain_models.ProfileVector{}, fmt.Errorf("%w: question %q has no selected value", utils.ErrValidation, questionID)
		}
		if !question.MultiSelect && len(values) > 1 {
			return domain_models.ProfileVector{}, fmt.Errorf("%w: question %q accepts a single selection, got %d", utils.ErrValidation, questionID, len(values))
		}
		if question.MultiSelect && question.MaxSelections > 0 && len(values) > question.MaxSelections {
			return domain_models.ProfileVector{}, fmt.Errorf("%w: question %q allows at most %d selections, got %d", utils.ErrValidation, questionID, question.MaxSelections, len(values))
		}

		w := 1.0 / float64(len(values))
		for _, value := range values {
			option, ok := question.FindOption(value)
			if !ok {
				return domain_models.ProfileVector{}, fmt.Errorf("%w: question %q has no option %q", utils.ErrValidation, questionID, value)
			}
			for name, delta := range option.Scores {
				// catalog load already rejected unknown dimension names
				if d, ok := domain_models.ParseDimension(name); ok {
					accum[d] += delta * w
					weight[d] += w
				}
			}
		}
	}

	profile := domain_models.NeutralProfile()
	for d := range profile {
		if weight[d] > 0 {
			mean := accum[d] / weight[d]
			profile[d] = 5 + mean/2
		}
	}

	return profile.ClampRound(), nil
}

var dimensionDescriptions = map[domain_models.Dimension]string{
	domain_models.DimFamilyFriendly:  "family-oriented with focus on safety and space",
	domain_models.DimAdventure:       "adventurous and outdoor-focused",
	domain_models.DimEcoConscious:    "environmentally conscious",
	domain_models.DimLuxury:          "appreciative of premium features and comfort",
	domain_models.DimPerformance:     "performance-driven and dynamic",
	domain_models.DimBudgetConscious: "value-focused and practical",
	domain_models.DimCityDriving:     "urban with compact needs",
	domain_models.DimCommuter:        "a commuter prioritizing efficiency",
	domain_models.DimTechEnthusiast:  "technology-forward",
	domain_models.DimSafetyFocused:   "safety-conscious",
}

// DescribeProfile renders a short sentence about the user's strongest
// priorities, used in chat prompts and the questionnaire response.
func (p *ProfileService) DescribeProfile(profile domain_models.ProfileVector) string {
	var parts []string
	for _, d := range profile.TopDimensions(3) {
		if profile.Get(d) >= 7 {
			parts = append(parts, dimensionDescriptions[d])
		}
	}
	if len(parts) == 0 {
		return "You have balanced priorities across different vehicle aspects."
	}
	return "You appear to be " + strings.Join(parts, ", ") + "."
}
