package repositories

import (
	"encoding/json"
	"fmt"
	"os"

	"carconvo/internal/models/domain_models"
	"carconvo/pkg/utils"
)

// QuestionRepository serves the questionnaire catalog, loaded once at
// startup and read-only afterwards.
type QuestionRepository interface {
	All() []domain_models.Question
	GetByID(id string) (domain_models.Question, bool)
}

type jsonQuestionRepository struct {
	questions []domain_models.Question
	byID      map[string]int
}

type questionFile struct {
	Questions []domain_models.Question `json:"questions"`
}

// NewJSONQuestionRepository reads the question catalog from a JSON document.
func NewJSONQuestionRepository(path string) (QuestionRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", utils.ErrQuestionCatalog, path, err)
	}

	var file questionFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", utils.ErrQuestionCatalog, path, err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("%w: %s contains no questions", utils.ErrQuestionCatalog, path)
	}

	byID := make(map[string]int, len(file.Questions))
	for i, q := range file.Questions {
		if q.ID == "" {
			return nil, fmt.Errorf("%w: question %d has no id", utils.ErrQuestionCatalog, i)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate question id %q", utils.ErrQuestionCatalog, q.ID)
		}
		for _, o := range q.Options {
			for dim := range o.Scores {
				if _, ok := domain_models.ParseDimension(dim); !ok {
					return nil, fmt.Errorf("%w: question %q option %q scores unknown dimension %q",
						utils.ErrQuestionCatalog, q.ID, o.Value, dim)
				}
			}
		}
		byID[q.ID] = i
	}

	return &jsonQuestionRepository{questions: file.Questions, byID: byID}, nil
}

func (r *jsonQuestionRepository) All() []domain_models.Question {
	return r.questions
}

func (r *jsonQuestionRepository) GetByID(id string) (domain_models.Question, bool) {
	i, ok := r.byID[id]
	if !ok {
		return domain_models.Question{}, false
	}
	return r.questions[i], true
}
