package domain_models

// Question is one questionnaire entry with its selectable options.
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"question"`
	Category      string   `json:"category"`
	MultiSelect   bool     `json:"multi_select"`
	MaxSelections int      `json:"max_selections,omitempty"`
	Options       []Option `json:"options"`
}

// Option is a selectable answer. Scores is a sparse partial vector: only the
// dimensions this option actually moves are listed, each delta conceptually
// in [-10, 10].
type Option struct {
	Value  string             `json:"value"`
	Label  string             `json:"label"`
	Scores map[string]float64 `json:"scores"`
}

// FindOption returns the option with the given value token.
func (q Question) FindOption(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// AnswerSet maps question id to the selected option values. Single-select
// questions carry exactly one value.
type AnswerSet map[string][]string
