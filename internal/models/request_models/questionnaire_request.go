package request_models

import "encoding/json"

// AnswerValues accepts both the current array form ("q1": ["a", "b"]) and the
// legacy single-string form ("q1": "a") that older clients still send.
type AnswerValues []string

func (a *AnswerValues) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*a = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*a = []string{single}
	return nil
}

type AnalyzeRequest struct {
	Answers map[string]AnswerValues `json:"answers"`
}
