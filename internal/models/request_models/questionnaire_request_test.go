package request_models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValuesUnmarshal(t *testing.T) {
	t.Run("array form", func(t *testing.T) {
		var req AnalyzeRequest
		require.NoError(t, json.Unmarshal([]byte(`{"answers": {"q1": ["a", "b"]}}`), &req))
		assert.Equal(t, AnswerValues{"a", "b"}, req.Answers["q1"])
	})

	t.Run("legacy single string form", func(t *testing.T) {
		var req AnalyzeRequest
		require.NoError(t, json.Unmarshal([]byte(`{"answers": {"q1": "a"}}`), &req))
		assert.Equal(t, AnswerValues{"a"}, req.Answers["q1"])
	})

	t.Run("other shapes rejected", func(t *testing.T) {
		var req AnalyzeRequest
		assert.Error(t, json.Unmarshal([]byte(`{"answers": {"q1": 7}}`), &req))
	})
}
