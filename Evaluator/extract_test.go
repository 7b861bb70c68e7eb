package Evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEvaluationStrictJSON(t *testing.T) {
	raw := `{"score":85,"strengths":["a","b"],"improvements":["c"],"fullReport":"ok"}`

	extraction := ExtractEvaluation(raw)

	require.False(t, extraction.Fallback)
	assert.Equal(t, 85, extraction.Score)
	assert.Equal(t, []string{"a", "b"}, extraction.Strengths)
	assert.Equal(t, []string{"c"}, extraction.Improvements)
	assert.Equal(t, "ok", extraction.FullReport)
}

func TestExtractEvaluationEmbeddedInProse(t *testing.T) {
	raw := "Sure! Here is the evaluation you asked for:\n" +
		`{"score":85,"strengths":["a","b"],"improvements":["c"],"fullReport":"ok"}` +
		"\nLet me know if you need anything else."

	extraction := ExtractEvaluation(raw)

	require.False(t, extraction.Fallback)
	assert.Equal(t, 85, extraction.Score)
	assert.Equal(t, []string{"a", "b"}, extraction.Strengths)
	assert.Equal(t, "ok", extraction.FullReport)
}

func TestExtractEvaluationJSON5Tolerance(t *testing.T) {
	// Trailing commas are invalid JSON but common in model output.
	raw := `{"score": 70, "strengths": ["a",], "improvements": ["b",], "fullReport": "fine",}`

	extraction := ExtractEvaluation(raw)

	require.False(t, extraction.Fallback)
	assert.Equal(t, 70, extraction.Score)
}

func TestExtractEvaluationFallbackCases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "I could not evaluate this task, sorry."},
		{"empty string", ""},
		{"braces out of order", "} nothing here {"},
		{"unparseable span", "{this is not json at all"},
		{"missing score", `{"strengths":["a"],"improvements":["b"],"fullReport":"x"}`},
		{"score out of range", `{"score":150,"strengths":["a"],"improvements":["b"],"fullReport":"x"}`},
		{"empty strengths", `{"score":50,"strengths":[],"improvements":["b"],"fullReport":"x"}`},
		{"missing report", `{"score":50,"strengths":["a"],"improvements":["b"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extraction := ExtractEvaluation(tt.raw)

			require.True(t, extraction.Fallback)
			assert.Equal(t, 75, extraction.Score)
			assert.Equal(t, []string{"Good logic flow", "Readable structure", "Works as expected"}, extraction.Strengths)
			assert.Equal(t, []string{"Add error handling", "Optimize performance", "Improve documentation"}, extraction.Improvements)
			assert.Equal(t, FallbackPreamble+tt.raw, extraction.FullReport)
		})
	}
}

func TestExtractEvaluationZeroScoreIsValid(t *testing.T) {
	raw := `{"score":0,"strengths":["a"],"improvements":["b"],"fullReport":"needs work"}`

	extraction := ExtractEvaluation(raw)

	require.False(t, extraction.Fallback)
	assert.Equal(t, 0, extraction.Score)
}
