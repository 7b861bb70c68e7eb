package Evaluator

import (
	"encoding/json"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// FallbackPreamble prefixes the raw provider text in a fallback report.
const FallbackPreamble = "Raw AI Output:\n\n"

// ParsedEvaluation is the structured shape the provider is asked for.
type ParsedEvaluation struct {
	Score        int      `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	FullReport   string   `json:"fullReport"`
}

// Extraction is the tagged result of parsing provider output: either the
// structured evaluation or the deterministic fallback built from raw text.
type Extraction struct {
	ParsedEvaluation
	Fallback bool
	Raw      string
}

// wireEvaluation uses a pointer score so an absent field is
// distinguishable from a legitimate zero.
type wireEvaluation struct {
	Score        *int     `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	FullReport   string   `json:"fullReport"`
}

// ExtractEvaluation parses untrusted provider text. It takes the span from
// the first '{' to the last '}' and tries a strict JSON parse, then a
// tolerant JSON5 parse. Anything unusable yields the fallback evaluation;
// extraction never fails once the provider has responded.
func ExtractEvaluation(raw string) Extraction {
	if parsed, ok := parseSpan(raw); ok {
		return Extraction{ParsedEvaluation: parsed, Raw: raw}
	}
	return Extraction{
		ParsedEvaluation: ParsedEvaluation{
			Score:        75,
			Strengths:    []string{"Good logic flow", "Readable structure", "Works as expected"},
			Improvements: []string{"Add error handling", "Optimize performance", "Improve documentation"},
			FullReport:   FallbackPreamble + raw,
		},
		Fallback: true,
		Raw:      raw,
	}
}

func parseSpan(raw string) (ParsedEvaluation, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ParsedEvaluation{}, false
	}
	span := raw[start : end+1]

	var wire wireEvaluation
	if err := json.Unmarshal([]byte(span), &wire); err != nil {
		// Models frequently emit near-JSON (trailing commas, unquoted
		// keys); give it one tolerant pass before falling back.
		wire = wireEvaluation{}
		if err := json5.Unmarshal([]byte(span), &wire); err != nil {
			return ParsedEvaluation{}, false
		}
	}

	if wire.Score == nil || *wire.Score < 0 || *wire.Score > 100 {
		return ParsedEvaluation{}, false
	}
	if len(wire.Strengths) == 0 || len(wire.Improvements) == 0 || wire.FullReport == "" {
		return ParsedEvaluation{}, false
	}
	return ParsedEvaluation{
		Score:        *wire.Score,
		Strengths:    wire.Strengths,
		Improvements: wire.Improvements,
		FullReport:   wire.FullReport,
	}, true
}
