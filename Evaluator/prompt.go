package Evaluator

import "fmt"

const systemPrompt = "You are an expert coding evaluator. Always respond in pure JSON only."

const userPromptTemplate = `Evaluate this coding task and return JSON only.

Task Description: %s

Submitted Code:
%s

Return EXACT format:
{
  "score": 85,
  "strengths": ["s1","s2","s3"],
  "improvements": ["i1","i2","i3"],
  "fullReport": "detailed analysis..."
}`

// BuildPrompt produces the fixed evaluation instruction. User content is
// interpolated into the template but cannot change its structural demands.
func BuildPrompt(description, code string) (system, user string) {
	return systemPrompt, fmt.Sprintf(userPromptTemplate, description, code)
}
