// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/flashcard-engine/pkg/types"
)

// flashcardPromptTmpl is the prompt sent to the provider for one batch.
var flashcardPromptTmpl = template.Must(template.New("flashcards").Parse(`You are an expert educator creating high-quality flashcards for students.

Generate exactly {{.Count}} flashcards about: "{{.Topic}}"

Requirements:
- Difficulty level: {{.Difficulty}}
- Each flashcard must have a clear, specific question
- Answers should be concise but complete
- Questions should test understanding, not just memorization
- Avoid ambiguous or trick questions
- Use proper grammar and spelling
- For {{.Difficulty}} level:
  {{.Guidelines}}

Focus on creating educational value and clear learning objectives.

Respond with a JSON object containing a "flashcards" array. Each element must have a "question" (at least 5 characters) and an "answer" (at least 3 characters). Do not include any text outside the JSON object.
`))

// DifficultyGuidelines returns the level-specific instructions embedded in
// the prompt.
func DifficultyGuidelines(d types.Difficulty) string {
	switch d {
	case types.DifficultyBeginner:
		return "- Use simple, straightforward questions\n  - Focus on basic concepts and definitions\n  - Keep answers brief and clear"
	case types.DifficultyIntermediate:
		return "- Include some application and analysis questions\n  - Mix definitions with conceptual understanding\n  - Answers can be more detailed"
	case types.DifficultyAdvanced:
		return "- Include complex, multi-step questions\n  - Focus on synthesis and evaluation\n  - Encourage critical thinking and deeper analysis"
	default:
		return "- Balance between recall and understanding"
	}
}

// BuildPrompt renders the generation prompt for req.
func BuildPrompt(req types.GenerationRequest) (string, error) {
	var buf bytes.Buffer
	err := flashcardPromptTmpl.Execute(&buf, struct {
		Topic      string
		Count      int
		Difficulty types.Difficulty
		Guidelines string
	}{
		Topic:      req.Topic,
		Count:      req.Count,
		Difficulty: req.Difficulty,
		Guidelines: DifficultyGuidelines(req.Difficulty),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
