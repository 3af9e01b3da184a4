package tutor

import "github.com/learnbuddy/learnbuddy/internal/llm"

// QuizSchema defines the JSON schema for practice quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "practice-quiz",
	Description: "A multiple-choice practice quiz on one topic, with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "Short name of the topic the quiz covers, e.g. \"Photosynthesis\"",
			},
			"questions": map[string]any{
				"type":     "array",
				"minItems": QuestionsPerQuiz,
				"maxItems": QuestionsPerQuiz,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt, without numbering",
						},
						"options": map[string]any{
							"type":        "array",
							"minItems":    4,
							"maxItems":    4,
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer choices in A-D order, without letter prefixes",
						},
						"answer": map[string]any{
							"type":        "string",
							"enum":        []any{"A", "B", "C", "D"},
							"description": "Letter of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences explaining why the answer is correct",
						},
					},
					"required":             []any{"question", "options", "answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"topic", "questions"},
		"additionalProperties": false,
	},
}

func init() {
	if err := llm.CheckSchema(QuizSchema); err != nil {
		panic(err)
	}
}
