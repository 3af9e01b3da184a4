package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func questionSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "One multiple-choice question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
					"maxItems": 4,
				},
				"answer": map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
			},
			"required":             []any{"question", "options", "answer"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"question":"What is H2O?","options":["Water","Salt"],"answer":"A"}`, false},
		{"missing required", `{"question":"What is H2O?","options":["Water","Salt"]}`, true},
		{"wrong type", `{"question":"Q","options":"Water","answer":"A"}`, true},
		{"bad enum", `{"question":"Q","options":["x","y"],"answer":"E"}`, true},
		{"too many options", `{"question":"Q","options":["a","b","c","d","e"],"answer":"A"}`, true},
		{"extra field", `{"question":"Q","options":["x","y"],"answer":"A","hint":"h"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(questionSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text reply`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedArray(t *testing.T) {
	schema := &Schema{
		Name: "test-quiz",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":  "array",
					"items": questionSchema().Definition,
				},
			},
			"required": []any{"questions"},
		},
	}

	valid := json.RawMessage(`{"questions":[{"question":"Q","options":["x","y"],"answer":"B"}]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"questions":[{"question":"Q","options":["x","y"]}]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for nested item missing answer")
	}
}

func TestCheckSchema(t *testing.T) {
	if err := CheckSchema(questionSchema()); err != nil {
		t.Fatalf("valid schema rejected: %v", err)
	}

	broken := &Schema{
		Name:       "test-broken",
		Definition: map[string]any{"type": 42},
	}
	if err := CheckSchema(broken); err == nil {
		t.Fatal("expected error for invalid schema definition")
	}
}
