package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/quizcraft/backend/internal/models"
)

// CandidatePayload is the JSON shape an LLM backend must return for
// one generated question.
type CandidatePayload struct {
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Distractors []string `json:"distractors"`
	Type        string   `json:"type"`
	Difficulty  string   `json:"difficulty"`
}

const candidateSchema = `{
  "type": "object",
  "required": ["question", "answer", "type"],
  "properties": {
    "question": {"type": "string", "minLength": 1},
    "answer": {"type": "string", "minLength": 1},
    "distractors": {"type": "array", "items": {"type": "string"}},
    "type": {"enum": ["multiple_choice", "true_false", "short_answer"]},
    "difficulty": {"enum": ["easy", "medium", "hard"]}
  }
}`

var candidateSchemaLoader = gojsonschema.NewStringLoader(candidateSchema)

// ParseCandidate validates and decodes one LLM response. Any failure
// is a capability failure: the caller treats it as a generation gap
// for the unit, never a run failure.
func ParseCandidate(raw string) (*CandidatePayload, error) {
	cleaned := stripCodeFences(raw)

	result, err := gojsonschema.Validate(candidateSchemaLoader, gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, &models.CapabilityFailureError{
			Capability: "generator",
			Err:        fmt.Errorf("response is not valid JSON: %w", err),
		}
	}
	if !result.Valid() {
		var issues []string
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, &models.CapabilityFailureError{
			Capability: "generator",
			Err:        fmt.Errorf("response failed schema validation: %s", strings.Join(issues, "; ")),
		}
	}

	var payload CandidatePayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &models.CapabilityFailureError{
			Capability: "generator",
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return &payload, nil
}

// stripCodeFences removes a markdown code fence wrapper if the model
// added one despite the JSON-only instruction.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
