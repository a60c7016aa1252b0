package progress

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://progress-document.json"

var nullableTimestamp = map[string]any{"type": []any{"string", "null"}}

// documentSchema describes the persisted progress document. Every field is
// optional; absent values take their zero defaults in normalize.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"session_id":   map[string]any{"type": "string"},
		"created":      nullableTimestamp,
		"last_updated": nullableTimestamp,
		"exercises": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"$ref": "#/$defs/exercise"},
		},
	},
	"$defs": map[string]any{
		"exercise": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"exercise_id": map[string]any{"type": "string"},
				"started":     map[string]any{"type": "boolean"},
				"completed":   map[string]any{"type": "boolean"},
				"scenarios": map[string]any{
					"type":                 "object",
					"additionalProperties": map[string]any{"$ref": "#/$defs/scenario"},
				},
			},
		},
		"scenario": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"scenario_id": map[string]any{"type": "string"},
				"started":     map[string]any{"type": "boolean"},
				"completed":   map[string]any{"type": "boolean"},
				"questions": map[string]any{
					"type":                 "object",
					"additionalProperties": map[string]any{"$ref": "#/$defs/question"},
				},
			},
		},
		"question": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question_id": map[string]any{"type": "string"},
				"answered":    map[string]any{"type": "boolean"},
				"correct":     map[string]any{"type": "boolean"},
				"score":       map[string]any{"type": "number", "minimum": 0},
				"attempts":    map[string]any{"type": "integer", "minimum": 0},
				"user_answer": map[string]any{},
				"timestamp":   nullableTimestamp,
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants JSON-decoded values, not Go literals.
		raw, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(documentSchemaURL)
	})
	return compiled, compileErr
}

// decodeDocument parses, validates and decodes a persisted document into a
// normalized Session. It never returns a partially built session.
func decodeDocument(data []byte) (*Session, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &LoadError{Stage: "parse", Err: err}
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, &LoadError{Stage: "schema", Err: fmt.Errorf("compile: %w", err)}
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, &LoadError{Stage: "schema", Err: err}
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &LoadError{Stage: "decode", Err: err}
	}
	normalize(&s)
	return &s, nil
}

// normalize applies load-time defaults in one pass: missing maps become
// empty, ids come from their map keys, and null answers are cleared.
func normalize(s *Session) {
	if s.SessionID == "" {
		s.SessionID = "unknown"
	}
	if s.Exercises == nil {
		s.Exercises = make(map[string]*ExerciseProgress)
	}
	for exID, ex := range s.Exercises {
		if ex == nil {
			ex = &ExerciseProgress{}
			s.Exercises[exID] = ex
		}
		ex.ExerciseID = exID
		if ex.Scenarios == nil {
			ex.Scenarios = make(map[string]*ScenarioProgress)
		}
		for scID, sc := range ex.Scenarios {
			if sc == nil {
				sc = &ScenarioProgress{}
				ex.Scenarios[scID] = sc
			}
			sc.ScenarioID = scID
			if sc.Questions == nil {
				sc.Questions = make(map[string]*QuestionProgress)
			}
			for qID, q := range sc.Questions {
				if q == nil {
					q = &QuestionProgress{}
					sc.Questions[qID] = q
				}
				q.QuestionID = qID
				if string(q.UserAnswer) == "null" {
					q.UserAnswer = nil
				}
			}
		}
	}
}

func encodeDocument(s *Session) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
