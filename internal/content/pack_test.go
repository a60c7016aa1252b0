package content

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cyberlab/internal/question"
)

const minimalPack = `{
  "format_version": "v1.2.0",
  "exercises": [{
    "id": "ex1",
    "number": 1,
    "title": "Basics",
    "scenarios": [{
      "id": "s1",
      "title": "Warm up",
      "questions": [
        {"id": "q1", "kind": "multiple_choice", "prompt": "Pick A", "points": 1,
         "options": [{"key": "A", "text": "a"}, {"key": "B", "text": "b"}], "correct_option": "A"},
        {"id": "q2", "kind": "checklist", "prompt": "Pick A and C", "points": 3,
         "options": [{"key": "A", "text": "a"}, {"key": "B", "text": "b"}, {"key": "C", "text": "c"}],
         "correct_options": ["A", "C"]},
        {"id": "q3", "kind": "ranking", "prompt": "Order", "points": 2,
         "items": ["x", "y"], "correct_order": [2, 1]},
        {"id": "q4", "kind": "free_text", "prompt": "Explain", "points": 4,
         "required_keywords": ["risk", "mitigate"], "min_keywords": 1,
         "feedback": {"incorrect": "Mention risk."}}
      ]
    }]
  }]
}`

func TestParse_MinimalPack(t *testing.T) {
	cat, err := Parse([]byte(minimalPack))
	require.NoError(t, err)

	ex, ok := cat.Exercise("ex1")
	require.True(t, ok)
	require.Len(t, ex.Scenarios, 1)
	qs := ex.Scenarios[0].Questions
	require.Len(t, qs, 4)

	assert.Equal(t, question.KindMultipleChoice, qs[0].Kind())
	assert.Equal(t, question.KindChecklist, qs[1].Kind())
	assert.Equal(t, question.KindRanking, qs[2].Kind())
	assert.Equal(t, question.KindFreeText, qs[3].Kind())
	assert.Equal(t, "Mention risk.", qs[3].Feedback.Incorrect)

	res := question.Grade(qs[1], question.SelectionAnswer{"A"})
	assert.InDelta(t, 1.5, res.Score, 1e-9)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"missing version", `{"exercises": []}`},
		{"major version 2", replaceVersion("v2.0.0")},
		{"invalid semver", replaceVersion("v1.x")},
		{"unknown kind", `{"format_version":"v1.0.0","exercises":[{"id":"e","number":1,"title":"t","scenarios":[{"id":"s","title":"t","questions":[{"id":"q","kind":"essay","prompt":"p","points":1}]}]}]}`},
		{"mc without options", `{"format_version":"v1.0.0","exercises":[{"id":"e","number":1,"title":"t","scenarios":[{"id":"s","title":"t","questions":[{"id":"q","kind":"multiple_choice","prompt":"p","points":1}]}]}]}`},
		{"zero points", `{"format_version":"v1.0.0","exercises":[{"id":"e","number":1,"title":"t","scenarios":[{"id":"s","title":"t","questions":[{"id":"q","kind":"free_text","prompt":"p","points":0}]}]}]}`},
		{"bad ranking order", `{"format_version":"v1.0.0","exercises":[{"id":"e","number":1,"title":"t","scenarios":[{"id":"s","title":"t","questions":[{"id":"q","kind":"ranking","prompt":"p","points":1,"items":["a","b"],"correct_order":[1,3]}]}]}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestExportRoundTrip(t *testing.T) {
	orig := Default()
	data, err := json.MarshalIndent(Export(orig, "v1.0.0"), "", "  ")
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)

	require.Equal(t, orig.Len(), got.Len())
	for _, ex := range orig.Exercises() {
		gex, ok := got.Exercise(ex.ID)
		require.True(t, ok, ex.ID)
		assert.Equal(t, ex.Title, gex.Title)
		assert.Equal(t, ex.TotalPoints(), gex.TotalPoints())
		assert.Equal(t, ex.QuestionCount(), gex.QuestionCount())
		for i, sc := range ex.Scenarios {
			for j, q := range sc.Questions {
				assert.Equal(t, q.Body, gex.Scenarios[i].Questions[j].Body, q.ID)
			}
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.json")
	require.NoError(t, os.WriteFile(path, []byte(minimalPack), 0o644))

	cat, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func replaceVersion(v string) string {
	var doc map[string]any
	if err := json.Unmarshal([]byte(minimalPack), &doc); err != nil {
		panic(err)
	}
	doc["format_version"] = v
	out, _ := json.Marshal(doc)
	return string(out)
}
