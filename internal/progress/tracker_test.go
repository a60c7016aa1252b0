package progress

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestTracker(t *testing.T, b Backend) *Tracker {
	t.Helper()
	return NewTracker(b,
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string { return "session-1" }),
	)
}

func TestRecordAnswer_CreatesNodesAndSaves(t *testing.T) {
	b := &MemoryBackend{}
	tr := newTestTracker(t, b)

	require.NoError(t, tr.RecordAnswer("ex1", "sc1", "q1", "B", true, 2))

	require.True(t, tr.HasSession())
	ex := tr.Session().Exercises["ex1"]
	require.NotNil(t, ex)
	assert.True(t, ex.Started)
	assert.False(t, ex.Completed)

	sc := ex.Scenarios["sc1"]
	require.NotNil(t, sc)
	assert.True(t, sc.Started)

	q := sc.Questions["q1"]
	require.NotNil(t, q)
	assert.Equal(t, "q1", q.QuestionID)
	assert.True(t, q.Answered)
	assert.True(t, q.Correct)
	assert.Equal(t, 2.0, q.Score)
	assert.Equal(t, 1, q.Attempts)
	assert.JSONEq(t, `"B"`, string(q.UserAnswer))
	assert.True(t, q.Timestamp.Equal(testNow))

	assert.Equal(t, 1, b.Writes)
}

func TestRecordAnswer_AttemptsIncreaseScoreOverwrites(t *testing.T) {
	tr := newTestTracker(t, &MemoryBackend{})

	scores := []float64{0, 1.5, 3, 0}
	for i, score := range scores {
		require.NoError(t, tr.RecordAnswer("ex1", "sc1", "q1", []string{"A"}, score == 3, score))
		q := tr.Session().Exercises["ex1"].Scenarios["sc1"].Questions["q1"]
		assert.Equal(t, i+1, q.Attempts)
		assert.Equal(t, score, q.Score)
	}
}

func TestGetOrCreate_NeverDuplicates(t *testing.T) {
	tr := newTestTracker(t, &MemoryBackend{})

	a := tr.ScenarioProgress("ex1", "sc1")
	b := tr.ScenarioProgress("ex1", "sc1")
	assert.Same(t, a, b)
	assert.Same(t, tr.ExerciseProgress("ex1"), tr.ExerciseProgress("ex1"))
	assert.Len(t, tr.Session().Exercises, 1)
	assert.Len(t, tr.Session().Exercises["ex1"].Scenarios, 1)
}

func TestMarkScenarioComplete(t *testing.T) {
	tr := newTestTracker(t, &MemoryBackend{})
	tr.ScenarioProgress("ex1", "sc1")
	tr.ScenarioProgress("ex1", "sc2")

	require.NoError(t, tr.MarkScenarioComplete("ex1", "sc1"))
	ex := tr.Session().Exercises["ex1"]
	assert.True(t, ex.Scenarios["sc1"].Completed)
	assert.False(t, ex.Completed, "exercise must wait for every registered scenario")

	require.NoError(t, tr.MarkScenarioComplete("ex1", "sc2"))
	assert.True(t, ex.Completed)

	// Idempotent.
	require.NoError(t, tr.MarkScenarioComplete("ex1", "sc2"))
	assert.True(t, ex.Completed)
	assert.True(t, ex.Scenarios["sc1"].Completed)
	assert.True(t, ex.Scenarios["sc2"].Completed)
}

func TestMarkScenarioComplete_CompletedIsMonotonic(t *testing.T) {
	tr := newTestTracker(t, &MemoryBackend{})
	require.NoError(t, tr.MarkScenarioComplete("ex1", "sc1"))
	require.True(t, tr.Session().Exercises["ex1"].Completed)

	// Registering a new scenario later does not reset completion.
	tr.ScenarioProgress("ex1", "sc2")
	require.NoError(t, tr.RecordAnswer("ex1", "sc1", "q1", "A", false, 0))
	assert.True(t, tr.Session().Exercises["ex1"].Completed)
	assert.True(t, tr.Session().Exercises["ex1"].Scenarios["sc1"].Completed)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.json")
	tr := newTestTracker(t, NewFileBackend(path))

	require.NoError(t, tr.RecordAnswer("ex1", "sc1", "q1", "B", true, 2))
	require.NoError(t, tr.RecordAnswer("ex1", "sc1", "q2", []int{2, 1, 3}, false, 3.5))
	require.NoError(t, tr.RecordAnswer("ex1", "sc1", "q2", []int{1, 2, 3}, true, 10))
	require.NoError(t, tr.MarkScenarioComplete("ex1", "sc1"))
	require.NoError(t, tr.RecordAnswer("ex2", "sc9", "q1", "risk", false, 1))

	saved := tr.Session()

	loaded := newTestTracker(t, NewFileBackend(path))
	require.True(t, loaded.Load())
	got := loaded.Session()

	assert.Equal(t, saved.SessionID, got.SessionID)
	assert.True(t, saved.Created.Equal(got.Created.Time))
	require.Len(t, got.Exercises, len(saved.Exercises))
	for exID, ex := range saved.Exercises {
		gex := got.Exercises[exID]
		require.NotNil(t, gex, exID)
		assert.Equal(t, ex.ExerciseID, gex.ExerciseID)
		assert.Equal(t, ex.Started, gex.Started)
		assert.Equal(t, ex.Completed, gex.Completed)
		require.Len(t, gex.Scenarios, len(ex.Scenarios))
		for scID, sc := range ex.Scenarios {
			gsc := gex.Scenarios[scID]
			require.NotNil(t, gsc, scID)
			assert.Equal(t, sc.Started, gsc.Started)
			assert.Equal(t, sc.Completed, gsc.Completed)
			require.Len(t, gsc.Questions, len(sc.Questions))
			for qID, q := range sc.Questions {
				gq := gsc.Questions[qID]
				require.NotNil(t, gq, qID)
				assert.Equal(t, q.Answered, gq.Answered)
				assert.Equal(t, q.Correct, gq.Correct)
				assert.Equal(t, q.Score, gq.Score)
				assert.Equal(t, q.Attempts, gq.Attempts)
				assert.JSONEq(t, string(q.UserAnswer), string(gq.UserAnswer))
				assert.True(t, q.Timestamp.Equal(gq.Timestamp.Time))
			}
		}
	}
}

func TestSave_NoSessionIsNoop(t *testing.T) {
	b := &MemoryBackend{}
	tr := newTestTracker(t, b)
	require.NoError(t, tr.Save())
	assert.Equal(t, 0, b.Writes)
	assert.Nil(t, b.Data)
}

func TestSave_RefreshesLastUpdated(t *testing.T) {
	now := testNow
	tr := NewTracker(&MemoryBackend{}, WithClock(func() time.Time { return now }))
	tr.NewSession()

	now = now.Add(time.Hour)
	require.NoError(t, tr.Save())
	assert.True(t, tr.Session().LastUpdated.Equal(now))
	assert.True(t, tr.Session().Created.Equal(testNow))
}

func TestSave_WriteErrorKeepsMemoryState(t *testing.T) {
	b := &MemoryBackend{WriteErr: errors.New("disk full")}
	tr := newTestTracker(t, b)

	err := tr.RecordAnswer("ex1", "sc1", "q1", "A", true, 1)
	require.Error(t, err)

	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.ErrorIs(t, err, b.WriteErr)

	q := tr.Session().Exercises["ex1"].Scenarios["sc1"].Questions["q1"]
	require.NotNil(t, q)
	assert.Equal(t, 1, q.Attempts)
}

func TestSave_DocumentShape(t *testing.T) {
	b := &MemoryBackend{}
	tr := newTestTracker(t, b)
	require.NoError(t, tr.RecordAnswer("ex1", "sc1", "q1", nil, false, 0))

	assert.True(t, bytes.Contains(b.Data, []byte("\n  \"session_id\": \"session-1\"")), "expected two-space indent")
	assert.Contains(t, string(b.Data), `"user_answer": null`)
	assert.Contains(t, string(b.Data), `"created": "2025-03-14T09:26:53Z"`)
}

func TestLoad_MissingFile(t *testing.T) {
	tr := newTestTracker(t, NewFileBackend(filepath.Join(t.TempDir(), "none.json")))
	assert.False(t, tr.Load())
	assert.False(t, tr.HasSession())
}

func TestLoad_MalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"session_id": `},
		{"not an object", `[1, 2, 3]`},
		{"wrong field type", `{"session_id": "s", "exercises": {"ex1": {"started": "yes"}}}`},
		{"negative attempts", `{"exercises": {"e": {"scenarios": {"s": {"questions": {"q": {"attempts": -1}}}}}}}`},
		{"bad timestamp", `{"created": "yesterday"}`},
		{"exercise not an object", `{"exercises": {"ex1": 7}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := logrus.New()
			logger.SetOutput(&logs)

			b := &MemoryBackend{Data: []byte(tc.doc)}
			tr := NewTracker(b, WithLogger(logger))
			tr.NewSession()

			assert.False(t, tr.Load())
			assert.False(t, tr.HasSession(), "no partial session may remain installed")
			assert.Contains(t, logs.String(), "could not load progress")
		})
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	doc := `{
	  "exercises": {
	    "ex1": {
	      "scenarios": {
	        "sc1": {"started": true},
	        "sc2": {"questions": {"q1": {"answered": true, "score": 2}}}
	      }
	    },
	    "ex2": {}
	  }
	}`
	tr := newTestTracker(t, &MemoryBackend{Data: []byte(doc)})
	require.True(t, tr.Load())

	s := tr.Session()
	assert.Equal(t, "unknown", s.SessionID)
	assert.True(t, s.Created.IsZero())

	ex1 := s.Exercises["ex1"]
	assert.Equal(t, "ex1", ex1.ExerciseID)
	assert.False(t, ex1.Started)

	sc1 := ex1.Scenarios["sc1"]
	assert.Equal(t, "sc1", sc1.ScenarioID)
	assert.True(t, sc1.Started)
	assert.NotNil(t, sc1.Questions)
	assert.Empty(t, sc1.Questions)

	q := ex1.Scenarios["sc2"].Questions["q1"]
	assert.Equal(t, "q1", q.QuestionID)
	assert.Equal(t, 0, q.Attempts)
	assert.Nil(t, q.UserAnswer)
	assert.True(t, q.Timestamp.IsZero())

	assert.NotNil(t, s.Exercises["ex2"].Scenarios)
}

func TestLoad_LegacyTimestamps(t *testing.T) {
	doc := `{
	  "session_id": "20240101_120000",
	  "created": "2024-01-01T12:00:00.123456",
	  "last_updated": "",
	  "exercises": {"ex1": {"scenarios": {"sc1": {"questions": {
	    "q1": {"answered": true, "user_answer": ["A", "C"], "timestamp": null}
	  }}}}}
	}`
	tr := newTestTracker(t, &MemoryBackend{Data: []byte(doc)})
	require.True(t, tr.Load())

	s := tr.Session()
	assert.Equal(t, 2024, s.Created.Year())
	assert.Equal(t, 123456000, s.Created.Nanosecond())
	assert.True(t, s.LastUpdated.IsZero())
	assert.JSONEq(t, `["A","C"]`, string(s.Exercises["ex1"].Scenarios["sc1"].Questions["q1"].UserAnswer))
}

func TestResetAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	tr := newTestTracker(t, NewFileBackend(path))
	require.NoError(t, tr.RecordAnswer("ex1", "sc1", "q1", "A", true, 1))
	require.FileExists(t, path)

	require.NoError(t, tr.ResetAll())
	assert.False(t, tr.HasSession())
	assert.NoFileExists(t, path)

	// Resetting again with no document is fine.
	require.NoError(t, tr.ResetAll())
}

func TestFileBackend_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(filepath.Join(dir, "progress.json"))
	require.NoError(t, b.Write([]byte(`{}`)))
	require.NoError(t, b.Write([]byte(`{"session_id":"x"}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "progress.json", entries[0].Name())

	data, err := b.Read()
	require.NoError(t, err)
	assert.Equal(t, `{"session_id":"x"}`, string(data))
}

func TestSummary(t *testing.T) {
	tr := newTestTracker(t, &MemoryBackend{})
	assert.False(t, tr.Summary().HasProgress)

	require.NoError(t, tr.RecordAnswer("ex1", "sc1", "q1", "A", true, 2))
	tr.ScenarioProgress("ex1", "sc1").Questions["q2"] = &QuestionProgress{QuestionID: "q2"}
	require.NoError(t, tr.RecordAnswer("ex2", "sc1", "q1", "A", false, 0.5))
	require.NoError(t, tr.MarkScenarioComplete("ex2", "sc1"))
	tr.ExerciseProgress("ex3")

	sum := tr.Summary()
	assert.True(t, sum.HasProgress)
	assert.Equal(t, "session-1", sum.SessionID)
	assert.InDelta(t, 2.5, sum.TotalScore, 1e-9)
	assert.InDelta(t, 200.0/3, sum.CompletionPct, 1e-9)

	assert.Equal(t, StatusInProgress, sum.Exercises["ex1"].Status)
	assert.InDelta(t, 50, sum.Exercises["ex1"].CompletionPct, 1e-9)
	assert.Equal(t, StatusCompleted, sum.Exercises["ex2"].Status)
	assert.Equal(t, StatusNotStarted, sum.Exercises["ex3"].Status)
	assert.Zero(t, sum.Exercises["ex3"].CompletionPct)
}
