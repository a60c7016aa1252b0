package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// Each test gets its own file so shared-cache in-memory databases do not
	// leak rows between tests.
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.AttemptRepo().Append(ctx, &Attempt{SessionID: "s1", QuestionID: "q1", Verdict: "correct"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.AttemptRepo().Recent(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d attempts after reopen, want 1", len(got))
	}
}

func TestAttemptAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	// No attempts yet.
	got, err := repo.Recent(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent (empty): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no attempts, got %d", len(got))
	}

	base := time.Now().Truncate(time.Millisecond)
	for i, qid := range []string{"q1", "q2", "q3"} {
		a := &Attempt{
			SessionID:  "s1",
			ExerciseID: "ex1",
			ScenarioID: "sc1",
			QuestionID: qid,
			Kind:       "multiple_choice",
			Verdict:    "correct",
			Score:      2,
			MaxScore:   2,
			Answer:     []byte(`"A"`),
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Append(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if a.ID == 0 {
			t.Errorf("append %d: expected id to be set", i)
		}
	}

	got, err = repo.Recent(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d attempts, want 2", len(got))
	}
	if got[0].QuestionID != "q3" || got[1].QuestionID != "q2" {
		t.Errorf("order = %s,%s, want q3,q2", got[0].QuestionID, got[1].QuestionID)
	}
	if string(got[0].Answer) != `"A"` {
		t.Errorf("answer = %s, want \"A\"", got[0].Answer)
	}
	if !got[0].Timestamp.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, base.Add(2*time.Minute))
	}
}

func TestAttemptFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	attempts := []Attempt{
		{SessionID: "s1", QuestionID: "q1", Verdict: "correct", Timestamp: base},
		{SessionID: "s2", QuestionID: "q1", Verdict: "correct", Timestamp: base.Add(time.Hour)},
		{SessionID: "s1", QuestionID: "q2", Verdict: "partial", Timestamp: base.Add(2 * time.Hour)},
	}
	for i := range attempts {
		if err := repo.Append(ctx, &attempts[i]); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"all", QueryOpts{}, 3},
		{"session", QueryOpts{SessionID: "s1"}, 2},
		{"from", QueryOpts{From: base.Add(30 * time.Minute)}, 2},
		{"to", QueryOpts{To: base.Add(30 * time.Minute)}, 1},
		{"session and from", QueryOpts{SessionID: "s1", From: base.Add(time.Minute)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Recent(ctx, tt.opts)
			if err != nil {
				t.Fatalf("recent: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d attempts, want %d", len(got), tt.want)
			}
		})
	}
}

func TestAttemptStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	st, err := repo.Stats(ctx, "")
	if err != nil {
		t.Fatalf("stats (empty): %v", err)
	}
	if st.Total != 0 || st.Score != 0 {
		t.Errorf("empty stats = %+v", st)
	}

	for _, a := range []Attempt{
		{SessionID: "s1", Verdict: "correct", Score: 2, MaxScore: 2},
		{SessionID: "s1", Verdict: "partial", Score: 1.5, MaxScore: 3},
		{SessionID: "s1", Verdict: "incorrect", Score: 0, MaxScore: 2},
		{SessionID: "s2", Verdict: "correct", Score: 4, MaxScore: 4},
	} {
		a := a
		if err := repo.Append(ctx, &a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	st, err = repo.Stats(ctx, "s1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := AttemptStats{Total: 3, Correct: 1, Partial: 1, Incorrect: 1, Score: 3.5, MaxScore: 7}
	if st != want {
		t.Errorf("stats = %+v, want %+v", st, want)
	}

	all, err := repo.Stats(ctx, "")
	if err != nil {
		t.Fatalf("stats all: %v", err)
	}
	if all.Total != 4 || all.Correct != 2 {
		t.Errorf("all stats = %+v", all)
	}
}
