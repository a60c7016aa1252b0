package question

import (
	"reflect"
	"testing"
)

func TestParseRanking(t *testing.T) {
	tests := []struct {
		input   string
		want    RankingAnswer
		wantErr bool
	}{
		{"3,1,2", RankingAnswer{3, 1, 2}, false},
		{"3, 1 2", RankingAnswer{3, 1, 2}, false},
		{" 2 ", RankingAnswer{2}, false},
		{"", nil, true},
		{"1,x", nil, true},
		{"0,1", nil, true},
		{"1,4", nil, true},
		{"1,1", nil, true},
	}

	for _, tc := range tests {
		got, err := ParseRanking(tc.input, 3)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseRanking(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseRanking(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseSelection(t *testing.T) {
	opts := []Option{{"A", "a"}, {"B", "b"}, {"C", "c"}}

	got, err := ParseSelection("a, c", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, SelectionAnswer{"A", "C"}) {
		t.Errorf("got %v, want [A C]", got)
	}

	if _, err := ParseSelection("A,Z", opts); err == nil {
		t.Error("expected error for unknown key")
	}

	got, err = ParseSelection("", opts)
	if err != nil || len(got) != 0 {
		t.Errorf("empty input: got %v, %v", got, err)
	}
}
