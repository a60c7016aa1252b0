package question

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRanking parses comma- or space-separated item numbers, e.g. "3, 1 2".
// Every number must refer to one of itemCount items and appear once.
func ParseRanking(input string, itemCount int) (RankingAnswer, error) {
	fields := splitList(input)
	if len(fields) == 0 {
		return nil, fmt.Errorf("enter item numbers separated by commas")
	}

	seen := make(map[int]bool, len(fields))
	out := make(RankingAnswer, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid item number %q", f)
		}
		if n < 1 || n > itemCount {
			return nil, fmt.Errorf("item %d is outside 1..%d", n, itemCount)
		}
		if seen[n] {
			return nil, fmt.Errorf("item %d listed more than once", n)
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}

// ParseSelection parses comma- or space-separated option keys, e.g. "a, C".
// Keys are upper-cased; unknown keys are rejected when options is non-empty.
func ParseSelection(input string, options []Option) (SelectionAnswer, error) {
	valid, _ := optionKeys(options)
	var out SelectionAnswer
	for _, f := range splitList(input) {
		k := strings.ToUpper(f)
		if len(valid) > 0 && !valid[k] {
			return nil, fmt.Errorf("unknown option %q", f)
		}
		out = append(out, k)
	}
	return out, nil
}

// splitList splits on commas and whitespace, dropping empty fields.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})
}
