package question

import (
	"fmt"
	"strings"
)

// Validate reports structural problems with a question definition.
// Returns a combined error describing all problems found, or nil if valid.
func (q *Question) Validate() error {
	problems := q.Problems()
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("question %q is invalid:\n  %s", q.ID, strings.Join(problems, "\n  "))
}

// Problems lists every structural problem with a question definition.
func (q *Question) Problems() []string {
	var errs []string

	if strings.TrimSpace(q.ID) == "" {
		errs = append(errs, "id must not be empty")
	}
	if strings.TrimSpace(q.Prompt) == "" {
		errs = append(errs, "prompt must not be empty")
	}
	if q.Points <= 0 {
		errs = append(errs, fmt.Sprintf("points must be > 0, got %d", q.Points))
	}
	if q.Body == nil {
		errs = append(errs, "question has no body")
		return errs
	}

	return append(errs, q.Body.validate()...)
}

func (m *MultipleChoice) validate() []string {
	var errs []string
	keys, dupes := optionKeys(m.Options)
	errs = append(errs, dupes...)
	if len(m.Options) < 2 {
		errs = append(errs, fmt.Sprintf("multiple choice needs at least 2 options, got %d", len(m.Options)))
	}
	if _, ok := keys[strings.ToUpper(strings.TrimSpace(m.Correct))]; !ok {
		errs = append(errs, fmt.Sprintf("correct option %q is not among the options", m.Correct))
	}
	return errs
}

func (r *Ranking) validate() []string {
	var errs []string
	if len(r.Items) < 2 {
		errs = append(errs, fmt.Sprintf("ranking needs at least 2 items, got %d", len(r.Items)))
	}
	if len(r.CorrectOrder) == 0 {
		errs = append(errs, "ranking correct order must not be empty")
	}
	if len(r.CorrectOrder) > len(r.Items) {
		errs = append(errs, fmt.Sprintf("ranking correct order has %d entries but only %d items", len(r.CorrectOrder), len(r.Items)))
	}
	seen := make(map[int]bool, len(r.CorrectOrder))
	for _, n := range r.CorrectOrder {
		if n < 1 || n > len(r.Items) {
			errs = append(errs, fmt.Sprintf("ranking references item %d outside 1..%d", n, len(r.Items)))
			continue
		}
		if seen[n] {
			errs = append(errs, fmt.Sprintf("ranking lists item %d more than once", n))
		}
		seen[n] = true
	}
	return errs
}

func (f *FreeText) validate() []string {
	var errs []string
	for _, kw := range append(append([]string{}, f.Required...), f.Bonus...) {
		if strings.TrimSpace(kw) == "" {
			errs = append(errs, "keywords must not be empty")
			break
		}
	}
	if f.MinKeywords < 0 {
		errs = append(errs, fmt.Sprintf("min keywords must be >= 0, got %d", f.MinKeywords))
	}
	if f.MinKeywords > len(f.Required) {
		errs = append(errs, fmt.Sprintf("min keywords %d exceeds %d required keywords", f.MinKeywords, len(f.Required)))
	}
	return errs
}

func (c *Checklist) validate() []string {
	var errs []string
	keys, dupes := optionKeys(c.Options)
	errs = append(errs, dupes...)
	if len(c.Correct) == 0 {
		errs = append(errs, "checklist needs at least one correct option")
	}
	for _, k := range c.Correct {
		if _, ok := keys[strings.ToUpper(strings.TrimSpace(k))]; !ok {
			errs = append(errs, fmt.Sprintf("correct option %q is not among the options", k))
		}
	}
	return errs
}

// optionKeys indexes option keys case-insensitively and reports duplicates.
func optionKeys(opts []Option) (map[string]bool, []string) {
	var errs []string
	keys := make(map[string]bool, len(opts))
	for _, o := range opts {
		k := strings.ToUpper(strings.TrimSpace(o.Key))
		if k == "" {
			errs = append(errs, "option key must not be empty")
			continue
		}
		if keys[k] {
			errs = append(errs, fmt.Sprintf("duplicate option key %q", o.Key))
		}
		keys[k] = true
	}
	return keys, errs
}
