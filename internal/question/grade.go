package question

import (
	"fmt"
	"math"
	"strings"
)

const (
	// bonusStep is the per-keyword bonus multiplier for free-text answers.
	bonusStep = 0.1
	// bonusCap caps the total free-text bonus multiplier.
	bonusCap = 0.3

	maxMissingListed = 4
)

// verdict is the variant-level grading result before feedback text is
// composed with the question's authored feedback strings.
type verdict struct {
	correct bool
	score   float64
	detail  string
	found   []string
	missing []string
	bonus   []string
}

// Grade scores an answer against a question. It is pure and total: an answer
// of the wrong shape, or a question without a body, scores zero.
func Grade(q *Question, answer Answer) Result {
	if q == nil || q.Body == nil {
		return Result{Feedback: "This question cannot be graded."}
	}

	var v verdict
	if answer == nil || answer.answerKind() != q.Body.Kind() {
		v = verdict{detail: "Your answer does not match this question's format."}
	} else {
		v = q.Body.grade(float64(q.Points), answer)
	}

	return Result{
		Correct:  v.correct,
		Score:    v.score,
		Feedback: composeFeedback(q.Feedback, v),
		Found:    v.found,
		Missing:  v.missing,
		Bonus:    v.bonus,
	}
}

// composeFeedback joins the authored outcome text with variant detail.
func composeFeedback(fb Feedback, v verdict) string {
	var base string
	switch {
	case v.correct:
		base = fallback(fb.Correct, "Correct!")
	case v.score > 0:
		base = fallback(fb.Partial, "Partially correct.")
	default:
		base = fallback(fb.Incorrect, "Not quite.")
	}
	if v.detail == "" {
		return base
	}
	return base + "\n\n" + v.detail
}

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func (m *MultipleChoice) grade(points float64, answer Answer) verdict {
	key := strings.TrimSpace(string(answer.(ChoiceAnswer)))
	if strings.EqualFold(key, strings.TrimSpace(m.Correct)) {
		return verdict{correct: true, score: points}
	}
	return verdict{detail: fmt.Sprintf("The correct option was %s.", strings.ToUpper(m.Correct))}
}

func (r *Ranking) grade(points float64, answer Answer) verdict {
	got := answer.(RankingAnswer)
	total := len(r.CorrectOrder)
	if total == 0 {
		return verdict{}
	}

	matches := 0
	for i := 0; i < len(got) && i < total; i++ {
		if got[i] == r.CorrectOrder[i] {
			matches++
		}
	}

	if matches == total && len(got) == total {
		return verdict{correct: true, score: points}
	}

	detail := fmt.Sprintf("You placed %d of %d items in the correct position.", matches, total)
	if matches == 0 {
		return verdict{detail: detail}
	}
	return verdict{
		score:  points * float64(matches) / float64(total),
		detail: detail,
	}
}

func (f *FreeText) grade(points float64, answer Answer) verdict {
	text := string(answer.(TextAnswer))
	if len(f.Required) == 0 {
		return verdict{correct: true, score: points}
	}

	found, missing := matchKeywords(text, f.Required)
	bonus, _ := matchKeywords(text, f.Bonus)

	total := len(f.Required)
	switch {
	case len(found) == total:
		// The bonus multiplier is clamped back to full points; bonus
		// keywords only ever change the feedback.
		mult := 1 + math.Min(float64(len(bonus))*bonusStep, bonusCap)
		v := verdict{
			correct: true,
			score:   math.Min(points*mult, points),
			found:   found,
			bonus:   bonus,
		}
		if len(bonus) > 0 {
			v.detail = "Bonus: you also covered " + strings.Join(bonus, ", ") + "."
		}
		return v

	case len(found) >= f.MinKeywords:
		return verdict{
			score: points * float64(len(found)) / float64(total),
			detail: fmt.Sprintf("You covered %d of %d key concepts.\n\nConsider also discussing: %s",
				len(found), total, strings.Join(limit(missing, maxMissingListed), ", ")),
			found:   found,
			missing: missing,
			bonus:   bonus,
		}

	default:
		return verdict{
			detail:  "Key concepts to include: " + strings.Join(limit(missing, maxMissingListed), ", "),
			found:   found,
			missing: missing,
			bonus:   bonus,
		}
	}
}

func (c *Checklist) grade(points float64, answer Answer) verdict {
	selected := keySet(answer.(SelectionAnswer))
	correct := keySet(c.Correct)

	if setEqual(selected, correct) {
		return verdict{correct: true, score: points}
	}

	hits := 0
	for k := range selected {
		if _, ok := correct[k]; ok {
			hits++
		}
	}
	misses := len(selected) - hits
	detail := fmt.Sprintf("You selected %d of %d correct items", hits, len(correct))
	if misses > 0 {
		detail += fmt.Sprintf(" and %d incorrect", misses)
	}
	detail += "."

	v := verdict{detail: detail}
	switch {
	case misses == 0 && hits > 0:
		v.score = points * float64(hits) / float64(len(correct))
	case hits > misses:
		v.score = math.Max(0, float64(hits-misses)/float64(len(correct))) * points
	}
	return v
}

// matchKeywords splits keywords into those found in text and those missing,
// preserving authored order. Matching is case-insensitive substring search.
func matchKeywords(text string, keywords []string) (found, missing []string) {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return found, missing
}

// keySet normalizes option keys for case-insensitive set comparison.
func keySet(keys []string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		k = strings.ToUpper(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		m[k] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func limit(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
