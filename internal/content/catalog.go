package content

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog holds the exercises available to the learner. It is built once at
// startup and read-only afterwards.
type Catalog struct {
	exercises []*Exercise
	byID      map[string]*Exercise
}

// NewCatalog returns a catalog holding exs.
func NewCatalog(exs ...*Exercise) *Catalog {
	c := &Catalog{byID: make(map[string]*Exercise, len(exs))}
	for _, ex := range exs {
		c.Register(ex)
	}
	return c
}

// Register adds an exercise. Duplicate ids are kept so Validate can report
// them; lookups resolve to the first one registered.
func (c *Catalog) Register(ex *Exercise) {
	c.exercises = append(c.exercises, ex)
	if _, ok := c.byID[ex.ID]; !ok {
		c.byID[ex.ID] = ex
	}
}

// Exercises returns every exercise ordered by sequence number.
func (c *Catalog) Exercises() []*Exercise {
	out := make([]*Exercise, len(c.exercises))
	copy(out, c.exercises)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out
}

// Exercise returns the exercise with the given id.
func (c *Catalog) Exercise(id string) (*Exercise, bool) {
	ex, ok := c.byID[id]
	return ex, ok
}

// Len returns the number of registered exercises.
func (c *Catalog) Len() int {
	return len(c.exercises)
}

// ValidationError lists every problem found in a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("content validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Validate performs all structural checks on the catalog.
// Returns a *ValidationError describing all problems found, or nil if valid.
func (c *Catalog) Validate() error {
	var errs []string

	if len(c.exercises) == 0 {
		errs = append(errs, "catalog has no exercises")
	}

	ids := make(map[string]bool, len(c.exercises))
	numbers := make(map[int]string, len(c.exercises))
	for _, ex := range c.exercises {
		if ex.ID == "" {
			errs = append(errs, fmt.Sprintf("exercise %d has an empty id", ex.Number))
		} else if ids[ex.ID] {
			errs = append(errs, fmt.Sprintf("duplicate exercise ID: %q", ex.ID))
		}
		ids[ex.ID] = true

		if other, ok := numbers[ex.Number]; ok {
			errs = append(errs, fmt.Sprintf("exercises %q and %q share number %d", other, ex.ID, ex.Number))
		} else {
			numbers[ex.Number] = ex.ID
		}
		if strings.TrimSpace(ex.Title) == "" {
			errs = append(errs, fmt.Sprintf("exercise %q has no title", ex.ID))
		}

		errs = append(errs, validateScenarios(ex)...)
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

func validateScenarios(ex *Exercise) []string {
	var errs []string
	if len(ex.Scenarios) == 0 {
		errs = append(errs, fmt.Sprintf("exercise %q has no scenarios", ex.ID))
	}

	ids := make(map[string]bool, len(ex.Scenarios))
	for _, sc := range ex.Scenarios {
		if sc.ID == "" {
			errs = append(errs, fmt.Sprintf("exercise %q has a scenario with an empty id", ex.ID))
		} else if ids[sc.ID] {
			errs = append(errs, fmt.Sprintf("exercise %q: duplicate scenario ID: %q", ex.ID, sc.ID))
		}
		ids[sc.ID] = true

		if len(sc.Questions) == 0 {
			errs = append(errs, fmt.Sprintf("scenario %q has no questions", sc.ID))
		}

		qids := make(map[string]bool, len(sc.Questions))
		for _, q := range sc.Questions {
			if qids[q.ID] {
				errs = append(errs, fmt.Sprintf("scenario %q: duplicate question ID: %q", sc.ID, q.ID))
			}
			qids[q.ID] = true
			for _, p := range q.Problems() {
				errs = append(errs, fmt.Sprintf("question %q: %s", q.ID, p))
			}
		}
	}
	return errs
}
