package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/cyberlab/internal/question"
)

// SupportedMajor is the content pack format major version this build reads.
const SupportedMajor = "v1"

//go:embed pack.schema.json
var packSchemaJSON []byte

const packSchemaURL = "schema://content-pack.json"

var (
	packSchemaOnce sync.Once
	packSchema     *jsonschema.Schema
	packSchemaErr  error
)

func compiledPackSchema() (*jsonschema.Schema, error) {
	packSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(packSchemaJSON))
		if err != nil {
			packSchemaErr = fmt.Errorf("parse pack schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(packSchemaURL, doc); err != nil {
			packSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		packSchema, packSchemaErr = c.Compile(packSchemaURL)
	})
	return packSchema, packSchemaErr
}

// Pack is the on-disk form of a content pack.
type Pack struct {
	FormatVersion string         `json:"format_version"`
	Title         string         `json:"title,omitempty"`
	Exercises     []packExercise `json:"exercises"`
}

type packExercise struct {
	ID            string         `json:"id"`
	Number        int            `json:"number"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	EstimatedTime string         `json:"estimated_time,omitempty"`
	Objectives    []string       `json:"objectives,omitempty"`
	Scenarios     []packScenario `json:"scenarios"`
}

type packScenario struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Questions   []packQuestion `json:"questions"`
}

type packQuestion struct {
	ID          string        `json:"id"`
	Kind        question.Kind `json:"kind"`
	Prompt      string        `json:"prompt"`
	Hint        string        `json:"hint,omitempty"`
	ModelAnswer string        `json:"model_answer,omitempty"`
	Points      int           `json:"points"`
	Feedback    *packFeedback `json:"feedback,omitempty"`

	Options        []packOption `json:"options,omitempty"`
	CorrectOption  string       `json:"correct_option,omitempty"`
	CorrectOptions []string     `json:"correct_options,omitempty"`

	Items        []string `json:"items,omitempty"`
	CorrectOrder []int    `json:"correct_order,omitempty"`

	RequiredKeywords []string `json:"required_keywords,omitempty"`
	BonusKeywords    []string `json:"bonus_keywords,omitempty"`
	MinKeywords      int      `json:"min_keywords,omitempty"`
}

type packFeedback struct {
	Correct   string `json:"correct,omitempty"`
	Partial   string `json:"partial,omitempty"`
	Incorrect string `json:"incorrect,omitempty"`
}

type packOption struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// LoadFile reads and validates a content pack from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content pack: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content pack %s: %w", path, err)
	}
	return cat, nil
}

// Parse validates a content pack against its schema and format version,
// converts it to a Catalog and runs Catalog.Validate.
func Parse(data []byte) (*Catalog, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := compiledPackSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var p Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := checkFormatVersion(p.FormatVersion); err != nil {
		return nil, err
	}

	cat := NewCatalog()
	for _, pe := range p.Exercises {
		cat.Register(pe.toExercise())
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func checkFormatVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("format_version %q is not a valid semantic version", v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return fmt.Errorf("format_version %s is not supported (want %s.x.y)", v, SupportedMajor)
	}
	return nil
}

func (pe packExercise) toExercise() *Exercise {
	ex := &Exercise{
		ID:            pe.ID,
		Number:        pe.Number,
		Title:         pe.Title,
		Description:   pe.Description,
		EstimatedTime: pe.EstimatedTime,
		Objectives:    pe.Objectives,
	}
	for _, ps := range pe.Scenarios {
		sc := &Scenario{ID: ps.ID, Title: ps.Title, Description: ps.Description}
		for _, pq := range ps.Questions {
			sc.Questions = append(sc.Questions, pq.toQuestion())
		}
		ex.Scenarios = append(ex.Scenarios, sc)
	}
	return ex
}

func (pq packQuestion) toQuestion() *question.Question {
	qn := &question.Question{
		ID:          pq.ID,
		Prompt:      pq.Prompt,
		Hint:        pq.Hint,
		ModelAnswer: pq.ModelAnswer,
		Points:      pq.Points,
	}
	if pq.Feedback != nil {
		qn.Feedback = question.Feedback{
			Correct:   pq.Feedback.Correct,
			Partial:   pq.Feedback.Partial,
			Incorrect: pq.Feedback.Incorrect,
		}
	}

	switch pq.Kind {
	case question.KindMultipleChoice:
		qn.Body = &question.MultipleChoice{Options: toOptions(pq.Options), Correct: pq.CorrectOption}
	case question.KindRanking:
		qn.Body = &question.Ranking{Items: pq.Items, CorrectOrder: pq.CorrectOrder}
	case question.KindFreeText:
		qn.Body = &question.FreeText{
			Required:    pq.RequiredKeywords,
			Bonus:       pq.BonusKeywords,
			MinKeywords: pq.MinKeywords,
		}
	case question.KindChecklist:
		qn.Body = &question.Checklist{Options: toOptions(pq.Options), Correct: pq.CorrectOptions}
	}
	return qn
}

func toOptions(in []packOption) []question.Option {
	out := make([]question.Option, len(in))
	for i, o := range in {
		out[i] = question.Option{Key: o.Key, Text: o.Text}
	}
	return out
}

// Export converts a catalog back to its pack form, for authoring packs
// starting from the built-in content.
func Export(c *Catalog, version string) Pack {
	p := Pack{FormatVersion: version}
	for _, ex := range c.Exercises() {
		pe := packExercise{
			ID:            ex.ID,
			Number:        ex.Number,
			Title:         ex.Title,
			Description:   ex.Description,
			EstimatedTime: ex.EstimatedTime,
			Objectives:    ex.Objectives,
		}
		for _, sc := range ex.Scenarios {
			ps := packScenario{ID: sc.ID, Title: sc.Title, Description: sc.Description}
			for _, qn := range sc.Questions {
				ps.Questions = append(ps.Questions, fromQuestion(qn))
			}
			pe.Scenarios = append(pe.Scenarios, ps)
		}
		p.Exercises = append(p.Exercises, pe)
	}
	return p
}

func fromQuestion(qn *question.Question) packQuestion {
	pq := packQuestion{
		ID:          qn.ID,
		Kind:        qn.Kind(),
		Prompt:      qn.Prompt,
		Hint:        qn.Hint,
		ModelAnswer: qn.ModelAnswer,
		Points:      qn.Points,
	}
	if qn.Feedback != (question.Feedback{}) {
		pq.Feedback = &packFeedback{
			Correct:   qn.Feedback.Correct,
			Partial:   qn.Feedback.Partial,
			Incorrect: qn.Feedback.Incorrect,
		}
	}

	switch b := qn.Body.(type) {
	case *question.MultipleChoice:
		pq.Options = fromOptions(b.Options)
		pq.CorrectOption = b.Correct
	case *question.Ranking:
		pq.Items = b.Items
		pq.CorrectOrder = b.CorrectOrder
	case *question.FreeText:
		pq.RequiredKeywords = b.Required
		pq.BonusKeywords = b.Bonus
		pq.MinKeywords = b.MinKeywords
	case *question.Checklist:
		pq.Options = fromOptions(b.Options)
		pq.CorrectOptions = b.Correct
	}
	return pq
}

func fromOptions(in []question.Option) []packOption {
	out := make([]packOption, len(in))
	for i, o := range in {
		out[i] = packOption{Key: o.Key, Text: o.Text}
	}
	return out
}
