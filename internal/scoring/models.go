package scoring

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TestDefinition is the read-only description of an assessment: its sections,
// the categories and questions inside them, and how the report is shaped.
// It is shared by every respondent of the test and must never be mutated.
type TestDefinition struct {
	TestID       string       `json:"testId"`
	TestName     string       `json:"testName"`
	Description  string       `json:"description,omitempty"`
	Demographics Demographics `json:"demographics"`
	Sections     []Section    `json:"sections"`
	Reporting    Reporting    `json:"reporting"`
}

type Demographics struct {
	Fields []DemographicField `json:"fields"`
}

type DemographicField struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Type       string `json:"type,omitempty"`
	Required   bool   `json:"required,omitempty"`
	Validation string `json:"validation,omitempty"` // email|phone
}

type Section struct {
	SectionID    string     `json:"sectionId"`
	Title        string     `json:"title"`
	Instructions string     `json:"instructions,omitempty"`
	Categories   []Category `json:"categories"`
}

// Category groups questions that are scored together. Key is unique across
// the whole definition and is also the key of the category's answers.
type Category struct {
	Key       string      `json:"key"`
	Title     string      `json:"title"`
	Questions []string    `json:"questions"`
	Scoring   ScoringSpec `json:"-"`
}

type Reporting struct {
	Sections          []ReportSection    `json:"sections"`
	CompletionMessage *CompletionMessage `json:"completionMessage,omitempty"`
}

// ReportSection configures how one scored section is presented. It is kept
// apart from Section so that the report shape can differ from the grouping
// of questions.
type ReportSection struct {
	SectionID   string      `json:"sectionId"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Guidance    string      `json:"guidance,omitempty"`
	Display     DisplayMode `json:"display"`
}

type CompletionMessage struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Answers maps a category key to one slot per question. A nil slot is an
// unanswered question and counts as 0.
type Answers map[string][]*int

// Respondent holds the free-form demographic answers (name, email, grade...).
type Respondent map[string]string

// ClusterDef names a subset of a category's questions by 0-based index.
type ClusterDef struct {
	Name    string `json:"name"`
	Indices []int  `json:"indices"`
}

type CategoryScore struct {
	Title    string         `json:"title"`
	Key      string         `json:"key"`
	Method   Method         `json:"method"`
	Answers  []*int         `json:"answers"`
	Total    float64        `json:"total"`
	Count    int            `json:"count"`
	Avg      float64        `json:"avg"`
	Clusters []ClusterScore `json:"clusters,omitempty"`
}

type ClusterScore struct {
	Name    string  `json:"name"`
	Indices []int   `json:"indices"`
	Total   float64 `json:"total"`
	Avg     float64 `json:"avg"`
	Count   int     `json:"count"`
}

// SectionScores holds a section's category scores in declaration order.
type SectionScores struct {
	Categories *orderedmap.OrderedMap[string, CategoryScore] `json:"categories"`
}

// List returns the category scores in declaration order.
func (s SectionScores) List() []CategoryScore {
	if s.Categories == nil {
		return nil
	}
	out := make([]CategoryScore, 0, s.Categories.Len())
	for p := s.Categories.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// Primary returns the first declared category, which is the one expected to
// carry the cluster breakdown for cluster-based display modes.
func (s SectionScores) Primary() (CategoryScore, bool) {
	if s.Categories == nil {
		return CategoryScore{}, false
	}
	p := s.Categories.Oldest()
	if p == nil {
		return CategoryScore{}, false
	}
	return p.Value, true
}

// Scores maps section ids to their scores in definition order.
type Scores = orderedmap.OrderedMap[string, SectionScores]

func (c Category) MarshalJSON() ([]byte, error) {
	type alias Category
	return json.Marshal(struct {
		alias
		Scoring scoringWire `json:"scoring"`
	}{alias(c), wireOf(c.Scoring)})
}

func (c *Category) UnmarshalJSON(b []byte) error {
	type alias Category
	var raw struct {
		alias
		Scoring *scoringWire `json:"scoring"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	*c = Category(raw.alias)
	c.Scoring = raw.Scoring.spec()
	return nil
}
