package schema

import (
	"fmt"
	"strings"

	"github.com/courtneynewtocode/career-compass/internal/scoring"
)

// ValidationError lists every problem found in one pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// ValidateDefinition runs the structural checks a definition must pass before
// it is served to respondents. The scoring engine assumes they hold.
func ValidateDefinition(def *scoring.TestDefinition) error {
	if def == nil {
		return &ValidationError{Problems: []string{"definition is required"}}
	}
	ve := &ValidationError{}
	if def.TestID == "" {
		ve.add("testId is required")
	}
	if def.TestName == "" {
		ve.add("testName is required")
	}
	if len(def.Sections) == 0 {
		ve.add("sections array is required")
	}

	keys := map[string]bool{}
	sections := map[string]scoring.Section{}
	for i, s := range def.Sections {
		if s.SectionID == "" {
			ve.add("section %d: sectionId is required", i)
		} else if _, dup := sections[s.SectionID]; dup {
			ve.add("duplicate sectionId: %s", s.SectionID)
		}
		sections[s.SectionID] = s
		if len(s.Categories) == 0 {
			ve.add("section %d: categories array is required", i)
		}
		for j, c := range s.Categories {
			validateCategory(ve, i, j, c, keys)
		}
	}

	if len(def.Reporting.Sections) == 0 {
		ve.add("reporting configuration is required")
	}
	for _, rs := range def.Reporting.Sections {
		if !rs.Display.Known() {
			ve.add("reporting %s: unknown display %q", rs.SectionID, rs.Display)
		}
		if !rs.Display.ClusterSourced() {
			continue
		}
		s, ok := sections[rs.SectionID]
		if !ok || len(s.Categories) == 0 {
			continue
		}
		if _, ok := s.Categories[0].Scoring.(scoring.Clustered); !ok {
			ve.add("reporting %s: display %q needs the section's first category to use cluster scoring",
				rs.SectionID, rs.Display)
		}
		if len(s.Categories) > 1 {
			ve.add("reporting %s: display %q reads only the first of %d categories",
				rs.SectionID, rs.Display, len(s.Categories))
		}
	}
	return ve.orNil()
}

func validateCategory(ve *ValidationError, i, j int, c scoring.Category, keys map[string]bool) {
	where := fmt.Sprintf("section %d, category %d", i, j)
	if c.Key == "" {
		ve.add("%s: key is required", where)
	} else if keys[c.Key] {
		ve.add("%s: duplicate category key %s", where, c.Key)
	}
	keys[c.Key] = true
	if c.Questions == nil {
		ve.add("%s: questions array is required", where)
	}

	switch s := c.Scoring.(type) {
	case scoring.Unrecognized:
		ve.add("invalid scoring method: %s", s.Name)
	case scoring.Weighted:
		if s.Weights == nil {
			ve.add("%s: weighted scoring requires weights array", where)
		} else if len(s.Weights) != len(c.Questions) {
			ve.add("%s: weights array must match questions length", where)
		}
	case scoring.Clustered:
		if s.Clusters == nil {
			ve.add("%s: cluster scoring requires clusterIndices", where)
		}
		for _, cl := range s.Clusters {
			for _, idx := range cl.Indices {
				if idx < 0 || idx >= len(c.Questions) {
					ve.add("%s: cluster %s index %d out of range", where, cl.Name, idx)
				}
			}
		}
	}
}
