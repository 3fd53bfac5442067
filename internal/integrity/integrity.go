// Package integrity flags low-effort answer sets: straight-lining, one
// dominant rating, or a short pattern repeated through the questionnaire.
// Verdicts are advisory; callers decide whether to flag or reject.
package integrity

import (
	"math"
	"slices"
	"sort"

	"github.com/courtneynewtocode/career-compass/internal/scoring"
)

type Reason string

const (
	ReasonInsufficientData Reason = "insufficient_data"
	ReasonAllSame          Reason = "all_same_answer"
	ReasonExcessiveSame    Reason = "excessive_same_answer"
	ReasonRepeatingPattern Reason = "repeating_pattern"
	ReasonGenuine          Reason = "genuine_responses"
)

const (
	minAnswers        = 10
	minPatternAnswers = 20
	dominantShare     = 0.95
	maxPatternLen     = 10
	minRepetitions    = 5
	minConsistency    = 0.7
)

type Verdict struct {
	Valid   bool     `json:"valid"`
	Reason  Reason   `json:"reason"`
	Details *Details `json:"details,omitempty"`
}

// Details carries the evidence behind a verdict. Which fields are set
// depends on Reason.
type Details struct {
	Value        *int        `json:"value,omitempty"`
	Count        int         `json:"count,omitempty"`
	Total        int         `json:"total,omitempty"`
	Percentage   int         `json:"percentage,omitempty"`
	Pattern      []int       `json:"pattern,omitempty"`
	Repetitions  int         `json:"repetitions,omitempty"`
	Consistency  int         `json:"consistency,omitempty"`
	Distinct     int         `json:"distinct,omitempty"`
	Distribution map[int]int `json:"distribution,omitempty"`
}

// ValidateAnswerPatterns checks every answered slot. Categories are visited
// in sorted key order.
func ValidateAnswerPatterns(answers scoring.Answers) Verdict {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Check(flatten(answers, keys))
}

// ValidateAssessment checks answers in the category order of def. Answer keys
// the definition does not declare are appended in sorted order.
func ValidateAssessment(def *scoring.TestDefinition, answers scoring.Answers) Verdict {
	if def == nil {
		return ValidateAnswerPatterns(answers)
	}
	seen := map[string]bool{}
	var keys []string
	for _, s := range def.Sections {
		for _, c := range s.Categories {
			if !seen[c.Key] {
				seen[c.Key] = true
				keys = append(keys, c.Key)
			}
		}
	}
	var extra []string
	for k := range answers {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return Check(flatten(answers, append(keys, extra...)))
}

// Check runs the pattern checks over an already flattened answer list.
func Check(values []int) Verdict {
	total := len(values)
	if total < minAnswers {
		return Verdict{Valid: true, Reason: ReasonInsufficientData, Details: &Details{Total: total}}
	}

	if allSame(values) {
		v := values[0]
		return Verdict{Reason: ReasonAllSame, Details: &Details{Value: &v, Count: total}}
	}

	freq := map[int]int{}
	for _, v := range values {
		freq[v]++
	}
	if v, n := mostFrequent(freq); float64(n)/float64(total) > dominantShare {
		return Verdict{Reason: ReasonExcessiveSame, Details: &Details{
			Value:      &v,
			Count:      n,
			Total:      total,
			Percentage: percent(n, total),
		}}
	}

	if total >= minPatternAnswers {
		if d, ok := repeatingPattern(values); ok {
			return Verdict{Reason: ReasonRepeatingPattern, Details: d}
		}
	}

	return Verdict{Valid: true, Reason: ReasonGenuine, Details: &Details{
		Total:        total,
		Distinct:     len(freq),
		Distribution: freq,
	}}
}

// repeatingPattern tries pattern lengths 2..min(10, total/4) and stops at the
// first one whose non-overlapping windows mostly repeat the opening values.
func repeatingPattern(values []int) (*Details, bool) {
	total := len(values)
	maxLen := min(maxPatternLen, total/4)
	for l := 2; l <= maxLen; l++ {
		pattern := values[:l]
		matches, windows := 0, 0
		for i := 0; i+l <= total; i += l {
			windows++
			if slices.Equal(values[i:i+l], pattern) {
				matches++
			}
		}
		if windows == 0 {
			continue
		}
		ratio := float64(matches) / float64(windows)
		if matches >= minRepetitions && ratio >= minConsistency {
			return &Details{
				Pattern:     slices.Clone(pattern),
				Repetitions: matches,
				Consistency: int(math.Round(ratio * 100)),
			}, true
		}
	}
	return nil, false
}

func flatten(answers scoring.Answers, keys []string) []int {
	var out []int
	for _, k := range keys {
		for _, a := range answers[k] {
			if a != nil {
				out = append(out, *a)
			}
		}
	}
	return out
}

func allSame(values []int) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// mostFrequent breaks ties by the smaller value so the result is stable.
func mostFrequent(freq map[int]int) (value, count int) {
	first := true
	for v, n := range freq {
		if first || n > count || (n == count && v < value) {
			value, count, first = v, n, false
		}
	}
	return value, count
}

func percent(n, total int) int {
	return int(math.Round(float64(n) / float64(total) * 100))
}
