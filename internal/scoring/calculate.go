package scoring

import (
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// CalculateScores scores every category of every section. Categories with no
// answers score 0; nothing in the definition or answers is modified.
func CalculateScores(def *TestDefinition, answers Answers) *Scores {
	scores := orderedmap.New[string, SectionScores]()
	if def == nil {
		return scores
	}
	for _, sec := range def.Sections {
		cats := orderedmap.New[string, CategoryScore]()
		for _, cat := range sec.Categories {
			cats.Set(cat.Key, ScoreCategory(cat, answers[cat.Key]))
		}
		scores.Set(sec.SectionID, SectionScores{Categories: cats})
	}
	return scores
}

// ScoreCategory computes one category's record according to its scoring
// method. A nil spec scores as Sum.
func ScoreCategory(cat Category, answers []*int) CategoryScore {
	spec := cat.Scoring
	if spec == nil {
		spec = Sum{}
	}
	res := CategoryScore{
		Title:   cat.Title,
		Key:     cat.Key,
		Method:  spec.Method(),
		Answers: copyAnswers(answers),
		Count:   len(answers),
	}

	switch s := spec.(type) {
	case Weighted:
		res.Total = weightedSum(answers, s.Weights)
	case Clustered:
		res.Clusters = CalculateClusters(answers, s.Clusters)
		res.Total = sum(answers)
	case Reverse:
		res.Total = reversedSum(answers)
	default:
		// Sum, Average and Unrecognized share the plain sum.
		res.Total = sum(answers)
	}
	res.Avg = average(res.Total, res.Count)
	return res
}

// CalculateClusters returns one record per cluster definition, in order.
// The average divides by the number of listed indices, so unanswered or
// out-of-range questions pull it down as zeros.
func CalculateClusters(answers []*int, defs []ClusterDef) []ClusterScore {
	out := make([]ClusterScore, 0, len(defs))
	for _, d := range defs {
		total := 0.0
		for _, idx := range d.Indices {
			total += float64(at(answers, idx))
		}
		out = append(out, ClusterScore{
			Name:    d.Name,
			Indices: append([]int(nil), d.Indices...),
			Total:   total,
			Avg:     average(total, len(d.Indices)),
			Count:   len(d.Indices),
		})
	}
	return out
}

func sum(answers []*int) float64 {
	total := 0
	for _, a := range answers {
		total += value(a)
	}
	return float64(total)
}

func weightedSum(answers []*int, weights []float64) float64 {
	total := 0.0
	for i, a := range answers {
		w := 1.0
		if i < len(weights) && weights[i] != 0 {
			w = weights[i]
		}
		total += float64(value(a)) * w
	}
	return total
}

func reversedSum(answers []*int) float64 {
	total := 0
	for _, a := range answers {
		if v := value(a); v != 0 {
			total += 6 - v
		}
	}
	return float64(total)
}

func average(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return round2(total / float64(count))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func value(a *int) int {
	if a == nil {
		return 0
	}
	return *a
}

func at(answers []*int, idx int) int {
	if idx < 0 || idx >= len(answers) {
		return 0
	}
	return value(answers[idx])
}

func copyAnswers(in []*int) []*int {
	out := make([]*int, len(in))
	for i, a := range in {
		if a != nil {
			v := *a
			out[i] = &v
		}
	}
	return out
}
