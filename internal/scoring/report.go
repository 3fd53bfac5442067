package scoring

import (
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Report is the view-model handed to renderers, mailers and storage.
type Report struct {
	Demographics Respondent                                  `json:"demographics"`
	Sections     *orderedmap.OrderedMap[string, SectionView] `json:"sections"`
}

// Section returns the view for id, or nil.
func (r *Report) Section(id string) SectionView {
	if r == nil || r.Sections == nil {
		return nil
	}
	v, _ := r.Sections.Get(id)
	return v
}

const (
	rankSize      = 3
	strengthsSize = 3
)

// PrepareReport builds the report view-model from scores, following the
// order of the definition's reporting sections. Reporting entries without
// scores are skipped.
func PrepareReport(def *TestDefinition, scores *Scores, demographics Respondent) *Report {
	report := &Report{
		Demographics: demographics,
		Sections:     orderedmap.New[string, SectionView](),
	}
	if def == nil || scores == nil {
		return report
	}
	for _, rs := range def.Reporting.Sections {
		sec, ok := scores.Get(rs.SectionID)
		if !ok {
			continue
		}
		report.Sections.Set(rs.SectionID, buildSection(def, rs, sec))
	}
	return report
}

func buildSection(def *TestDefinition, rs ReportSection, sec SectionScores) SectionView {
	cats := sec.List()
	if cats == nil {
		cats = []CategoryScore{}
	}
	base := SectionBase{
		Title:       rs.Title,
		Description: rs.Description,
		Guidance:    rs.Guidance,
		Display:     rs.Display,
		Categories:  cats,
	}
	primary, hasPrimary := sec.Primary()

	switch rs.Display {
	case DisplayTop3Bottom3:
		return &Top3Bottom3View{
			SectionBase: base,
			Top3:        TopN(cats, rankSize),
			Bottom3:     BottomN(cats, rankSize),
		}
	case DisplayTop3Bottom2:
		return &Top3Bottom2View{
			SectionBase: base,
			Top3:        TopN(cats, rankSize),
			Bottom2:     BottomN(cats, 2),
		}
	case DisplayAllRanked:
		if hasPrimary && primary.Clusters != nil {
			return &AllClustersView{
				SectionBase:  base,
				AllClusters:  SortDesc(primary.Clusters),
				TopStrengths: topStrengths(def, rs.SectionID, primary),
			}
		}
		return &RankedView{SectionBase: base, Ranked: SortDesc(cats)}
	case DisplayClusters:
		clusters := primary.Clusters
		return &ClustersView{
			SectionBase:    base,
			TopClusters:    TopN(clusters, rankSize),
			BottomClusters: BottomN(clusters, rankSize),
			TopStrengths:   topStrengths(def, rs.SectionID, primary),
		}
	case DisplayGroupedThirds:
		sorted := SortDesc(primary.Clusters)
		return &GroupedThirdsView{
			SectionBase: base,
			TopThird:    window(sorted, 0, 3),
			MidThird:    window(sorted, 3, 6),
			BottomThird: window(sorted, 6, 9),
		}
	case DisplayGroupedReverse:
		sorted := SortDesc(primary.Clusters)
		return &GroupedReverseView{
			SectionBase: base,
			HighGrowth:  window(sorted, 0, 3),
			LowGrowth:   window(sorted, 3, 6),
		}
	case DisplayTotalOnly:
		total := 0.0
		for _, c := range cats {
			total += c.Total
		}
		return &TotalOnlyView{SectionBase: base, Total: total}
	default:
		return &PlainView{SectionBase: base}
	}
}

// topStrengths ranks the individual answers of cat by raw score. Equal scores
// keep question order. Labels come from the matching category's questions.
func topStrengths(def *TestDefinition, sectionID string, cat CategoryScore) []Strength {
	questions := questionsFor(def, sectionID, cat.Key)
	items := make([]Strength, 0, len(cat.Answers))
	for i, a := range cat.Answers {
		text := fmt.Sprintf("Strength %d", i+1)
		if i < len(questions) && questions[i] != "" {
			text = questions[i]
		}
		items = append(items, Strength{Text: text, Score: value(a), Index: i})
	}
	slices.SortStableFunc(items, func(a, b Strength) int { return b.Score - a.Score })
	return firstN(items, strengthsSize)
}

func questionsFor(def *TestDefinition, sectionID, key string) []string {
	for _, s := range def.Sections {
		if s.SectionID != sectionID {
			continue
		}
		for _, c := range s.Categories {
			if c.Key == key {
				return c.Questions
			}
		}
	}
	return nil
}
