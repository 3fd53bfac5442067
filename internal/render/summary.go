package render

import "github.com/courtneynewtocode/career-compass/internal/scoring"

// Summary is the short "at a glance" table shown under a report. It reads
// the conventional Career Compass section ids.
type Summary struct {
	DominantCluster string   `json:"dominantCluster"`
	TopDrivers      []string `json:"topDrivers"`
	TopStrengths    []string `json:"topStrengths"`
	GrowthAreas     []string `json:"growthAreas"`
}

const notAvailable = "N/A"

// Summarize returns nil unless the report has both section-a and section-b.
func Summarize(r *scoring.Report) *Summary {
	a, b := r.Section("section-a"), r.Section("section-b")
	if a == nil || b == nil {
		return nil
	}
	s := &Summary{
		DominantCluster: leader(a),
		TopDrivers:      topLabels(b),
		TopStrengths:    strengthLabels(r.Section("section-c")),
		GrowthAreas:     growthLabels(r.Section("section-d")),
	}
	return s
}

func leader(v scoring.SectionView) string {
	var first string
	switch v := v.(type) {
	case *scoring.Top3Bottom3View:
		if len(v.Top3) > 0 {
			first = v.Top3[0].Title
		}
	case *scoring.Top3Bottom2View:
		if len(v.Top3) > 0 {
			first = v.Top3[0].Title
		}
	case *scoring.RankedView:
		if len(v.Ranked) > 0 {
			first = v.Ranked[0].Title
		}
	case *scoring.AllClustersView:
		if len(v.AllClusters) > 0 {
			first = v.AllClusters[0].Name
		}
	case *scoring.ClustersView:
		if len(v.TopClusters) > 0 {
			first = v.TopClusters[0].Name
		}
	case *scoring.GroupedThirdsView:
		if len(v.TopThird) > 0 {
			first = v.TopThird[0].Name
		}
	}
	if first == "" {
		return notAvailable
	}
	return first
}

func topLabels(v scoring.SectionView) []string {
	switch v := v.(type) {
	case *scoring.Top3Bottom3View:
		return categoryTitles(v.Top3)
	case *scoring.Top3Bottom2View:
		return categoryTitles(v.Top3)
	case *scoring.RankedView:
		return categoryTitles(scoring.TopN(v.Ranked, 3))
	}
	return nil
}

func strengthLabels(v scoring.SectionView) []string {
	switch v := v.(type) {
	case *scoring.ClustersView:
		return strengthTexts(v.TopStrengths)
	case *scoring.AllClustersView:
		return strengthTexts(v.TopStrengths)
	case *scoring.GroupedThirdsView:
		return clusterNames(v.TopThird)
	}
	return nil
}

func growthLabels(v scoring.SectionView) []string {
	switch v := v.(type) {
	case *scoring.GroupedReverseView:
		return clusterNames(v.HighGrowth)
	case *scoring.ClustersView:
		return clusterNames(v.TopClusters)
	}
	return nil
}

func categoryTitles(cs []scoring.CategoryScore) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Title
	}
	return out
}

func clusterNames(cs []scoring.ClusterScore) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func strengthTexts(ss []scoring.Strength) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Text
	}
	return out
}
