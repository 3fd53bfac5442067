package scoring

// DisplayMode selects how a reporting section is shaped.
type DisplayMode string

const (
	DisplayTop3Bottom3    DisplayMode = "top3-bottom3"
	DisplayTop3Bottom2    DisplayMode = "top3-bottom2"
	DisplayAllRanked      DisplayMode = "all-ranked"
	DisplayClusters       DisplayMode = "clusters"
	DisplayGroupedThirds  DisplayMode = "grouped-thirds"
	DisplayGroupedReverse DisplayMode = "grouped-reverse"
	DisplayTotalOnly      DisplayMode = "total-only"
)

// Known reports whether d is a display mode the report assembler shapes.
func (d DisplayMode) Known() bool {
	switch d {
	case DisplayTop3Bottom3, DisplayTop3Bottom2, DisplayAllRanked, DisplayClusters,
		DisplayGroupedThirds, DisplayGroupedReverse, DisplayTotalOnly:
		return true
	}
	return false
}

// ClusterSourced reports whether the mode reads its rankings from the
// clusters of the section's first category. Sections using such a mode
// must declare a single clustered category first.
func (d DisplayMode) ClusterSourced() bool {
	switch d {
	case DisplayClusters, DisplayGroupedThirds, DisplayGroupedReverse:
		return true
	}
	return false
}

// SectionView is the report view of one section. The concrete type depends
// on the display mode; every variant embeds SectionBase.
type SectionView interface {
	Base() *SectionBase
}

type SectionBase struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Guidance    string          `json:"guidance,omitempty"`
	Display     DisplayMode     `json:"display"`
	Categories  []CategoryScore `json:"categories"`
}

func (b *SectionBase) Base() *SectionBase { return b }

// Strength is a single question ranked by its raw answer.
type Strength struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
	Index int    `json:"index"`
}

type Top3Bottom3View struct {
	SectionBase
	Top3    []CategoryScore `json:"top3"`
	Bottom3 []CategoryScore `json:"bottom3"`
}

type Top3Bottom2View struct {
	SectionBase
	Top3    []CategoryScore `json:"top3"`
	Bottom2 []CategoryScore `json:"bottom2"`
}

// RankedView is all-ranked over categories (no cluster breakdown).
type RankedView struct {
	SectionBase
	Ranked []CategoryScore `json:"ranked"`
}

// AllClustersView is all-ranked over the first category's clusters.
type AllClustersView struct {
	SectionBase
	AllClusters  []ClusterScore `json:"allClusters"`
	TopStrengths []Strength     `json:"topStrengths"`
}

type ClustersView struct {
	SectionBase
	TopClusters    []ClusterScore `json:"topClusters"`
	BottomClusters []ClusterScore `json:"bottomClusters"`
	TopStrengths   []Strength     `json:"topStrengths"`
}

type GroupedThirdsView struct {
	SectionBase
	TopThird    []ClusterScore `json:"topThird"`
	MidThird    []ClusterScore `json:"midThird"`
	BottomThird []ClusterScore `json:"bottomThird"`
}

type GroupedReverseView struct {
	SectionBase
	HighGrowth []ClusterScore `json:"highGrowth"`
	LowGrowth  []ClusterScore `json:"lowGrowth"`
}

type TotalOnlyView struct {
	SectionBase
	Total float64 `json:"total"`
}

// PlainView is used for display tags the assembler does not know.
type PlainView struct {
	SectionBase
}
