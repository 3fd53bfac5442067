package scoring

import (
	"encoding/json"
	"testing"
)

func ints(vs ...int) []*int {
	out := make([]*int, len(vs))
	for i, v := range vs {
		out[i] = &v
	}
	return out
}

func TestScoreCategory_SumWithUnanswered(t *testing.T) {
	answers := []*int{intp(5), nil, intp(3)}
	got := ScoreCategory(Category{Key: "k", Title: "K", Scoring: Sum{}}, answers)
	if got.Total != 8 || got.Count != 3 || got.Avg != 2.67 {
		t.Fatalf("got total=%v count=%d avg=%v, want 8/3/2.67", got.Total, got.Count, got.Avg)
	}
	if got.Method != MethodSum {
		t.Fatalf("method = %q", got.Method)
	}
	if len(got.Answers) != 3 || got.Answers[1] != nil || *got.Answers[0] != 5 {
		t.Fatalf("raw answers not carried: %v", got.Answers)
	}
}

func TestScoreCategory_Methods(t *testing.T) {
	tests := []struct {
		name    string
		spec    ScoringSpec
		answers []*int
		total   float64
		avg     float64
		method  Method
	}{
		{"average", Average{}, ints(1, 2, 3, 4), 10, 2.5, MethodAverage},
		{"nil spec is sum", nil, ints(2, 2), 4, 2, MethodSum},
		{"empty answers", Sum{}, nil, 0, 0, MethodSum},
		{"weighted", Weighted{Weights: []float64{2, 0.5, 1}}, ints(3, 4, 5), 13, 4.33, MethodWeighted},
		{"weighted short weights", Weighted{Weights: []float64{3}}, ints(2, 2, 2), 10, 3.33, MethodWeighted},
		{"reverse", Reverse{}, ints(1, 5, 3), 9, 3, MethodReverse},
		{"reverse keeps nulls at zero", Reverse{}, []*int{intp(1), nil}, 5, 2.5, MethodReverse},
		{"unrecognized falls back to sum", Unrecognized{Name: "median"}, ints(4, 4, 1), 9, 3, Method("median")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreCategory(Category{Key: "k", Scoring: tt.spec}, tt.answers)
			if got.Total != tt.total || got.Avg != tt.avg {
				t.Errorf("total=%v avg=%v, want %v/%v", got.Total, got.Avg, tt.total, tt.avg)
			}
			if got.Method != tt.method {
				t.Errorf("method=%q, want %q", got.Method, tt.method)
			}
			if got.Clusters != nil {
				t.Errorf("unexpected clusters for %s", tt.name)
			}
		})
	}
}

func TestScoreCategory_Clusters(t *testing.T) {
	cat := Category{
		Key: "strengths",
		Scoring: Clustered{Clusters: []ClusterDef{
			{Name: "A", Indices: []int{0, 1, 2}},
			{Name: "B", Indices: []int{3, 4, 5}},
		}},
	}
	got := ScoreCategory(cat, ints(1, 2, 3, 4, 5, 1))
	if got.Total != 16 {
		t.Fatalf("category total = %v, want 16", got.Total)
	}
	if len(got.Clusters) != 2 {
		t.Fatalf("clusters = %d, want 2", len(got.Clusters))
	}
	a, b := got.Clusters[0], got.Clusters[1]
	if a.Name != "A" || a.Total != 6 || a.Avg != 2 || a.Count != 3 {
		t.Errorf("cluster A = %+v", a)
	}
	if b.Name != "B" || b.Total != 10 || b.Avg != 3.33 || b.Count != 3 {
		t.Errorf("cluster B = %+v", b)
	}
}

func TestCalculateClusters_Guards(t *testing.T) {
	got := CalculateClusters(ints(5, 5), []ClusterDef{
		{Name: "empty"},
		{Name: "out of range", Indices: []int{1, 7, -1}},
	})
	if got[0].Avg != 0 || got[0].Total != 0 || got[0].Count != 0 {
		t.Errorf("empty cluster = %+v", got[0])
	}
	if got[1].Total != 5 || got[1].Avg != 1.67 {
		t.Errorf("out of range cluster = %+v", got[1])
	}
}

func TestSingleClusterMatchesCategoryTotal(t *testing.T) {
	answers := []*int{intp(4), nil, intp(2), intp(5)}
	got := ScoreCategory(Category{Scoring: Clustered{Clusters: []ClusterDef{
		{Name: "all", Indices: []int{0, 1, 2, 3}},
	}}}, answers)
	if got.Clusters[0].Total != got.Total {
		t.Fatalf("cluster total %v != category total %v", got.Clusters[0].Total, got.Total)
	}
}

func TestCalculateScores_OrderAndMissingAnswers(t *testing.T) {
	def := sampleDefinition()
	answers := Answers{"realistic": ints(5, 5, 5)}

	scores := CalculateScores(def, answers)
	if scores.Len() != len(def.Sections) {
		t.Fatalf("sections = %d, want %d", scores.Len(), len(def.Sections))
	}
	var ids []string
	for p := scores.Oldest(); p != nil; p = p.Next() {
		ids = append(ids, p.Key)
	}
	if ids[0] != "section-a" || ids[1] != "section-b" {
		t.Fatalf("section order = %v", ids)
	}

	secA, _ := scores.Get("section-a")
	cats := secA.List()
	if cats[0].Key != "realistic" || cats[0].Total != 15 {
		t.Errorf("first category = %+v", cats[0])
	}
	if cats[1].Total != 0 || cats[1].Count != 0 || cats[1].Avg != 0 {
		t.Errorf("missing answers should score 0, got %+v", cats[1])
	}
}

func TestScoreCategory_DoesNotAliasAnswers(t *testing.T) {
	answers := ints(1, 2)
	got := ScoreCategory(Category{}, answers)
	*answers[0] = 5
	if *got.Answers[0] != 1 {
		t.Fatalf("record shares answer storage with caller")
	}
}

func TestCategoryJSONRoundTripKeepsScoringSpec(t *testing.T) {
	raw := `{"key":"k","title":"T","questions":["a","b"],
		"scoring":{"method":"weighted","weights":[2,1]}}`
	var c Category
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	w, ok := c.Scoring.(Weighted)
	if !ok || len(w.Weights) != 2 || w.Weights[0] != 2 {
		t.Fatalf("scoring = %#v", c.Scoring)
	}

	var missing Category
	if err := json.Unmarshal([]byte(`{"key":"x","questions":[]}`), &missing); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := missing.Scoring.(Sum); !ok {
		t.Fatalf("missing scoring should default to Sum, got %#v", missing.Scoring)
	}

	var odd Category
	if err := json.Unmarshal([]byte(`{"key":"x","scoring":{"method":"median"}}`), &odd); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if odd.Scoring.Method() != "median" {
		t.Fatalf("unknown method name lost: %q", odd.Scoring.Method())
	}
}

func intp(v int) *int { return &v }
