package scoring

// sampleDefinition is a trimmed Career Compass definition covering every
// display mode the report assembler knows.
func sampleDefinition() *TestDefinition {
	clusterNames := []string{"Analytical", "Creative", "Social", "Leadership", "Practical",
		"Organised", "Technical", "Caring", "Persuasive"}
	defs := make([]ClusterDef, len(clusterNames))
	questions := make([]string, len(clusterNames))
	for i, n := range clusterNames {
		defs[i] = ClusterDef{Name: n, Indices: []int{i}}
		questions[i] = "I am " + n
	}

	return &TestDefinition{
		TestID:   "career-compass",
		TestName: "Career Compass",
		Sections: []Section{
			{SectionID: "section-a", Title: "Career clusters", Categories: []Category{
				{Key: "realistic", Title: "Realistic", Questions: []string{"q1", "q2", "q3"}, Scoring: Sum{}},
				{Key: "investigative", Title: "Investigative", Questions: []string{"q1", "q2", "q3"}, Scoring: Sum{}},
				{Key: "artistic", Title: "Artistic", Questions: []string{"q1", "q2", "q3"}, Scoring: Sum{}},
				{Key: "social", Title: "Social", Questions: []string{"q1", "q2", "q3"}, Scoring: Sum{}},
			}},
			{SectionID: "section-b", Title: "Drivers", Categories: []Category{
				{Key: "money", Title: "Money", Questions: []string{"q1", "q2"}, Scoring: Average{}},
				{Key: "impact", Title: "Impact", Questions: []string{"q1", "q2"}, Scoring: Average{}},
				{Key: "security", Title: "Security", Questions: []string{"q1", "q2"}, Scoring: Reverse{}},
			}},
			{SectionID: "section-c", Title: "Strengths", Categories: []Category{
				{Key: "strengths", Title: "Strengths", Questions: questions, Scoring: Clustered{Clusters: defs}},
			}},
			{SectionID: "section-d", Title: "Growth", Categories: []Category{
				{Key: "growth", Title: "Growth", Questions: questions, Scoring: Clustered{Clusters: defs}},
			}},
			{SectionID: "section-e", Title: "Readiness", Categories: []Category{
				{Key: "ready-1", Title: "Ready 1", Questions: []string{"q1"}, Scoring: Weighted{Weights: []float64{2}}},
				{Key: "ready-2", Title: "Ready 2", Questions: []string{"q1"}, Scoring: Sum{}},
			}},
		},
		Reporting: Reporting{Sections: []ReportSection{
			{SectionID: "section-a", Title: "Career clusters", Display: DisplayTop3Bottom3},
			{SectionID: "section-b", Title: "Drivers", Display: DisplayTop3Bottom2},
			{SectionID: "section-c", Title: "Strengths", Display: DisplayGroupedThirds},
			{SectionID: "section-d", Title: "Growth", Display: DisplayGroupedReverse},
			{SectionID: "section-e", Title: "Readiness", Display: DisplayTotalOnly},
			{SectionID: "section-z", Title: "Not scored", Display: DisplayTop3Bottom3},
		}},
	}
}

func sampleAnswers() Answers {
	return Answers{
		"realistic":     ints(5, 5, 5),
		"investigative": ints(4, 4, 4),
		"artistic":      ints(1, 1, 1),
		"social":        ints(4, 4, 4),
		"money":         ints(5, 3),
		"impact":        ints(2, 2),
		"security":      ints(1, 1),
		"strengths":     ints(9, 8, 7, 6, 5, 4, 3, 2, 1),
		"growth":        ints(1, 2, 3, 4, 5, 1, 2, 3, 4),
		"ready-1":       ints(3),
		"ready-2":       ints(4),
	}
}
