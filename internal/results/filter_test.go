package results

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/courtneynewtocode/career-compass/internal/scoring"
)

var day0 = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func sample() []Result {
	return []Result{
		{ID: "1", TestID: "career-compass", SubmittedAt: day0.AddDate(0, 0, -10),
			Demographics: scoring.Respondent{"studentName": "bongani", "email": "b@x.io", "grade": "11"}},
		{ID: "2", TestID: "career-compass", SubmittedAt: day0.AddDate(0, 0, -1),
			Demographics: scoring.Respondent{"studentName": "Amahle", "email": "a@school.za", "grade": "Final Year"}},
		{ID: "3", TestID: "values", SubmittedAt: day0,
			Demographics: scoring.Respondent{"studentName": "Chris", "grade": "9"}},
	}
}

func ids(list []Result) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		opts ListOpts
		want []string
	}{
		{"default newest first", ListOpts{}, []string{"3", "2", "1"}},
		{"date asc", ListOpts{Sort: SortDateAsc}, []string{"1", "2", "3"}},
		{"name asc ignores case", ListOpts{Sort: SortNameAsc}, []string{"2", "1", "3"}},
		{"name desc", ListOpts{Sort: SortNameDesc}, []string{"3", "1", "2"}},
		{"test filter", ListOpts{TestID: "values"}, []string{"3"}},
		{"search email", ListOpts{Query: "SCHOOL.za"}, []string{"2"}},
		{"search grade", ListOpts{Query: "final"}, []string{"2"}},
		{"no match", ListOpts{Query: "zzz"}, []string{}},
		{"page", ListOpts{Limit: 1, Offset: 1}, []string{"2"}},
		{"offset past end", ListOpts{Offset: 5}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sample()
			assert.Equal(t, tt.want, ids(Apply(in, tt.opts)))
			assert.Equal(t, []string{"1", "2", "3"}, ids(in), "input reordered")
		})
	}
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(sample(), day0)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, map[string]int{"career-compass": 2, "values": 1}, s.ByTest)
	assert.Equal(t, 2, s.Last7Days)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Jean-Luc_OBrien", SanitizeName("Jean-Luc O'Brien"))
	assert.Equal(t, "", SanitizeName("../../"))
	long := SanitizeName("abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijXYZ")
	assert.Len(t, long, 50)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "-", FormatDuration(0))
	assert.Equal(t, "42s", FormatDuration(42))
	assert.Equal(t, "3m 5s", FormatDuration(185))
}

func TestNewID(t *testing.T) {
	id := NewID(day0)
	assert.Regexp(t, `^2025-03-10_120000_[0-9a-f]{13}$`, id)
	assert.NotEqual(t, id, NewID(day0))
}
