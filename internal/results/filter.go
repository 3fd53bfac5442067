package results

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

const (
	SortDateDesc = "date-desc"
	SortDateAsc  = "date-asc"
	SortNameAsc  = "name-asc"
	SortNameDesc = "name-desc"
)

// Apply filters, sorts and pages list. The input is not modified.
func Apply(list []Result, opts ListOpts) []Result {
	q := strings.ToLower(strings.TrimSpace(opts.Query))
	out := make([]Result, 0, len(list))
	for _, r := range list {
		if opts.TestID != "" && r.TestID != opts.TestID {
			continue
		}
		if q != "" && !strings.Contains(searchText(r), q) {
			continue
		}
		out = append(out, r)
	}

	slices.SortStableFunc(out, compareFor(opts.Sort))
	return page(out, opts.Limit, opts.Offset)
}

func searchText(r Result) string {
	d := r.Demographics
	return strings.ToLower(strings.Join([]string{d["studentName"], d["email"], d["grade"]}, " "))
}

func compareFor(sort string) func(a, b Result) int {
	byName := func(a, b Result) int {
		return strings.Compare(strings.ToLower(a.StudentName()), strings.ToLower(b.StudentName()))
	}
	switch sort {
	case SortDateAsc:
		return func(a, b Result) int { return a.SubmittedAt.Compare(b.SubmittedAt) }
	case SortNameAsc:
		return byName
	case SortNameDesc:
		return func(a, b Result) int { return byName(b, a) }
	default:
		return func(a, b Result) int { return b.SubmittedAt.Compare(a.SubmittedAt) }
	}
}

func page(list []Result, limit, offset int) []Result {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []Result{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// Stats summarises a result list for the dashboard header.
type Stats struct {
	Total     int            `json:"total"`
	ByTest    map[string]int `json:"byTest"`
	Last7Days int            `json:"last7Days"`
}

func ComputeStats(list []Result, now time.Time) Stats {
	s := Stats{Total: len(list), ByTest: map[string]int{}}
	cutoff := now.AddDate(0, 0, -7)
	for _, r := range list {
		s.ByTest[r.TestID]++
		if !r.SubmittedAt.Before(cutoff) {
			s.Last7Days++
		}
	}
	return s
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_\- ]`)

// SanitizeName makes a respondent name safe for use in a file name.
func SanitizeName(s string) string {
	s = unsafeName.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "_")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// FormatDuration renders a completion time in seconds as "42s" or "3m 5s".
func FormatDuration(sec int) string {
	if sec <= 0 {
		return "-"
	}
	if sec < 60 {
		return fmt.Sprintf("%ds", sec)
	}
	return fmt.Sprintf("%dm %ds", sec/60, sec%60)
}
