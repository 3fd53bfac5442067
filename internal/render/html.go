package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/courtneynewtocode/career-compass/internal/scoring"
)

// Inline styles only: mail clients drop <style> blocks.
var styles = map[string]template.CSS{
	"body":      "font-family: Arial, sans-serif; line-height: 1.6; color: #0f1720; background-color: #f6fbfb; margin: 0; padding: 20px;",
	"container": "max-width: 800px; margin: 0 auto; background-color: #ffffff; border-radius: 14px; padding: 30px; box-shadow: 0 6px 20px rgba(12, 20, 24, 0.06);",
	"header":    "color: #0b8f8f; margin-top: 0; margin-bottom: 10px; border-bottom: 2px solid #0b8f8f; padding-bottom: 10px;",
	"h2":        "color: #0b8f8f; margin-top: 25px; margin-bottom: 12px;",
	"h3":        "color: #0f1720; margin-top: 20px; margin-bottom: 10px;",
	"table":     "width: 100%; border-collapse: collapse; margin: 15px 0;",
	"th":        "background-color: #0b8f8f; color: white; padding: 12px; text-align: left; border: 1px solid #0b8f8f;",
	"td":        "padding: 10px; border: 1px solid #ddd;",
	"top":       "background-color: rgba(148, 196, 148, 0.3); padding: 15px; border-radius: 10px; margin: 10px 0;",
	"low":       "background-color: rgba(171, 127, 119, 0.2); padding: 15px; border-radius: 10px; margin: 10px 0;",
	"plain":     "background-color: #f8feff; padding: 15px; border-radius: 10px; margin: 10px 0;",
	"muted":     "font-size: 13px; color: #6b6f76;",
	"footer":    "margin-top: 40px; padding-top: 20px; border-top: 1px solid #ddd; color: #6b6f76; font-size: 12px; text-align: center;",
}

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"style": func(name string) template.CSS { return styles[name] },
	"join":  joinOr,
}).Parse(`<div style="{{style "body"}}"><div style="{{style "container"}}">
<h1 style="{{style "header"}}">{{.Title}}</h1>
<p style="{{style "muted"}}">Submitted: {{.SubmittedAt}}</p>
<h2 style="{{style "h2"}}">Student Details</h2>
<table style="{{style "table"}}">
<tr><th style="{{style "th"}}">Field</th><th style="{{style "th"}}">Value</th></tr>
{{- range .Fields}}
<tr><td style="{{style "td"}}">{{.Label}}</td><td style="{{style "td"}}">{{.Value}}</td></tr>
{{- end}}
</table>
{{- range .Sections}}
<h2 style="{{style "h2"}}">{{.Title}}</h2>
{{- if .Description}}<p>{{.Description}}</p>{{end}}
{{- range .Lists}}
<div style="{{style .Style}}"><h3 style="{{style "h3"}}">{{.Heading}}</h3>
<ol style="margin: 0; padding-left: 20px;">
{{- range .Items}}
<li style="margin: 5px 0;"><strong>{{.Name}}</strong>{{if .Detail}} <span style="{{style "muted"}}">{{.Detail}}</span>{{end}}</li>
{{- end}}
</ol></div>
{{- end}}
{{- if .Total}}
<div style="{{style "plain"}}"><p style="margin: 0;"><strong>Overall Total:</strong> {{.Total}}</p></div>
{{- end}}
{{- if .Guidance}}<p style="{{style "muted"}}">{{.Guidance}}</p>{{end}}
{{- end}}
{{- with .Summary}}
<h3 style="{{style "h3"}}">Report Summary</h3>
<table style="{{style "table"}}">
<tr><th style="{{style "th"}}">Category</th><th style="{{style "th"}}">Result</th></tr>
<tr><td style="{{style "td"}}"><strong>Dominant career cluster (Top 1)</strong></td><td style="{{style "td"}}">{{.DominantCluster}}</td></tr>
<tr><td style="{{style "td"}}"><strong>Top 3 career drivers</strong></td><td style="{{style "td"}}">{{join .TopDrivers ", " "N/A"}}</td></tr>
<tr><td style="{{style "td"}}"><strong>Top strengths</strong></td><td style="{{style "td"}}">{{join .TopStrengths "; " "See strength clusters above"}}</td></tr>
<tr><td style="{{style "td"}}"><strong>Top growth areas to work on</strong></td><td style="{{style "td"}}">{{join .GrowthAreas ", " "See growth area scores above"}}</td></tr>
</table>
{{- end}}
<div style="{{style "footer"}}"><p>This is an automated email from the Career Compass Assessment System.</p></div>
</div></div>`))

type field struct{ Label, Value string }

type item struct{ Name, Detail string }

type list struct {
	Heading string
	Style   string // top|low|plain
	Items   []item
}

type section struct {
	Title, Description, Guidance string
	Lists                        []list
	Total                        string
}

type page struct {
	Title       string
	SubmittedAt string
	Fields      []field
	Sections    []section
	Summary     *Summary
}

// HTML renders the report as a self-contained, inline-styled HTML fragment
// suitable for email bodies and the dashboard.
func HTML(def *scoring.TestDefinition, r *scoring.Report, submittedAt time.Time) (string, error) {
	if def == nil || r == nil {
		return "", fmt.Errorf("render: definition and report are required")
	}
	p := page{
		Title:       def.TestName + " Results",
		SubmittedAt: submittedAt.Format("2006-01-02 15:04:05"),
		Summary:     Summarize(r),
	}
	for _, f := range def.Demographics.Fields {
		p.Fields = append(p.Fields, field{Label: f.Label, Value: r.Demographics[f.Key]})
	}
	date := r.Demographics["date"]
	if date == "" {
		date = submittedAt.Format("2006-01-02")
	}
	p.Fields = append(p.Fields, field{Label: "Date", Value: date})

	for pair := r.Sections.Oldest(); pair != nil; pair = pair.Next() {
		p.Sections = append(p.Sections, sectionOf(pair.Value))
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return buf.String(), nil
}

func sectionOf(v scoring.SectionView) section {
	b := v.Base()
	s := section{Title: b.Title, Description: b.Description, Guidance: b.Guidance}
	switch v := v.(type) {
	case *scoring.Top3Bottom3View:
		s.Lists = []list{
			{"Top 3 Results", "top", categoryItems(v.Top3)},
			{"Bottom 3 Results", "low", categoryItems(v.Bottom3)},
		}
	case *scoring.Top3Bottom2View:
		s.Lists = []list{
			{"Top 3 Results", "top", categoryItems(v.Top3)},
			{"Bottom 2 Results", "low", categoryItems(v.Bottom2)},
		}
	case *scoring.RankedView:
		s.Lists = []list{{"All Results", "plain", categoryItems(v.Ranked)}}
	case *scoring.AllClustersView:
		s.Lists = []list{
			{"All Strength Clusters", "plain", clusterItems(v.AllClusters)},
			{"Top Strengths", "top", strengthItems(v.TopStrengths)},
		}
	case *scoring.ClustersView:
		s.Lists = []list{
			{"Top 3 Strength Clusters", "top", clusterItems(v.TopClusters)},
			{"Lowest 3 Strength Clusters", "low", clusterItems(v.BottomClusters)},
			{"Top Strengths", "plain", strengthItems(v.TopStrengths)},
		}
	case *scoring.GroupedThirdsView:
		s.Lists = []list{
			{"Top Third", "top", clusterItems(v.TopThird)},
			{"Middle Third", "plain", clusterItems(v.MidThird)},
			{"Bottom Third", "low", clusterItems(v.BottomThird)},
		}
	case *scoring.GroupedReverseView:
		s.Lists = []list{
			{"Highest Growth Priority", "low", clusterItems(v.HighGrowth)},
			{"Lower Growth Priority", "top", clusterItems(v.LowGrowth)},
		}
	case *scoring.TotalOnlyView:
		s.Total = num(v.Total)
	}
	// drop empty tiers
	kept := s.Lists[:0]
	for _, l := range s.Lists {
		if len(l.Items) > 0 {
			kept = append(kept, l)
		}
	}
	s.Lists = kept
	return s
}

func categoryItems(cs []scoring.CategoryScore) []item {
	out := make([]item, len(cs))
	for i, c := range cs {
		out[i] = item{Name: c.Title, Detail: "(Total: " + num(c.Total) + ")"}
	}
	return out
}

func clusterItems(cs []scoring.ClusterScore) []item {
	out := make([]item, len(cs))
	for i, c := range cs {
		out[i] = item{Name: c.Name, Detail: fmt.Sprintf("Total: %s, Average: %s", num(c.Total), num(c.Avg))}
	}
	return out
}

func strengthItems(ss []scoring.Strength) []item {
	out := make([]item, len(ss))
	for i, s := range ss {
		out[i] = item{Name: s.Text, Detail: fmt.Sprintf("(%d)", s.Score)}
	}
	return out
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func joinOr(items []string, sep, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, sep)
}
