package mcptools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/courtneynewtocode/career-compass/internal/testdef"
)

const genuineAnswers = `{
  "realistic": [5,5,5], "investigative": [4,4,4], "artistic": [1,1,1],
  "social": [3,3,3], "enterprising": [2,2,2], "conventional": [4,4,5],
  "money": [5,5], "impact": [4,4], "creativity": [3,3], "stability": [2,2], "recognition": [1,1],
  "strengths": [5,4,3,3,2,2,1,4,5],
  "growth": [1,5,2,4,3,1],
  "readiness-plan": [4,3], "readiness-confidence": [2]
}`

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func newScoreTool(t *testing.T) *ScoreTool {
	t.Helper()
	defs, err := testdef.NewLoader(filepath.Join("..", "..", "definitions"), 2)
	if err != nil {
		t.Fatalf("loader: %v", err)
	}
	return NewScoreTool(defs)
}

func TestScoreTool_Definition(t *testing.T) {
	def := newScoreTool(t).Definition()
	if def.Name != "score_assessment" {
		t.Errorf("tool name = %q", def.Name)
	}
	for _, p := range []string{"test_id", "answers", "demographics"} {
		if _, ok := def.InputSchema.Properties[p]; !ok {
			t.Errorf("missing %q parameter", p)
		}
	}
	if len(def.InputSchema.Required) != 2 {
		t.Errorf("required = %v", def.InputSchema.Required)
	}
}

func TestScoreTool_Handle(t *testing.T) {
	tool := newScoreTool(t)
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"test_id":      "career-compass",
		"answers":      genuineAnswers,
		"demographics": `{"studentName":"Ayesha"}`,
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(res))
	}

	var out struct {
		Report struct {
			Demographics map[string]string          `json:"demographics"`
			Sections     map[string]json.RawMessage `json:"sections"`
		} `json:"report"`
		Summary struct {
			DominantCluster string `json:"dominantCluster"`
		} `json:"summary"`
		Integrity struct {
			Valid bool `json:"valid"`
		} `json:"integrity"`
	}
	if err := json.Unmarshal([]byte(resultText(res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Report.Demographics["studentName"] != "Ayesha" {
		t.Errorf("demographics = %v", out.Report.Demographics)
	}
	if _, ok := out.Report.Sections["section-a"]; !ok {
		t.Errorf("section-a missing from report")
	}
	if out.Summary.DominantCluster != "Realistic" {
		t.Errorf("dominant = %q", out.Summary.DominantCluster)
	}
	if !out.Integrity.Valid {
		t.Error("genuine answers flagged")
	}
}

func TestScoreTool_Errors(t *testing.T) {
	tool := newScoreTool(t)
	cases := map[string]map[string]interface{}{
		"unknown test":     {"test_id": "nope", "answers": genuineAnswers},
		"bad answers":      {"test_id": "career-compass", "answers": `{"realistic":"five"}`},
		"missing answers":  {"test_id": "career-compass"},
		"bad demographics": {"test_id": "career-compass", "answers": genuineAnswers, "demographics": `[1]`},
	}
	for name, args := range cases {
		res, err := tool.Handle(context.Background(), makeReq(args))
		if err != nil {
			t.Fatalf("%s: handle returned error: %v", name, err)
		}
		if !res.IsError {
			t.Errorf("%s: expected a tool error, got %s", name, resultText(res))
		}
	}
}

func TestCheckTool_Handle(t *testing.T) {
	tool := NewCheckTool()
	if tool.Definition().Name != "check_answer_patterns" {
		t.Fatal("wrong tool name")
	}

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"answers": `{"a":[3,3,3,3,3,3],"b":[3,3,3,3,3,3]}`,
	}))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	text := resultText(res)
	if !strings.Contains(text, `"all_same_answer"`) || !strings.Contains(text, `"valid": false`) {
		t.Errorf("verdict = %s", text)
	}

	res, _ = tool.Handle(context.Background(), makeReq(map[string]interface{}{"answers": "{"}))
	if !res.IsError {
		t.Error("malformed answers accepted")
	}
}

func TestNewServer(t *testing.T) {
	defs, err := testdef.NewLoader(filepath.Join("..", "..", "definitions"), 2)
	if err != nil {
		t.Fatalf("loader: %v", err)
	}
	if NewServer(defs, "test") == nil {
		t.Fatal("nil server")
	}
}
