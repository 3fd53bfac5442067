// Package mcptools exposes scoring and the answer integrity check as MCP
// tools so that an assistant can score a set of answers without the HTTP
// service.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/courtneynewtocode/career-compass/internal/integrity"
	"github.com/courtneynewtocode/career-compass/internal/render"
	"github.com/courtneynewtocode/career-compass/internal/scoring"
	"github.com/courtneynewtocode/career-compass/internal/testdef"
)

type Definitions interface {
	Load(id string) (*scoring.TestDefinition, error)
}

// ScoreTool handles score_assessment.
type ScoreTool struct {
	defs Definitions
}

func NewScoreTool(defs Definitions) *ScoreTool { return &ScoreTool{defs: defs} }

func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("score_assessment",
		mcp.WithDescription("Score a set of answers against a test definition and return the report and summary as JSON."),
		mcp.WithString("test_id",
			mcp.Required(),
			mcp.Description("Test definition id, e.g. career-compass"),
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(`Answers JSON keyed by category, e.g. {"realistic":[5,4,3]}; null marks an unanswered question`),
		),
		mcp.WithString("demographics",
			mcp.Description(`Optional respondent JSON, e.g. {"studentName":"Ann"}`),
		),
	)
}

func (t *ScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	testID := req.GetString("test_id", "")
	def, err := t.defs.Load(testID)
	if err != nil {
		if errors.Is(err, testdef.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown test %q", testID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("load %s: %v", testID, err)), nil
	}
	answers, err := parseAnswers(req.GetString("answers", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	demo := scoring.Respondent{}
	if raw := req.GetString("demographics", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &demo); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("demographics must be a JSON object of strings: %v", err)), nil
		}
	}

	report := scoring.PrepareReport(def, scoring.CalculateScores(def, answers), demo)
	return jsonResult(map[string]any{
		"report":    report,
		"summary":   render.Summarize(report),
		"integrity": integrity.ValidateAssessment(def, answers),
	})
}

// CheckTool handles check_answer_patterns.
type CheckTool struct{}

func NewCheckTool() *CheckTool { return &CheckTool{} }

func (t *CheckTool) Definition() mcp.Tool {
	return mcp.NewTool("check_answer_patterns",
		mcp.WithDescription("Check a set of answers for straight-lining and repeating patterns. Returns the verdict as JSON."),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(`Answers JSON keyed by category, e.g. {"realistic":[5,4,3]}`),
		),
	)
}

func (t *CheckTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers, err := parseAnswers(req.GetString("answers", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(integrity.ValidateAnswerPatterns(answers))
}

// NewServer registers the tools on an MCP server.
func NewServer(defs Definitions, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"career-compass",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	score := NewScoreTool(defs)
	s.AddTool(score.Definition(), score.Handle)
	check := NewCheckTool()
	s.AddTool(check.Definition(), check.Handle)
	return s
}

func parseAnswers(raw string) (scoring.Answers, error) {
	if raw == "" {
		return nil, errors.New("answers is required")
	}
	var a scoring.Answers
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, fmt.Errorf("answers must be a JSON object of integer arrays: %v", err)
	}
	return a, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
