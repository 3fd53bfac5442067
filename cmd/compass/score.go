package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/courtneynewtocode/career-compass/internal/config"
	"github.com/courtneynewtocode/career-compass/internal/integrity"
	"github.com/courtneynewtocode/career-compass/internal/mcptools"
	"github.com/courtneynewtocode/career-compass/internal/render"
	"github.com/courtneynewtocode/career-compass/internal/scoring"
)

// answersFile accepts either a bare answers object or a submission with
// "answers" and "demographics" keys.
type answersFile struct {
	Demographics scoring.Respondent `json:"demographics"`
	Answers      scoring.Answers    `json:"answers"`
}

func readAnswers(path string, stdin io.Reader) (answersFile, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return answersFile{}, err
	}
	var f answersFile
	if err := json.Unmarshal(b, &f); err == nil && f.Answers != nil {
		return f, nil
	}
	if err := json.Unmarshal(b, &f.Answers); err != nil {
		return answersFile{}, fmt.Errorf("%s: not an answers object: %w", path, err)
	}
	return f, nil
}

func newScoreCommand(cfg *config.Config) *cobra.Command {
	var (
		testID string
		asHTML bool
	)
	cmd := &cobra.Command{
		Use:   "score <answers.json|->",
		Short: "Score an answers file and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := loader(cfg)
			if err != nil {
				return err
			}
			def, err := defs.Load(testID)
			if err != nil {
				return fmt.Errorf("load %s: %w", testID, err)
			}
			f, err := readAnswers(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			report := scoring.PrepareReport(def, scoring.CalculateScores(def, f.Answers), f.Demographics)
			if asHTML {
				html, err := render.HTML(def, report, time.Now())
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), html)
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"report":    report,
				"summary":   render.Summarize(report),
				"integrity": integrity.ValidateAssessment(def, f.Answers),
			})
		},
	}
	cmd.Flags().StringVarP(&testID, "test", "t", "career-compass", "test definition id")
	cmd.Flags().BoolVar(&asHTML, "html", false, "print the HTML report instead of JSON")
	return cmd
}

func newCheckCommand(cfg *config.Config) *cobra.Command {
	var testID string
	cmd := &cobra.Command{
		Use:   "check <answers.json|->",
		Short: "Print the answer integrity verdict for an answers file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readAnswers(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if testID == "" {
				return printJSON(cmd.OutOrStdout(), integrity.ValidateAnswerPatterns(f.Answers))
			}
			defs, err := loader(cfg)
			if err != nil {
				return err
			}
			def, err := defs.Load(testID)
			if err != nil {
				return fmt.Errorf("load %s: %w", testID, err)
			}
			return printJSON(cmd.OutOrStdout(), integrity.ValidateAssessment(def, f.Answers))
		},
	}
	cmd.Flags().StringVarP(&testID, "test", "t", "", "visit answers in this definition's question order")
	return cmd
}

func newMCPCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the scoring tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := loader(cfg)
			if err != nil {
				return err
			}
			return server.ServeStdio(mcptools.NewServer(defs, version))
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
