package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/courtneynewtocode/career-compass/internal/config"
	"github.com/courtneynewtocode/career-compass/internal/testdef"
)

var version = "dev"

func main() {
	if err := newRootCommand(config.FromEnv()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "compass",
		Short: "Career Compass scoring and report engine",
		Long: `compass scores career assessment answers against a test definition,
checks them for low-effort answer patterns and delivers the report.

  compass serve                          # HTTP API and dashboard
  compass score -t career-compass a.json # score an answers file
  compass check a.json                   # integrity verdict only
  compass mcp                            # MCP tools over stdio`,
		Version:       version,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&cfg.TestsDir, "tests-dir", cfg.TestsDir, "directory of test definitions")

	root.AddCommand(
		newServeCommand(&cfg),
		newScoreCommand(&cfg),
		newCheckCommand(&cfg),
		newMCPCommand(&cfg),
	)
	return root
}

func loader(cfg *config.Config) (*testdef.Loader, error) {
	return testdef.NewLoader(cfg.TestsDir, cfg.TestCacheSize)
}
