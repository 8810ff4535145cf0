package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pkravets/claimlens/internal/model"
	"github.com/pkravets/claimlens/internal/pipeline"
	"github.com/pkravets/claimlens/internal/rules"
)

var (
	adjRulesPath   string
	adjClaimFile   string
	adjJSONOut     string
	adjMarkdownOut string
	adjNoCache     bool
	adjAudit       bool
	adjAuditPath   string
	adjLLM         string
	adjLLMModel    string
	adjTimeout     time.Duration
)

// adjudicateCmd represents the adjudicate command
var adjudicateCmd = &cobra.Command{
	Use:   "adjudicate [claim text]",
	Short: "Adjudicate a single claim",
	Long: `Extract a claim record from raw text (JSON or free text), evaluate it
against the active coverage-rule table, and print the final decision.

The claim payload is taken from the command line argument, or from a
file via --file. Reports can be written as JSON and Markdown.`,
	Example: `  claimlens adjudicate '{"patient": "Maria Santos", "diagnosis": "Cataract", "treatment": "Phacoemulsification", "cost": 3500}'
  claimlens adjudicate --file claim.txt --json report.json
  claimlens adjudicate --rules policies.yaml "Patient: John Smith, Diagnosis: Type 2 diabetes, Treatment: Insulin pump, Cost: $6500"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdjudicate,
}

func init() {
	adjudicateCmd.Flags().StringVar(&adjRulesPath, "rules", "", "coverage-rule table file (YAML or JSON; built-in table when empty)")
	adjudicateCmd.Flags().StringVarP(&adjClaimFile, "file", "f", "", "read the claim payload from a file")
	adjudicateCmd.Flags().StringVar(&adjJSONOut, "json", "", "write the full report as JSON to this path")
	adjudicateCmd.Flags().StringVar(&adjMarkdownOut, "md", "", "write the report as Markdown to this path")
	adjudicateCmd.Flags().BoolVar(&adjNoCache, "no-cache", false, "bypass the decision cache")
	adjudicateCmd.Flags().BoolVar(&adjAudit, "audit", false, "record the decision in the audit log")
	adjudicateCmd.Flags().StringVar(&adjAuditPath, "audit-path", "", "audit database path (default: $HOME/.claimlens/audit.db)")
	adjudicateCmd.Flags().StringVar(&adjLLM, "llm", "", "LLM extraction fallback provider (openai, ollama)")
	adjudicateCmd.Flags().StringVar(&adjLLMModel, "llm-model", "", "model for the LLM fallback")
	adjudicateCmd.Flags().DurationVar(&adjTimeout, "timeout", 60*time.Second, "overall timeout")

	rootCmd.AddCommand(adjudicateCmd)
}

func runAdjudicate(cmd *cobra.Command, args []string) error {
	payload, err := claimPayload(args)
	if err != nil {
		return err
	}

	cfg := buildConfig()
	store, err := rules.Open(cfg.Rules.Path)
	if err != nil {
		return fmt.Errorf("failed to load rule table: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg, store)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), adjTimeout)
	defer cancel()

	report, err := p.AdjudicateText(ctx, payload)
	if err != nil {
		return fmt.Errorf("adjudication failed: %w", err)
	}

	return p.RenderReport(report, adjJSONOut, adjMarkdownOut, verbose)
}

// claimPayload resolves the claim text from the argument or --file.
func claimPayload(args []string) (string, error) {
	if adjClaimFile != "" {
		data, err := os.ReadFile(adjClaimFile)
		if err != nil {
			return "", fmt.Errorf("failed to read claim file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	return "", fmt.Errorf("no claim provided: pass claim text as an argument or use --file")
}

// buildConfig layers defaults, the config file, and command flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		cfg = model.DefaultConfig()
	}

	if adjRulesPath != "" {
		cfg.Rules.Path = adjRulesPath
	}
	if adjNoCache {
		cfg.Cache.Enabled = false
	}
	if adjAudit {
		cfg.Audit.Enabled = true
	}
	if adjAuditPath != "" {
		cfg.Audit.Path = adjAuditPath
	}
	if adjLLM != "" {
		cfg.LLM.Provider = adjLLM
	}
	if adjLLMModel != "" {
		cfg.LLM.Model = adjLLMModel
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.Output.Verbose = verbose

	return cfg
}
