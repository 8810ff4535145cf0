package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pkravets/claimlens/internal/model"
	"github.com/pkravets/claimlens/internal/rules"
)

var rulesPath string

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and manage the coverage-rule table",
}

// rulesShowCmd prints the active rule table.
var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active rule table as YAML",
	Long: `Load the rule table (the built-in Medicare-style table when no file is
configured) and print it as YAML, together with its fingerprint. The
fingerprint in a report identifies the table the decision was made under.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := rules.Load(rulesPath)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(table)
		if err != nil {
			return fmt.Errorf("failed to encode rule table: %w", err)
		}

		fmt.Printf("# fingerprint: %s\n", table.Fingerprint())
		fmt.Print(string(data))
		return nil
	},
}

// rulesInitCmd writes the built-in rule table to a file.
var rulesInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the built-in rule table to a file",
	Long: `Write the built-in Medicare-style rule table to the given path as a
starting point for a custom ruleset.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}
		if err := rules.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default rule table to %s\n", path)
		return nil
	},
}

// rulesCheckCmd validates a rule file.
var rulesCheckCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Validate a rule file",
	Long: `Load and validate a rule file without adjudicating anything. Exits
non-zero when the file would be rejected at startup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := rules.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: OK (fingerprint %s)\n", args[0], table.Fingerprint())
		for _, category := range []model.RuleCategory{model.CategoryCovered, model.CategoryConditional, model.CategoryExcluded} {
			fmt.Printf("  %-12s %d rules\n", category, len(table.ByCategory(category)))
		}
		return nil
	},
}

func init() {
	rulesShowCmd.Flags().StringVar(&rulesPath, "rules", "", "rule table file (built-in table when empty)")

	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.AddCommand(rulesInitCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
	rootCmd.AddCommand(rulesCmd)
}
