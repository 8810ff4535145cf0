package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkravets/claimlens/internal/audit"
)

var (
	auditLimit  int
	auditDBPath string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the decision audit log",
}

// auditRecentCmd lists the latest logged decisions.
var auditRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recent logged decisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		if auditDBPath != "" {
			cfg.Audit.Path = auditDBPath
		}

		store, err := audit.Open(cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("failed to open audit log: %w", err)
		}
		defer func() { _ = store.Close() }()

		entries, err := store.Recent(auditLimit)
		if err != nil {
			return fmt.Errorf("failed to read audit log: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No decisions logged yet")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%s  %-15s  $%.2f  %-20s  score %.2f  %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"), e.Decision, e.Cost, e.Patient, e.Score, e.ID)
		}
		return nil
	},
}

func init() {
	auditRecentCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "number of entries to show")
	auditRecentCmd.Flags().StringVar(&auditDBPath, "audit-path", "", "audit database path")

	auditCmd.AddCommand(auditRecentCmd)
	rootCmd.AddCommand(auditCmd)
}
