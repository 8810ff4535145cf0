package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkravets/claimlens/internal/model"
	"github.com/pkravets/claimlens/internal/pipeline"
	"github.com/pkravets/claimlens/internal/rules"
	"github.com/pkravets/claimlens/internal/worker"
)

var (
	batchRulesPath string
	batchOutputDir string
	batchWorkers   int
	batchWatch     bool
	batchTimeout   time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <claims file>",
	Short: "Adjudicate a batch of claims",
	Long: `Adjudicate every claim in a file, one claim payload per line, using a
bounded worker pool. Blank lines and lines starting with '#' are skipped.

Per-claim JSON reports are written to the output directory, and a batch
summary is printed when all claims have been processed.`,
	Example: `  claimlens batch claims.txt
  claimlens batch claims.txt --workers 8 --output-dir reports/`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchRulesPath, "rules", "", "coverage-rule table file (built-in table when empty)")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "", "directory for per-claim JSON reports")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().BoolVar(&batchWatch, "watch", false, "reload the rule file when it changes during the run")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall timeout")

	rootCmd.AddCommand(batchCmd)
}

// claimJob adjudicates one claim payload on the worker pool.
type claimJob struct {
	line     int
	payload  string
	pipeline *pipeline.Pipeline
}

// claimResult carries the report or error back from the pool.
type claimResult struct {
	line   int
	report *model.Report
	err    error
}

func (r claimResult) GetError() error { return r.err }

func (j claimJob) Execute(ctx context.Context) worker.Result {
	report, err := j.pipeline.AdjudicateText(ctx, j.payload)
	return claimResult{line: j.line, report: report, err: err}
}

func runBatch(cmd *cobra.Command, args []string) error {
	payloads, err := readClaimLines(args[0])
	if err != nil {
		return err
	}
	if len(payloads) == 0 {
		return fmt.Errorf("no claims found in %s", args[0])
	}

	cfg := buildConfig()
	if batchRulesPath != "" {
		cfg.Rules.Path = batchRulesPath
	}
	if batchWorkers > 0 {
		cfg.Concurrency.Workers = batchWorkers
	}
	if batchWatch {
		cfg.Rules.Watch = true
	}

	store, err := rules.Open(cfg.Rules.Path)
	if err != nil {
		return fmt.Errorf("failed to load rule table: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg, store)
	if err != nil {
		return err
	}
	defer p.Close()

	if batchOutputDir != "" {
		if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	if cfg.Rules.Watch && cfg.Rules.Path != "" {
		watcher, err := rules.NewWatcher(store)
		if err != nil {
			return fmt.Errorf("failed to watch rule file: %w", err)
		}
		go func() { _ = watcher.Run(ctx) }()
	}

	pool := worker.NewPool(cfg.Concurrency.Workers)
	pool.Start()

	go func() {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			pool.Shutdown()
		}
	}()

	for line, payload := range payloads {
		pool.Submit(claimJob{line: line, payload: payload, pipeline: p})
	}

	results := pool.Wait()
	sort.Slice(results, func(i, k int) bool {
		return results[i].(claimResult).line < results[k].(claimResult).line
	})

	var reports []*model.Report
	failed := 0
	for _, res := range results {
		cr := res.(claimResult)
		if cr.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Line %d: %v\n", cr.line, cr.err)
			continue
		}
		reports = append(reports, cr.report)

		if batchOutputDir != "" {
			path := filepath.Join(batchOutputDir, fmt.Sprintf("claim-%03d.json", cr.line))
			if err := p.RenderReport(cr.report, path, "", false); err != nil {
				fmt.Fprintf(os.Stderr, "Line %d: failed to write report: %v\n", cr.line, err)
			}
		} else if err := p.RenderReport(cr.report, "", "", verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Line %d: %v\n", cr.line, err)
		}
	}

	pipeline.Collect(reports, failed).Render(os.Stdout)
	return nil
}

// readClaimLines reads one claim payload per line, skipping blanks and
// comment lines.
func readClaimLines(path string) (map[int]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open claims file: %w", err)
	}
	defer f.Close()

	payloads := make(map[int]string)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		payloads[line] = text
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read claims file: %w", err)
	}
	return payloads, nil
}
