// Package pipeline orchestrates the complete adjudication flow: extraction,
// policy-compliance evaluation, the final decision, and report rendering.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkravets/claimlens/internal/audit"
	"github.com/pkravets/claimlens/internal/cache"
	"github.com/pkravets/claimlens/internal/decision"
	"github.com/pkravets/claimlens/internal/extract"
	"github.com/pkravets/claimlens/internal/extract/adapters"
	"github.com/pkravets/claimlens/internal/llm"
	"github.com/pkravets/claimlens/internal/model"
	"github.com/pkravets/claimlens/internal/policy"
	"github.com/pkravets/claimlens/internal/rules"
	"github.com/pkravets/claimlens/internal/worker"
)

// Pipeline wires the adjudication stages together. Evaluation itself is a
// pure function of the claim and the active rule table; the pipeline adds
// the impure edges: extraction fallback, caching, and the audit log.
type Pipeline struct {
	store     *rules.Store
	extractor *extract.Extractor
	evaluator *policy.Evaluator
	engine    *decision.Engine
	renderer  *Renderer
	cache     cache.Cache  // nil when disabled
	provider  llm.Provider // nil when disabled
	limiter   *worker.Limiter
	auditLog  *audit.Store // nil when disabled
	config    *model.Config
}

// NewPipeline creates a pipeline from the configuration and rule store.
// Misconfiguration (unknown LLM provider, unusable audit path) fails here,
// at startup, rather than mid-evaluation.
func NewPipeline(cfg *model.Config, store *rules.Store) (*Pipeline, error) {
	p := &Pipeline{
		store:     store,
		extractor: extract.NewExtractor(),
		evaluator: policy.NewEvaluator(),
		engine:    decision.NewEngine(),
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		limiter:   worker.NewLimiter(cfg.LLM.RateLimit, 1),
		config:    cfg,
	}

	if cfg.Cache.Enabled {
		p.cache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}
	p.provider = provider

	if cfg.Audit.Enabled {
		auditLog, err := audit.Open(cfg.Audit.Path)
		if err != nil {
			return nil, fmt.Errorf("configure audit log: %w", err)
		}
		p.auditLog = auditLog
	}

	return p, nil
}

// Close releases the pipeline's resources (currently the audit log).
func (p *Pipeline) Close() error {
	if p.auditLog != nil {
		return p.auditLog.Close()
	}
	return nil
}

// AdjudicateText runs the full flow for a raw claim payload. It never fails
// for a readable payload: extraction degrades to a fallback record and
// evaluation always produces a decision.
func (p *Pipeline) AdjudicateText(ctx context.Context, payload string) (*model.Report, error) {
	table := p.store.Table()
	fingerprint := table.Fingerprint()
	key := cache.Key(payload, fingerprint)

	if p.cache != nil {
		if data, found := p.cache.Get(key); found {
			var report model.Report
			if err := json.Unmarshal(data, &report); err == nil {
				// Cache-served decisions are still decisions; the audit
				// trail must record every one handed to a caller.
				p.logDecision(&report)
				return &report, nil
			}
			// Corrupt entry: drop it and re-evaluate
			_ = p.cache.Delete(key)
		}
	}

	record := p.extractor.Extract(payload)

	// Pattern extraction came up empty: let the LLM fallback have a try.
	// A fallback failure is not fatal; the safe-default record proceeds.
	if adapters.IsFallback(record) && p.provider != nil {
		if err := p.limiter.Wait(ctx, p.provider.Name()); err == nil {
			if extracted, err := p.provider.ExtractClaim(ctx, payload); err == nil {
				record = extracted
			} else if p.config.Output.Verbose {
				fmt.Fprintf(os.Stderr, "Warning: LLM extraction failed: %v\n", err)
			}
		}
	}

	record.RiskHint = extract.RiskHint(record, table.RiskKeywords)

	report := p.adjudicate(record, table, fingerprint)

	if p.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}

	p.logDecision(report)

	return report, nil
}

// Adjudicate evaluates an already-extracted claim record against the
// active rule table.
func (p *Pipeline) Adjudicate(record model.ClaimRecord) *model.Report {
	table := p.store.Table()
	report := p.adjudicate(record, table, table.Fingerprint())
	p.logDecision(report)
	return report
}

// adjudicate is the pure evaluation core: one table pointer is used for the
// whole claim so a concurrent rule reload cannot mix two rule sets.
func (p *Pipeline) adjudicate(record model.ClaimRecord, table *model.RuleTable, fingerprint string) *model.Report {
	record = record.Sanitized()

	compliance := p.evaluator.Evaluate(record, table)
	final := p.engine.Decide(record, compliance)

	return &model.Report{
		Claim:            record,
		Compliance:       compliance,
		Decision:         final,
		RulesFingerprint: fingerprint,
		EvaluatedAt:      time.Now().UTC(),
	}
}

// logDecision appends to the audit log when enabled. Audit failures never
// block a decision.
func (p *Pipeline) logDecision(report *model.Report) {
	if p.auditLog == nil {
		return
	}
	if _, err := p.auditLog.Record(report); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audit log write failed: %v\n", err)
	}
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}
