package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/user/audit-service/internal/entity"
	"github.com/user/audit-service/internal/repository"
	"github.com/user/audit-service/pkg/metrics"
)

const ledgerFileName = "ledger.json"

// SummaryReporter renders a completed ledger into the batch-level summary
// artifacts.
type SummaryReporter interface {
	Write(ledger *entity.ResultLedger, outputRoot string) error
}

// BatchOrchestrator defines the interface for running a full audit batch.
type BatchOrchestrator interface {
	// RunBatch audits every target under every device profile, strictly
	// sequentially, and returns the completed ledger. Job failures are
	// recorded as ledger entries; only batch-level persistence or summary
	// failures return an error.
	RunBatch(ctx context.Context, targets []entity.PageTarget) (*entity.ResultLedger, error)
}

type batchOrchestrator struct {
	runner      AuditRunner
	reporter    SummaryReporter
	history     repository.HistoryRepository    // optional, may be nil
	scoreCache  repository.ScoreCacheRepository // optional, may be nil
	outputRoot  string
	jobDelay    time.Duration
	cacheExpiry time.Duration
}

// NewBatchOrchestrator creates the batch orchestration use case. history
// and scoreCache are optional enrichment sinks; pass nil to disable them.
func NewBatchOrchestrator(
	runner AuditRunner,
	reporter SummaryReporter,
	history repository.HistoryRepository,
	scoreCache repository.ScoreCacheRepository,
	outputRoot string,
	jobDelay time.Duration,
	cacheExpiry time.Duration,
) BatchOrchestrator {
	return &batchOrchestrator{
		runner:      runner,
		reporter:    reporter,
		history:     history,
		scoreCache:  scoreCache,
		outputRoot:  outputRoot,
		jobDelay:    jobDelay,
		cacheExpiry: cacheExpiry,
	}
}

// RunBatch iterates the target list in input order and, for each target,
// audits desktop before mobile. A failure in one job has no effect on the
// next: runner errors are converted into failure outcomes at this
// boundary, never re-thrown. The only cross-job state is the append-only
// ledger and the per-job output subtrees.
func (o *batchOrchestrator) RunBatch(ctx context.Context, targets []entity.PageTarget) (*entity.ResultLedger, error) {
	ledger := &entity.ResultLedger{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	slog.Info("Starting audit batch", "run_id", ledger.RunID, "targets", len(targets))

	for _, target := range targets {
		for _, device := range entity.Profiles() {
			spec := entity.JobSpec{Target: target, Device: device}
			ledger.Append(spec, o.runJob(ctx, spec))

			if o.jobDelay > 0 {
				// Optional pacing between heavyweight browser jobs.
				select {
				case <-ctx.Done():
				case <-time.After(o.jobDelay):
				}
			}
		}
	}

	ledger.CompletedAt = time.Now().UTC()

	if err := o.persistLedger(ledger); err != nil {
		return nil, fmt.Errorf("failed to persist ledger: %w", err)
	}
	if err := o.reporter.Write(ledger, o.outputRoot); err != nil {
		return nil, fmt.Errorf("failed to render summary: %w", err)
	}

	o.fanOutToSinks(ctx, ledger)

	slog.Info("Audit batch complete", "run_id", ledger.RunID, "entries", ledger.Len())
	return ledger, nil
}

// runJob executes a single job with failure isolation: any runner error is
// converted into a failure outcome here and goes no further.
func (o *batchOrchestrator) runJob(ctx context.Context, spec entity.JobSpec) *entity.AuditOutcome {
	url := spec.Target.URL
	device := spec.Device.Name

	slog.Info("Auditing", "url", url, "label", spec.Target.Label, "device", device)
	metrics.JobsInFlight.Inc()
	startTime := time.Now()

	outcome, err := o.runner.Run(ctx, spec)

	duration := time.Since(startTime)
	metrics.JobsInFlight.Dec()
	metrics.AuditDuration.WithLabelValues(device).Observe(duration.Seconds())

	if err != nil {
		metrics.AuditsTotal.WithLabelValues("failure", device).Inc()
		slog.Error("Audit failed", "url", url, "device", device, "error", err)
		return entity.NewFailureOutcome(err.Error())
	}

	metrics.AuditsTotal.WithLabelValues("success", device).Inc()
	slog.Info("Audit succeeded",
		"url", url,
		"device", device,
		"duration_ms", duration.Milliseconds(),
		"performance", outcome.Scores.Performance,
		"accessibility", outcome.Scores.Accessibility,
		"best_practices", outcome.Scores.BestPractices,
		"seo", outcome.Scores.SEO,
	)

	o.checkRegression(ctx, spec, outcome.Scores)
	return outcome
}

// checkRegression compares fresh scores against the cached previous run
// and logs performance drops. Cache problems are warnings only.
func (o *batchOrchestrator) checkRegression(ctx context.Context, spec entity.JobSpec, scores *entity.Scores) {
	if o.scoreCache == nil {
		return
	}

	url := spec.Target.URL
	device := spec.Device.Name

	previous, err := o.scoreCache.LastScores(ctx, url, device)
	if err != nil {
		slog.Warn("Failed to read cached scores", "url", url, "device", device, "error", err)
	} else if previous != nil && scores.Performance < previous.Performance {
		slog.Warn("Performance score regressed since last run",
			"url", url, "device", device,
			"previous", previous.Performance, "current", scores.Performance)
	}

	if err := o.scoreCache.SaveScores(ctx, url, device, scores, o.cacheExpiry); err != nil {
		slog.Warn("Failed to cache scores", "url", url, "device", device, "error", err)
	}
}

func (o *batchOrchestrator) persistLedger(ledger *entity.ResultLedger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(o.outputRoot, ledgerFileName), data, 0o644)
}

// fanOutToSinks pushes ledger entries to the optional history store.
// Sink failures never fail the batch.
func (o *batchOrchestrator) fanOutToSinks(ctx context.Context, ledger *entity.ResultLedger) {
	if o.history == nil {
		return
	}
	for i := range ledger.Entries {
		entry := &ledger.Entries[i]
		if err := o.history.SaveEntry(ctx, ledger.RunID, entry); err != nil {
			slog.Warn("Failed to persist ledger entry to history store",
				"url", entry.Job.Target.URL, "device", entry.Job.Device.Name, "error", err)
		}
	}
}
