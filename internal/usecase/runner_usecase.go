package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/user/audit-service/internal/entity"
	"github.com/user/audit-service/internal/repository"
	"github.com/user/audit-service/pkg/utils"
)

const (
	reportFileName     = "report.html"
	rawResultFileName  = "report.json"
	screenshotFileName = "screenshot.png"
)

// AuditRunner defines the interface for executing one (URL, device) audit.
type AuditRunner interface {
	// Run performs the audit and returns a success outcome, or an error
	// for launch/engine/persistence failures. Callers are expected to wrap
	// Run in failure isolation; it is fatal only for its own job.
	Run(ctx context.Context, spec entity.JobSpec) (*entity.AuditOutcome, error)
}

type auditRunner struct {
	browser    repository.BrowserRepository
	engine     repository.AuditEngineRepository
	resolver   *ObstructionResolver
	outputRoot string
	navTimeout time.Duration
	now        func() time.Time
}

// NewAuditRunner creates the audit runner use case.
func NewAuditRunner(
	browser repository.BrowserRepository,
	engine repository.AuditEngineRepository,
	resolver *ObstructionResolver,
	outputRoot string,
	navTimeout time.Duration,
) AuditRunner {
	return &auditRunner{
		browser:    browser,
		engine:     engine,
		resolver:   resolver,
		outputRoot: outputRoot,
		navTimeout: navTimeout,
		now:        time.Now,
	}
}

// Run launches an exclusive browser process for this job, runs the audit
// engine against it, persists the report artifacts, and captures a
// full-page screenshot in a second, independent browser context. The
// process is terminated on every exit path. A screenshot failure degrades
// the job (empty screenshot path) without failing it.
func (r *auditRunner) Run(ctx context.Context, spec entity.JobSpec) (*entity.AuditOutcome, error) {
	url := spec.Target.URL
	device := spec.Device

	proc, err := r.browser.LaunchProcess(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrBrowserLaunch, err)
	}
	defer func() {
		if killErr := proc.Kill(); killErr != nil {
			slog.Warn("Failed to terminate browser process", "url", url, "device", device.Name, "error", killErr)
		}
	}()

	cfg := entity.ConfigForDevice(device)

	result, err := r.engine.Run(ctx, url, proc.Port(), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrEngineFailed, err)
	}

	outDir := filepath.Join(r.outputRoot, device.Name, utils.SlugifyURL(url), utils.TimestampDir(r.now()))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	reportPath := filepath.Join(outDir, reportFileName)
	if err := os.WriteFile(reportPath, result.ReportHTML, 0o644); err != nil {
		return nil, fmt.Errorf("failed to persist report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, rawResultFileName), result.RawJSON, 0o644); err != nil {
		return nil, fmt.Errorf("failed to persist raw result: %w", err)
	}

	screenshotPath := r.captureScreenshot(ctx, spec, outDir)

	scores := entity.Scores{
		Performance:   roundScore(result.Scores[entity.CategoryPerformance]),
		Accessibility: roundScore(result.Scores[entity.CategoryAccessibility]),
		BestPractices: roundScore(result.Scores[entity.CategoryBestPractices]),
		SEO:           roundScore(result.Scores[entity.CategorySEO]),
	}

	return entity.NewSuccessOutcome(reportPath, screenshotPath, scores), nil
}

// captureScreenshot opens a fresh browser context with the device's
// viewport and user agent, dismisses obstructions, and captures a
// full-page screenshot. Best effort: on any error it logs a warning and
// returns an empty path.
func (r *auditRunner) captureScreenshot(ctx context.Context, spec entity.JobSpec, outDir string) string {
	url := spec.Target.URL
	device := spec.Device

	page, err := r.browser.NewPage(ctx, repository.PageOptions{
		Width:       device.Width,
		Height:      device.Height,
		ScaleFactor: device.ScaleFactor,
		Mobile:      device.Mobile,
		UserAgent:   device.UserAgent,
	})
	if err != nil {
		slog.Warn("Screenshot skipped: failed to open browser context", "url", url, "device", device.Name, "error", err)
		return ""
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("Failed to close screenshot context", "url", url, "device", device.Name, "error", closeErr)
		}
	}()

	if err := page.Navigate(ctx, url, r.navTimeout); err != nil {
		slog.Warn("Screenshot skipped: navigation failed", "url", url, "device", device.Name, "error", err)
		return ""
	}

	r.resolver.Resolve(ctx, page)

	path := filepath.Join(outDir, screenshotFileName)
	if err := page.Screenshot(ctx, path); err != nil {
		slog.Warn("Screenshot capture failed", "url", url, "device", device.Name, "error", err)
		return ""
	}

	return path
}

// roundScore converts a fractional 0.0-1.0 score to the nearest integer
// percentage.
func roundScore(fraction float64) int {
	return int(math.Round(fraction * 100))
}
