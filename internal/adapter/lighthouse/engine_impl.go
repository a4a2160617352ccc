// Package lighthouse wraps the Lighthouse CLI as the audit engine. The CLI
// attaches to an already-running Chrome over its DevTools port, so the
// engine never owns a browser lifecycle.
package lighthouse

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/user/audit-service/internal/entity"
	"github.com/user/audit-service/internal/repository"
)

const stderrTailLimit = 512

// Runner implements the audit engine repository by shelling out to the
// lighthouse binary.
type Runner struct {
	binPath string
	timeout time.Duration
}

// NewRunner creates a lighthouse engine adapter.
func NewRunner(binPath string, timeout time.Duration) repository.AuditEngineRepository {
	return &Runner{binPath: binPath, timeout: timeout}
}

// Run audits url through the Chrome listening on port. Lighthouse writes
// its JSON and HTML reports into a scratch directory; both are read back
// as bytes so the caller owns all persistence.
func (r *Runner) Run(ctx context.Context, url string, port int, cfg entity.AuditConfig) (*repository.EngineResult, error) {
	scratchDir, err := os.MkdirTemp("", "lighthouse-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	outBase := filepath.Join(scratchDir, "report")

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.binPath, buildArgs(url, port, cfg, outBase)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("lighthouse run failed: %w: %s", err, stderrTail(stderr.Bytes()))
	}

	// The CLI appends .report.<format> to the output base.
	rawJSON, err := os.ReadFile(outBase + ".report.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read lighthouse json output: %w", err)
	}
	reportHTML, err := os.ReadFile(outBase + ".report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to read lighthouse html output: %w", err)
	}

	scores := make(map[string]float64, len(cfg.Categories))
	for _, category := range cfg.Categories {
		value := gjson.GetBytes(rawJSON, "categories."+category+".score")
		if !value.Exists() {
			return nil, fmt.Errorf("lighthouse result missing score for category %q", category)
		}
		scores[category] = value.Float()
	}

	return &repository.EngineResult{
		Scores:     scores,
		ReportHTML: reportHTML,
		RawJSON:    rawJSON,
	}, nil
}

func buildArgs(url string, port int, cfg entity.AuditConfig, outBase string) []string {
	return []string{
		url,
		fmt.Sprintf("--port=%d", port),
		"--output=json",
		"--output=html",
		"--output-path=" + outBase,
		"--only-categories=" + strings.Join(cfg.Categories, ","),
		"--form-factor=" + cfg.FormFactor,
		fmt.Sprintf("--screenEmulation.mobile=%t", cfg.ScreenEmulation.Mobile),
		fmt.Sprintf("--screenEmulation.width=%d", cfg.ScreenEmulation.Width),
		fmt.Sprintf("--screenEmulation.height=%d", cfg.ScreenEmulation.Height),
		fmt.Sprintf("--screenEmulation.deviceScaleFactor=%g", cfg.ScreenEmulation.DeviceScaleFactor),
		fmt.Sprintf("--throttling.rttMs=%d", cfg.Throttling.RTTMs),
		fmt.Sprintf("--throttling.throughputKbps=%g", cfg.Throttling.ThroughputKbps),
		fmt.Sprintf("--throttling.cpuSlowdownMultiplier=%g", cfg.Throttling.CPUSlowdownMultiplier),
		"--emulatedUserAgent=" + cfg.UserAgent,
		"--quiet",
	}
}

func stderrTail(stderr []byte) string {
	s := strings.TrimSpace(string(stderr))
	if len(s) > stderrTailLimit {
		s = "..." + s[len(s)-stderrTailLimit:]
	}
	return s
}
