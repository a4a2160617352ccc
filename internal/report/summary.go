// Package report renders the batch-level summary artifacts from a
// completed result ledger.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/audit-service/internal/entity"
)

const (
	summaryJSONName = "summary.json"
	summaryDocName  = "summary.md"
)

// Summary is the structured batch-level record.
type Summary struct {
	RunID      string               `json:"run_id"`
	URLsTested int                  `json:"urls_tested"`
	Jobs       int                  `json:"jobs"`
	Succeeded  int                  `json:"succeeded"`
	Failed     int                  `json:"failed"`
	Entries    []entity.LedgerEntry `json:"entries"`
}

// Reporter writes the summary artifacts. Stateless; safe to reuse.
type Reporter struct{}

// NewReporter creates a summary reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Write renders the ledger into summary.json and summary.md under
// outputRoot. Pure function of the ledger aside from the two file writes.
func (r *Reporter) Write(ledger *entity.ResultLedger, outputRoot string) error {
	summary := Build(ledger)

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputRoot, summaryJSONName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write structured summary: %w", err)
	}

	doc := RenderDocument(ledger, summary)
	if err := os.WriteFile(filepath.Join(outputRoot, summaryDocName), []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write summary document: %w", err)
	}
	return nil
}

// Build computes the structured summary from the ledger. Every URL is
// audited once per device profile, so the URL count is entries divided by
// the profile count.
func Build(ledger *entity.ResultLedger) Summary {
	summary := Summary{
		RunID:   ledger.RunID,
		Jobs:    ledger.Len(),
		Entries: ledger.Entries,
	}
	if profiles := len(entity.Profiles()); profiles > 0 {
		summary.URLsTested = ledger.Len() / profiles
	}
	for _, entry := range ledger.Entries {
		if entry.Outcome.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary
}

// RenderDocument renders the human-readable summary.
func RenderDocument(ledger *entity.ResultLedger, summary Summary) string {
	var b strings.Builder

	b.WriteString("# Audit Batch Summary\n\n")
	fmt.Fprintf(&b, "Run ID: %s\n\n", ledger.RunID)
	fmt.Fprintf(&b, "URLs tested: %d\n\n", summary.URLsTested)
	fmt.Fprintf(&b, "Jobs: %d (succeeded: %d, failed: %d)\n\n", summary.Jobs, summary.Succeeded, summary.Failed)

	b.WriteString("| URL | Label | Device | Performance | Accessibility | Best Practices | SEO | Error |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, entry := range ledger.Entries {
		job := entry.Job
		if entry.Outcome.Success {
			s := entry.Outcome.Scores
			fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %d | %d | |\n",
				job.Target.URL, job.Target.Label, job.Device.Name,
				s.Performance, s.Accessibility, s.BestPractices, s.SEO)
		} else {
			fmt.Fprintf(&b, "| %s | %s | %s | - | - | - | - | %s |\n",
				job.Target.URL, job.Target.Label, job.Device.Name,
				strings.ReplaceAll(entry.Outcome.ErrorMessage, "|", "\\|"))
		}
	}

	return b.String()
}
