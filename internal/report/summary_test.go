package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/audit-service/internal/entity"
)

func sampleLedger() *entity.ResultLedger {
	ledger := &entity.ResultLedger{RunID: "run-1"}
	target := entity.PageTarget{URL: "https://a.test", Label: "A"}

	ledger.Append(
		entity.JobSpec{Target: target, Device: entity.Desktop},
		entity.NewSuccessOutcome("report.html", "screenshot.png", entity.Scores{
			Performance: 91, Accessibility: 88, BestPractices: 75, SEO: 100,
		}),
	)
	ledger.Append(
		entity.JobSpec{Target: target, Device: entity.Mobile},
		entity.NewFailureOutcome("browser process failed to launch"),
	)
	return ledger
}

func TestBuild(t *testing.T) {
	summary := Build(sampleLedger())

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 2, summary.Jobs)
	assert.Equal(t, 1, summary.URLsTested)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestRenderDocument(t *testing.T) {
	ledger := sampleLedger()
	doc := RenderDocument(ledger, Build(ledger))

	assert.Contains(t, doc, "URLs tested: 1")
	assert.Contains(t, doc, "| https://a.test | A | desktop | 91 | 88 | 75 | 100 | |")
	assert.Contains(t, doc, "browser process failed to launch")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	reporter := NewReporter()

	require.NoError(t, reporter.Write(sampleLedger(), dir))

	data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	require.NoError(t, err)

	var summary Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 2, summary.Jobs)
	assert.Len(t, summary.Entries, 2)

	doc, err := os.ReadFile(filepath.Join(dir, "summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "Audit Batch Summary")
}

func TestWriteEmptyLedger(t *testing.T) {
	dir := t.TempDir()
	ledger := &entity.ResultLedger{RunID: "run-empty"}

	require.NoError(t, NewReporter().Write(ledger, dir))

	summary := Build(ledger)
	assert.Zero(t, summary.Jobs)
	assert.Zero(t, summary.URLsTested)
}
