package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/audit-service/internal/entity"
)

// HistoryRepoImpl provides a concrete implementation for the
// HistoryRepository interface using PostgreSQL.
type HistoryRepoImpl struct {
	db *pgxpool.Pool
}

// NewHistoryRepo creates a new instance of HistoryRepoImpl.
func NewHistoryRepo(db *pgxpool.Pool) *HistoryRepoImpl {
	return &HistoryRepoImpl{db: db}
}

// EnsureSchema creates the audit_history table if it does not exist.
func (r *HistoryRepoImpl) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS audit_history (
			id BIGSERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			url TEXT NOT NULL,
			label TEXT NOT NULL,
			device TEXT NOT NULL,
			success BOOLEAN NOT NULL,
			performance INT,
			accessibility INT,
			best_practices INT,
			seo INT,
			report_path TEXT,
			screenshot_path TEXT,
			error_message TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`
	_, err := r.db.Exec(ctx, query)
	return err
}

// SaveEntry persists one ledger entry as a history row. Score columns are
// NULL for failure outcomes.
func (r *HistoryRepoImpl) SaveEntry(ctx context.Context, runID string, entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO audit_history
			(run_id, url, label, device, success, performance, accessibility, best_practices, seo, report_path, screenshot_path, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	var performance, accessibility, bestPractices, seo *int
	if entry.Outcome.Scores != nil {
		performance = &entry.Outcome.Scores.Performance
		accessibility = &entry.Outcome.Scores.Accessibility
		bestPractices = &entry.Outcome.Scores.BestPractices
		seo = &entry.Outcome.Scores.SEO
	}

	_, err := r.db.Exec(ctx, query,
		runID,
		entry.Job.Target.URL,
		entry.Job.Target.Label,
		entry.Job.Device.Name,
		entry.Outcome.Success,
		performance,
		accessibility,
		bestPractices,
		seo,
		entry.Outcome.ReportPath,
		entry.Outcome.ScreenshotPath,
		entry.Outcome.ErrorMessage,
	)
	return err
}
