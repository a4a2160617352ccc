package repository

import (
	"context"

	"github.com/user/audit-service/internal/entity"
)

// HistoryRepository defines the interface for the optional long-term audit
// history store. Writes are enrichment only: callers log failures and move
// on, they never fail a job over them.
type HistoryRepository interface {
	// SaveEntry persists one ledger entry under the batch run id.
	SaveEntry(ctx context.Context, runID string, entry *entity.LedgerEntry) error
}
