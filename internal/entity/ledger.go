package entity

import "time"

// LedgerEntry pairs one job with its outcome.
type LedgerEntry struct {
	Job     JobSpec       `json:"job"`
	Outcome *AuditOutcome `json:"outcome"`
}

// ResultLedger is the ordered, append-only record of one batch run.
// Insertion order equals execution order: URL-major, desktop before
// mobile. Single-writer; owned by the orchestrator during the run and
// handed to the reporter read-only afterwards.
type ResultLedger struct {
	RunID       string        `json:"run_id"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
	Entries     []LedgerEntry `json:"entries"`
}

// Append records the outcome for a job at the end of the ledger.
func (l *ResultLedger) Append(job JobSpec, outcome *AuditOutcome) {
	l.Entries = append(l.Entries, LedgerEntry{Job: job, Outcome: outcome})
}

// Len returns the number of recorded entries.
func (l *ResultLedger) Len() int {
	return len(l.Entries)
}
