package repository

import (
	"context"

	"github.com/user/audit-service/internal/entity"
)

// EngineResult is the raw output of one audit engine invocation: fractional
// category scores plus the rendered and raw report documents.
type EngineResult struct {
	// Scores maps category id to a fractional score in [0.0, 1.0].
	Scores     map[string]float64
	ReportHTML []byte
	RawJSON    []byte
}

// AuditEngineRepository defines the contract for the external audit
// engine. The engine attaches to an already-running browser process via
// its DevTools port; it never owns the process lifecycle.
type AuditEngineRepository interface {
	// Run audits url through the browser listening on port, configured per
	// cfg. Returns the scores and report documents, or an error.
	Run(ctx context.Context, url string, port int, cfg entity.AuditConfig) (*EngineResult, error)
}
