package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/user/audit-service/internal/entity"
	"github.com/user/audit-service/internal/repository"
	"github.com/user/audit-service/pkg/metrics"
)

const (
	defaultQuiescentTimeout = 10 * time.Second
	candidateTimeout        = 2 * time.Second
	settleDelay             = time.Second
	indicatorTimeout        = 500 * time.Millisecond
)

// consentCandidates are age/profession gate dismissals, in priority order.
// The first visible match wins; later entries are never evaluated.
var consentCandidates = []entity.ObstructionCandidate{
	{Category: entity.ObstructionConsent, Selector: `//button[contains(., "I am a healthcare professional")]`, Description: "profession gate"},
	{Category: entity.ObstructionConsent, Selector: `//button[contains(., "healthcare professional")]`, Description: "profession gate, short label"},
	{Category: entity.ObstructionConsent, Selector: `//button[contains(., "I am over 18")]`, Description: "age gate"},
	{Category: entity.ObstructionConsent, Selector: `//button[contains(., "Yes, continue")]`, Description: "generic confirmation"},
	{Category: entity.ObstructionConsent, Selector: `//a[contains(., "Enter site")]`, Description: "enter-site gate link"},
	{Category: entity.ObstructionConsent, Selector: `//button[contains(., "Confirm")]`, Description: "generic confirm button"},
}

// cookieCandidates are cookie banner dismissals, in priority order.
// Vendor-specific selectors come first; text heuristics are fallbacks.
var cookieCandidates = []entity.ObstructionCandidate{
	{Category: entity.ObstructionCookie, Selector: `#onetrust-accept-btn-handler`, Description: "OneTrust accept button"},
	{Category: entity.ObstructionCookie, Selector: `#didomi-notice-agree-button`, Description: "Didomi agree button"},
	{Category: entity.ObstructionCookie, Selector: `.cc-allow`, Description: "cookieconsent allow button"},
	{Category: entity.ObstructionCookie, Selector: `//button[contains(., "Accept all")]`, Description: "accept-all text button"},
	{Category: entity.ObstructionCookie, Selector: `//button[contains(., "Accept All Cookies")]`, Description: "accept-all-cookies text button"},
	{Category: entity.ObstructionCookie, Selector: `//button[contains(., "Allow all")]`, Description: "allow-all text button"},
	{Category: entity.ObstructionCookie, Selector: `//button[contains(., "I agree")]`, Description: "agree text button"},
}

// obstructionIndicators is the observation-only catalog: every dismissal
// selector plus generic dialog/banner markers.
var obstructionIndicators = buildIndicators()

func buildIndicators() []entity.ObstructionCandidate {
	indicators := make([]entity.ObstructionCandidate, 0, len(consentCandidates)+len(cookieCandidates)+4)
	indicators = append(indicators, consentCandidates...)
	indicators = append(indicators, cookieCandidates...)
	indicators = append(indicators,
		entity.ObstructionCandidate{Category: entity.ObstructionConsent, Selector: `[role="dialog"]`, Description: "generic dialog"},
		entity.ObstructionCandidate{Category: entity.ObstructionConsent, Selector: `[aria-modal="true"]`, Description: "generic modal"},
		entity.ObstructionCandidate{Category: entity.ObstructionCookie, Selector: `#cookie-banner`, Description: "generic cookie banner id"},
		entity.ObstructionCandidate{Category: entity.ObstructionCookie, Selector: `.cookie-banner`, Description: "generic cookie banner class"},
	)
	return indicators
}

// ObstructionResolver dismisses pre-audit page obstructions (age and
// profession gates, cookie banners) on a best-effort basis. Resolve never
// fails its caller: every internal error is swallowed and logged, since a
// page without obstructions is the common case, not an error.
type ObstructionResolver struct {
	consent          []entity.ObstructionCandidate
	cookie           []entity.ObstructionCandidate
	indicators       []entity.ObstructionCandidate
	quiescentTimeout time.Duration
	candidateTimeout time.Duration
	settleDelay      time.Duration
}

// NewObstructionResolver creates a resolver over the built-in catalogs.
func NewObstructionResolver(quiescentTimeout time.Duration) *ObstructionResolver {
	if quiescentTimeout <= 0 {
		quiescentTimeout = defaultQuiescentTimeout
	}
	return &ObstructionResolver{
		consent:          consentCandidates,
		cookie:           cookieCandidates,
		indicators:       obstructionIndicators,
		quiescentTimeout: quiescentTimeout,
		candidateTimeout: candidateTimeout,
		settleDelay:      settleDelay,
	}
}

// Resolve waits for the page to settle, then runs the consent phase and
// the cookie phase, in that order. Both phases always run; each dismisses
// at most one obstruction. Always returns normally.
func (r *ObstructionResolver) Resolve(ctx context.Context, page repository.Page) {
	if err := page.WaitQuiescent(ctx, r.quiescentTimeout); err != nil {
		// Heavy pages routinely never go fully idle. Proceed anyway.
		slog.Debug("Page did not reach quiescence before timeout", "error", err)
	}

	r.runPhase(ctx, page, r.consent)
	r.runPhase(ctx, page, r.cookie)
}

// runPhase walks one catalog in declaration order and clicks the first
// visible match. Candidate-level errors count as "no match" and never
// propagate.
func (r *ObstructionResolver) runPhase(ctx context.Context, page repository.Page, catalog []entity.ObstructionCandidate) {
	for _, candidate := range catalog {
		visible, err := page.IsVisible(ctx, candidate.Selector, r.candidateTimeout)
		if err != nil {
			slog.Debug("Obstruction candidate query failed, skipping",
				"category", candidate.Category, "description", candidate.Description, "error", err)
			continue
		}
		if !visible {
			continue
		}

		if err := page.Click(ctx, candidate.Selector); err != nil {
			slog.Warn("Failed to click obstruction candidate",
				"category", candidate.Category, "description", candidate.Description, "error", err)
			return
		}

		slog.Info("Dismissed page obstruction",
			"category", candidate.Category, "description", candidate.Description)
		metrics.ObstructionsDismissed.WithLabelValues(string(candidate.Category)).Inc()

		// Give the obstruction time to animate out before the caller
		// touches the page again.
		select {
		case <-ctx.Done():
		case <-time.After(r.settleDelay):
		}
		return
	}
}

// HasObstruction reports whether any known obstruction indicator is
// visible on the page. Pure observation: it never clicks, and any internal
// error reads as false.
func (r *ObstructionResolver) HasObstruction(ctx context.Context, page repository.Page) bool {
	for _, indicator := range r.indicators {
		visible, err := page.IsVisible(ctx, indicator.Selector, indicatorTimeout)
		if err != nil {
			continue
		}
		if visible {
			return true
		}
	}
	return false
}
