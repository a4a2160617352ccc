package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/user/audit-service/internal/entity"
)

func testResolver(consent, cookie []entity.ObstructionCandidate) *ObstructionResolver {
	return &ObstructionResolver{
		consent:          consent,
		cookie:           cookie,
		indicators:       append(append([]entity.ObstructionCandidate{}, consent...), cookie...),
		quiescentTimeout: 50 * time.Millisecond,
		candidateTimeout: 10 * time.Millisecond,
		settleDelay:      time.Millisecond,
	}
}

func consentCandidate(selector string) entity.ObstructionCandidate {
	return entity.ObstructionCandidate{Category: entity.ObstructionConsent, Selector: selector, Description: selector}
}

func cookieCandidate(selector string) entity.ObstructionCandidate {
	return entity.ObstructionCandidate{Category: entity.ObstructionCookie, Selector: selector, Description: selector}
}

func TestResolveFirstMatchWins(t *testing.T) {
	resolver := testResolver(
		[]entity.ObstructionCandidate{consentCandidate("#first"), consentCandidate("#second")},
		nil,
	)
	page := &fakePage{visible: map[string]bool{"#first": true, "#second": true}}

	resolver.Resolve(context.Background(), page)

	assert.Equal(t, []string{"#first"}, page.clicks)
	// The phase must stop after the first match; #second is never queried.
	assert.Equal(t, []string{"#first"}, page.visibleQueries)
}

func TestResolveRunsBothPhasesIndependently(t *testing.T) {
	resolver := testResolver(
		[]entity.ObstructionCandidate{consentCandidate("#gate")},
		[]entity.ObstructionCandidate{cookieCandidate("#cookie")},
	)
	page := &fakePage{visible: map[string]bool{"#cookie": true}}

	resolver.Resolve(context.Background(), page)

	// No consent match, but the cookie phase still ran and dismissed.
	assert.Equal(t, []string{"#cookie"}, page.clicks)
	assert.Equal(t, []string{"#gate", "#cookie"}, page.visibleQueries)
}

func TestResolveDismissesOnePerCategory(t *testing.T) {
	resolver := testResolver(
		[]entity.ObstructionCandidate{consentCandidate("#gate")},
		[]entity.ObstructionCandidate{cookieCandidate("#cookie1"), cookieCandidate("#cookie2")},
	)
	page := &fakePage{visible: map[string]bool{"#gate": true, "#cookie1": true, "#cookie2": true}}

	resolver.Resolve(context.Background(), page)

	assert.Equal(t, []string{"#gate", "#cookie1"}, page.clicks)
}

func TestResolveSkipsErroringCandidates(t *testing.T) {
	resolver := testResolver(
		[]entity.ObstructionCandidate{consentCandidate("#broken"), consentCandidate("#works")},
		nil,
	)
	page := &fakePage{
		visible:    map[string]bool{"#works": true},
		visibleErr: map[string]error{"#broken": errors.New("node detached")},
	}

	resolver.Resolve(context.Background(), page)

	assert.Equal(t, []string{"#works"}, page.clicks)
}

func TestResolveNoMatchesReturnsNormally(t *testing.T) {
	resolver := testResolver(
		[]entity.ObstructionCandidate{consentCandidate("#gate")},
		[]entity.ObstructionCandidate{cookieCandidate("#cookie")},
	)
	page := &fakePage{}

	done := make(chan struct{})
	go func() {
		resolver.Resolve(context.Background(), page)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Resolve did not return in bounded time")
	}
	assert.Empty(t, page.clicks)
}

func TestResolveProceedsAfterQuiescenceTimeout(t *testing.T) {
	resolver := testResolver(
		[]entity.ObstructionCandidate{consentCandidate("#gate")},
		nil,
	)
	page := &fakePage{
		quiescentErr: context.DeadlineExceeded,
		visible:      map[string]bool{"#gate": true},
	}

	resolver.Resolve(context.Background(), page)

	assert.Equal(t, []string{"#gate"}, page.clicks)
}

func TestResolveClickFailureStopsPhaseQuietly(t *testing.T) {
	resolver := testResolver(
		[]entity.ObstructionCandidate{consentCandidate("#gate"), consentCandidate("#other")},
		[]entity.ObstructionCandidate{cookieCandidate("#cookie")},
	)
	page := &fakePage{
		visible:  map[string]bool{"#gate": true, "#cookie": true},
		clickErr: errors.New("node is not clickable"),
	}

	resolver.Resolve(context.Background(), page)

	// Click errors never propagate and never cascade to later candidates
	// of the same category.
	assert.NotContains(t, page.visibleQueries, "#other")
}

func TestHasObstruction(t *testing.T) {
	resolver := testResolver(
		[]entity.ObstructionCandidate{consentCandidate("#gate")},
		[]entity.ObstructionCandidate{cookieCandidate("#cookie")},
	)

	page := &fakePage{visible: map[string]bool{"#cookie": true}}
	assert.True(t, resolver.HasObstruction(context.Background(), page))
	assert.Empty(t, page.clicks, "HasObstruction must never click")

	clean := &fakePage{}
	assert.False(t, resolver.HasObstruction(context.Background(), clean))

	broken := &fakePage{visibleErr: map[string]error{
		"#gate":   errors.New("boom"),
		"#cookie": errors.New("boom"),
	}}
	assert.False(t, resolver.HasObstruction(context.Background(), broken))
}

func TestDefaultCatalogsOrdering(t *testing.T) {
	resolver := NewObstructionResolver(0)

	assert.NotEmpty(t, resolver.consent)
	assert.NotEmpty(t, resolver.cookie)
	for _, c := range resolver.consent {
		assert.Equal(t, entity.ObstructionConsent, c.Category)
	}
	for _, c := range resolver.cookie {
		assert.Equal(t, entity.ObstructionCookie, c.Category)
	}
	// The indicator catalog is a superset of both dismissal catalogs.
	assert.GreaterOrEqual(t, len(resolver.indicators), len(resolver.consent)+len(resolver.cookie))
	assert.Equal(t, defaultQuiescentTimeout, resolver.quiescentTimeout)
}
