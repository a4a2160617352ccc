package usecase

import (
	"context"
	"time"

	"github.com/user/audit-service/internal/entity"
	"github.com/user/audit-service/internal/repository"
)

// fakePage implements repository.Page with scripted visibility results.
type fakePage struct {
	visible       map[string]bool
	visibleErr    map[string]error
	clickErr      error
	navigateErr   error
	quiescentErr  error
	screenshotErr error

	visibleQueries []string
	clicks         []string
	navigated      []string
	screenshots    []string
	closed         bool
}

func (p *fakePage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	p.navigated = append(p.navigated, url)
	return p.navigateErr
}

func (p *fakePage) WaitQuiescent(ctx context.Context, timeout time.Duration) error {
	return p.quiescentErr
}

func (p *fakePage) IsVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	p.visibleQueries = append(p.visibleQueries, selector)
	if err, ok := p.visibleErr[selector]; ok {
		return false, err
	}
	return p.visible[selector], nil
}

func (p *fakePage) Click(ctx context.Context, selector string) error {
	if p.clickErr != nil {
		return p.clickErr
	}
	p.clicks = append(p.clicks, selector)
	return nil
}

func (p *fakePage) Screenshot(ctx context.Context, path string) error {
	if p.screenshotErr != nil {
		return p.screenshotErr
	}
	p.screenshots = append(p.screenshots, path)
	return nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

// fakeProcess implements repository.BrowserProcess and counts kills.
type fakeProcess struct {
	port  int
	kills int
}

func (p *fakeProcess) Port() int   { return p.port }
func (p *fakeProcess) Kill() error { p.kills++; return nil }

// fakeBrowser implements repository.BrowserRepository.
type fakeBrowser struct {
	proc      *fakeProcess
	launchErr error
	page      *fakePage
	pageErr   error
	launches  int
}

func (b *fakeBrowser) LaunchProcess(ctx context.Context) (repository.BrowserProcess, error) {
	b.launches++
	if b.launchErr != nil {
		return nil, b.launchErr
	}
	return b.proc, nil
}

func (b *fakeBrowser) NewPage(ctx context.Context, opts repository.PageOptions) (repository.Page, error) {
	if b.pageErr != nil {
		return nil, b.pageErr
	}
	return b.page, nil
}

// fakeEngine implements repository.AuditEngineRepository.
type fakeEngine struct {
	result  *repository.EngineResult
	err     error
	calls   int
	gotURL  string
	gotPort int
	gotCfg  entity.AuditConfig
}

func (e *fakeEngine) Run(ctx context.Context, url string, port int, cfg entity.AuditConfig) (*repository.EngineResult, error) {
	e.calls++
	e.gotURL = url
	e.gotPort = port
	e.gotCfg = cfg
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

// fakeRunner implements AuditRunner with per-job scripted failures keyed
// by "url|device".
type fakeRunner struct {
	failFor map[string]error
	calls   []string
}

func (r *fakeRunner) Run(ctx context.Context, spec entity.JobSpec) (*entity.AuditOutcome, error) {
	key := spec.Target.URL + "|" + spec.Device.Name
	r.calls = append(r.calls, key)
	if err, ok := r.failFor[key]; ok {
		return nil, err
	}
	return entity.NewSuccessOutcome("report.html", "screenshot.png", entity.Scores{
		Performance:   90,
		Accessibility: 85,
		BestPractices: 80,
		SEO:           100,
	}), nil
}

// fakeReporter implements SummaryReporter.
type fakeReporter struct {
	err    error
	calls  int
	ledger *entity.ResultLedger
}

func (r *fakeReporter) Write(ledger *entity.ResultLedger, outputRoot string) error {
	r.calls++
	r.ledger = ledger
	return r.err
}

// fakeHistory implements repository.HistoryRepository.
type fakeHistory struct {
	err   error
	saved []string
}

func (h *fakeHistory) SaveEntry(ctx context.Context, runID string, entry *entity.LedgerEntry) error {
	if h.err != nil {
		return h.err
	}
	h.saved = append(h.saved, entry.Job.Target.URL+"|"+entry.Job.Device.Name)
	return nil
}

// fakeScoreCache implements repository.ScoreCacheRepository.
type fakeScoreCache struct {
	store     map[string]*entity.Scores
	saveCalls int
}

func (c *fakeScoreCache) LastScores(ctx context.Context, url, device string) (*entity.Scores, error) {
	return c.store[url+"|"+device], nil
}

func (c *fakeScoreCache) SaveScores(ctx context.Context, url, device string, scores *entity.Scores, expiry time.Duration) error {
	c.saveCalls++
	if c.store == nil {
		c.store = make(map[string]*entity.Scores)
	}
	c.store[url+"|"+device] = scores
	return nil
}
