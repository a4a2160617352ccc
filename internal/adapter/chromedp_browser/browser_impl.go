package chromedp_browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/user/audit-service/internal/repository"
)

const (
	clickTimeout      = 5 * time.Second
	readyStatePoll    = 200 * time.Millisecond
	screenshotQuality = 90
)

// ChromedpBrowser implements the browser repository using chromedp for
// page contexts and a directly-managed Chrome process for the audit
// engine's DevTools port. Nothing is pooled: every process and context is
// scoped to a single job.
type ChromedpBrowser struct {
	chromePath string
}

// NewChromedpBrowser creates a browser adapter. chromePath may be empty,
// in which case the binary is located on PATH.
func NewChromedpBrowser(chromePath string) (repository.BrowserRepository, error) {
	path, err := resolveChromePath(chromePath)
	if err != nil {
		return nil, err
	}
	return &ChromedpBrowser{chromePath: path}, nil
}

// LaunchProcess starts an exclusive headless Chrome with a reachable
// DevTools port.
func (b *ChromedpBrowser) LaunchProcess(ctx context.Context) (repository.BrowserProcess, error) {
	return launchProcess(ctx, b.chromePath)
}

// NewPage opens a page in a fresh chromedp browser context with the
// requested device emulation applied.
func (b *ChromedpBrowser) NewPage(ctx context.Context, opts repository.PageOptions) (repository.Page, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(b.chromePath),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)

	// The first Run starts the browser and applies device emulation.
	err := chromedp.Run(taskCtx,
		emulation.SetDeviceMetricsOverride(int64(opts.Width), int64(opts.Height), opts.ScaleFactor, opts.Mobile),
		emulation.SetUserAgentOverride(opts.UserAgent),
	)
	if err != nil {
		taskCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to open browser context: %w", err)
	}

	return &chromedpPage{ctx: taskCtx, taskCancel: taskCancel, allocCancel: allocCancel}, nil
}

type chromedpPage struct {
	ctx         context.Context
	taskCancel  context.CancelFunc
	allocCancel context.CancelFunc
}

func (p *chromedpPage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	navCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrNavigation, err)
	}
	return nil
}

// WaitQuiescent polls document.readyState until the page reports complete,
// then allows a short settle for late resources. Returns the context error
// on timeout; callers typically proceed anyway.
func (p *chromedpPage) WaitQuiescent(ctx context.Context, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	return chromedp.Run(waitCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		for {
			var state string
			if err := chromedp.Evaluate(`document.readyState`, &state).Do(ctx); err != nil {
				return err
			}
			if state == "complete" {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(readyStatePoll):
			}
		}
	}))
}

// IsVisible reports whether selector matches a visible element within
// timeout. A timeout reads as "not visible", not as an error; other
// failures (detached frame, bad selector) surface to the caller.
func (p *chromedpPage) IsVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	visCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	err := chromedp.Run(visCtx, chromedp.WaitVisible(selector, chromedp.BySearch))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *chromedpPage) Click(ctx context.Context, selector string) error {
	clickCtx, cancel := context.WithTimeout(p.ctx, clickTimeout)
	defer cancel()

	return chromedp.Run(clickCtx, chromedp.Click(selector, chromedp.BySearch))
}

func (p *chromedpPage) Screenshot(ctx context.Context, path string) error {
	var buf []byte
	if err := chromedp.Run(p.ctx, chromedp.FullScreenshot(&buf, screenshotQuality)); err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return os.WriteFile(path, buf, 0o644)
}

// Close tears down the page context and its browser process.
func (p *chromedpPage) Close() error {
	p.taskCancel()
	p.allocCancel()
	return nil
}
