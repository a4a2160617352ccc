package repository

import (
	"context"
	"time"
)

// BrowserProcess is one launched headless browser process. It is owned
// exclusively by a single audit job and must be killed before the job
// returns, on every exit path.
type BrowserProcess interface {
	// Port returns the DevTools debugging port the process listens on.
	Port() int
	// Kill terminates the process and releases its resources.
	Kill() error
}

// PageOptions configures an isolated page context.
type PageOptions struct {
	Width       int
	Height      int
	ScaleFactor float64
	Mobile      bool
	UserAgent   string
}

// Page is a live page handle inside an isolated browser context.
type Page interface {
	// Navigate loads the URL, bounded by timeout.
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	// WaitQuiescent waits until the page settles, bounded by timeout.
	WaitQuiescent(ctx context.Context, timeout time.Duration) error
	// IsVisible reports whether an element matching selector exists and is
	// visible, polling up to timeout.
	IsVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error)
	// Click clicks the first element matching selector.
	Click(ctx context.Context, selector string) error
	// Screenshot captures a full-page screenshot to path.
	Screenshot(ctx context.Context, path string) error
	// Close tears down the page and its browser context.
	Close() error
}

// BrowserRepository defines the contract for the browser automation
// mechanism used by audit jobs.
type BrowserRepository interface {
	// LaunchProcess starts an exclusive headless browser process with a
	// reachable DevTools port.
	LaunchProcess(ctx context.Context) (BrowserProcess, error)
	// NewPage opens a page in a fresh, independent browser context
	// configured per opts.
	NewPage(ctx context.Context, opts PageOptions) (Page, error)
}
