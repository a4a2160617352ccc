package repository

import "errors"

var (
	// ErrBrowserLaunch indicates the headless browser process failed to
	// start or never exposed a DevTools port.
	ErrBrowserLaunch = errors.New("browser process failed to launch")
	// ErrEngineFailed indicates the audit engine invocation failed.
	ErrEngineFailed = errors.New("audit engine invocation failed")
	// ErrNavigation indicates a page failed to load within its timeout.
	ErrNavigation = errors.New("page navigation failed")
)
