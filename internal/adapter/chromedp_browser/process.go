package chromedp_browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const portDiscoveryTimeout = 20 * time.Second

// chromeProcess is one exclusively-owned headless Chrome process with a
// discovered DevTools port.
type chromeProcess struct {
	cmd         *exec.Cmd
	port        int
	userDataDir string
}

func (p *chromeProcess) Port() int {
	return p.port
}

// Kill terminates the process, reaps it, and removes its throwaway
// profile directory.
func (p *chromeProcess) Kill() error {
	killErr := p.cmd.Process.Kill()
	// Reap regardless of kill outcome so the process table stays clean
	// across many sequential jobs.
	_ = p.cmd.Wait()
	rmErr := os.RemoveAll(p.userDataDir)
	if killErr != nil {
		return fmt.Errorf("failed to kill chrome process: %w", killErr)
	}
	return rmErr
}

// launchProcess starts Chrome with a throwaway profile and an OS-assigned
// DevTools port, then waits for the port to be published via the
// DevToolsActivePort file.
func launchProcess(ctx context.Context, chromePath string) (*chromeProcess, error) {
	userDataDir, err := os.MkdirTemp("", "auditor-chrome-")
	if err != nil {
		return nil, fmt.Errorf("failed to create chrome profile dir: %w", err)
	}

	cmd := exec.Command(chromePath,
		"--headless=new",
		"--no-sandbox",
		"--disable-gpu",
		"--disable-dev-shm-usage",
		"--remote-debugging-port=0",
		"--user-data-dir="+userDataDir,
		"about:blank",
	)
	if err := cmd.Start(); err != nil {
		_ = os.RemoveAll(userDataDir)
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	proc := &chromeProcess{cmd: cmd, userDataDir: userDataDir}

	port, err := waitForDevToolsPort(ctx, userDataDir)
	if err != nil {
		_ = proc.Kill()
		return nil, err
	}
	proc.port = port

	return proc, nil
}

// waitForDevToolsPort polls the DevToolsActivePort file Chrome writes into
// its profile directory. The first line holds the assigned port.
func waitForDevToolsPort(ctx context.Context, userDataDir string) (int, error) {
	portFile := filepath.Join(userDataDir, "DevToolsActivePort")
	deadline := time.Now().Add(portDiscoveryTimeout)

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		data, err := os.ReadFile(portFile)
		if err == nil {
			lines := strings.SplitN(strings.TrimSpace(string(data)), "\n", 2)
			port, convErr := strconv.Atoi(strings.TrimSpace(lines[0]))
			if convErr == nil && port > 0 {
				return port, nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return 0, errors.New("timed out waiting for chrome devtools port")
}

// resolveChromePath returns an explicit path unchanged, or searches PATH
// for the usual Chrome/Chromium binary names.
func resolveChromePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no chrome binary found in PATH; set CHROME_PATH")
}
