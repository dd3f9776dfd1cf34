package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// Launcher opens the viewer in the user's browser
type Launcher struct {
	browsers []Browser
}

// Browser describes how to open a URL with one command
type Browser struct {
	Name    string
	Command string
	Args    func(url string) []string
}

// NewLauncher creates a launcher for the current platform. A command named
// by the BROWSER environment variable is tried first.
func NewLauncher() *Launcher {
	browsers := detectBrowsers(runtime.GOOS)

	if custom := os.Getenv("BROWSER"); custom != "" {
		browsers = append([]Browser{{
			Name:    custom,
			Command: custom,
			Args:    func(url string) []string { return []string{url} },
		}}, browsers...)
	}

	return &Launcher{browsers: browsers}
}

// Launch opens target in the first available browser without waiting for it
func (l *Launcher) Launch(target string) error {
	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", target)
	}

	browser, err := l.selectBrowser()
	if err != nil {
		return fmt.Errorf("browser selection: %w", err)
	}

	cmd := exec.Command(browser.Command, browser.Args(parsed.String())...) // #nosec G204 - command comes from the fixed browser list
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// Detect returns the name of the browser Launch would use
func (l *Launcher) Detect() (string, error) {
	browser, err := l.selectBrowser()
	if err != nil {
		return "", err
	}
	return browser.Name, nil
}

// selectBrowser returns the first browser whose command is on PATH
func (l *Launcher) selectBrowser() (*Browser, error) {
	if len(l.browsers) == 0 {
		return nil, errors.New("no browsers detected")
	}

	for _, candidate := range l.browsers {
		if _, err := exec.LookPath(candidate.Command); err == nil {
			return &candidate, nil
		}
	}

	return nil, errors.New("no supported browsers found on this system")
}

// detectBrowsers lists the URL openers known for goos
func detectBrowsers(goos string) []Browser {
	single := func(url string) []string { return []string{url} }

	switch goos {
	case "darwin":
		return []Browser{
			{Name: "Default", Command: "open", Args: single},
		}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []Browser{
			{Name: "xdg-open", Command: "xdg-open", Args: single},
			{Name: "Chrome", Command: "google-chrome", Args: single},
			{Name: "Chromium", Command: "chromium", Args: single},
			{Name: "Firefox", Command: "firefox", Args: single},
		}
	case "windows":
		return []Browser{
			{
				Name:    "Default",
				Command: "rundll32",
				Args: func(url string) []string {
					return []string{"url.dll,FileProtocolHandler", url}
				},
			},
		}
	default:
		return []Browser{}
	}
}

// Ensure Launcher implements ports.BrowserLauncher
var _ ports.BrowserLauncher = (*Launcher)(nil)
