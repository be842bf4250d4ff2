package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openers maps GOOS to the command that hands a URL to the desktop's default browser.
var openers = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"freebsd": {"xdg-open"},
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
}

// browserCommand builds the command that opens url on goos.
func browserCommand(goos, url string) (*exec.Cmd, error) {
	argv, ok := openers[goos]
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
	args := append(append([]string{}, argv[1:]...), url)
	return exec.Command(argv[0], args...), nil
}

// OpenBrowser opens url in the default browser without waiting for it, e.g. the board endpoint of a running
// server.
func OpenBrowser(url string) error {
	cmd, err := browserCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return cmd.Process.Release()
}
