package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open hands rawURL to the platform browser. Post sources and share
// links are the only callers, so anything that is not an absolute
// http/https URL is refused.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: only http and https links are opened", rawURL)
	}
	if u.Host == "" {
		return fmt.Errorf("refusing to open %q: missing host", rawURL)
	}

	name, args := opener(runtime.GOOS, rawURL)
	return exec.Command(name, args...).Start()
}

// opener picks the platform launch command. Windows goes through
// rundll32 so the URL never passes through cmd's argument parsing.
func opener(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}
