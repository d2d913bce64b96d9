// Package browser launches the system default browser, used to jump from
// a list row to the page it references.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open opens url in the default browser. The command is started and not
// waited on; callers treat this as best-effort.
func Open(url string) error {
	var name string
	args := []string{url}
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "linux":
		name = "xdg-open"
	case "windows":
		name = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		return fmt.Errorf("browser.Open: unsupported OS %s", runtime.GOOS)
	}
	return exec.Command(name, args...).Start()
}
