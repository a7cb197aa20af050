//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// darwinNotifier shells out to osascript for macOS notification center.
type darwinNotifier struct{}

func newPlatformNotifier() Notifier {
	return &darwinNotifier{}
}

func (n *darwinNotifier) Send(title, message string) error {
	return n.display(title, message, false)
}

func (n *darwinNotifier) SendWithSound(title, message string) error {
	return n.display(title, message, true)
}

// IsSupported reports whether osascript is on PATH.
func (n *darwinNotifier) IsSupported() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (n *darwinNotifier) display(title, message string, sound bool) error {
	script := fmt.Sprintf(`display notification %q with title %q`,
		escapeAppleScript(message), escapeAppleScript(title))
	if sound {
		script += ` sound name "default"`
	}

	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

// escapeAppleScript escapes backslashes and double quotes so the
// message survives embedding in an AppleScript string literal.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
