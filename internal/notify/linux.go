//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

// linuxNotifier delivers notifications through notify-send. Whether sound
// actually plays is up to the notification daemon; the urgency hint is the
// closest portable knob.
type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return &linuxNotifier{}
}

func (n *linuxNotifier) Send(title, message string) error {
	return n.run("notify-send", "--app-name=flowstate", title, message)
}

func (n *linuxNotifier) SendWithSound(title, message string) error {
	return n.run("notify-send", "--urgency=normal", "--app-name=flowstate", title, message)
}

// IsSupported reports whether notify-send is on PATH.
func (n *linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (n *linuxNotifier) run(name string, args ...string) error {
	if err := exec.Command(name, args...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}
