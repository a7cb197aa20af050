// Package notify delivers desktop notifications when a timer session ends.
// macOS goes through osascript, Linux through notify-send, and every other
// platform gets a silent no-op.
package notify

import (
	"fmt"

	"flowstate/internal/app"
)

// Notifier sends desktop notifications. Implementations shell out to the
// platform's notification tool.
type Notifier interface {
	Send(title, message string) error
	SendWithSound(title, message string) error
	IsSupported() bool
}

// New picks the notifier for the current platform, degrading to a no-op
// when the platform tool is unavailable so callers never have to check.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return &noopNotifier{}
	}
	return n
}

type noopNotifier struct{}

func (noopNotifier) Send(title, message string) error          { return nil }
func (noopNotifier) SendWithSound(title, message string) error { return nil }
func (noopNotifier) IsSupported() bool                         { return false }

// SessionAlert builds the notification title and body for a completed
// session, tailored to its kind and category.
func SessionAlert(session app.FocusSession) (title, message string) {
	switch session.Kind {
	case app.KindFocus:
		minutes := session.Duration / 60
		what := fmt.Sprintf("%d minutes", minutes)
		if minutes == 1 {
			what = "1 minute"
		}
		if session.Category != "" {
			return "Focus complete", fmt.Sprintf("%s of %s done. Time for a break.", what, session.Category)
		}
		return "Focus complete", fmt.Sprintf("%s done. Time for a break.", what)
	case app.KindLongBreak:
		return "Break over", "Long break finished. Ready for the next focus session?"
	default:
		return "Break over", "Short break finished. Ready for the next focus session?"
	}
}
