//go:build !darwin && !linux

package notify

// stubNotifier silently drops notifications on platforms without a
// supported delivery mechanism.
type stubNotifier struct{}

func newPlatformNotifier() Notifier {
	return &stubNotifier{}
}

func (n *stubNotifier) Send(title, message string) error          { return nil }
func (n *stubNotifier) SendWithSound(title, message string) error { return nil }
func (n *stubNotifier) IsSupported() bool                         { return false }
