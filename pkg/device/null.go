package device

// NullLink is the LinkMonitor used by processes that do not run the gateway bridge.
type NullLink struct{}

// NewNullLink creates a new NullLink.
func NewNullLink() *NullLink {
	return &NullLink{}
}

func (l *NullLink) IsConnected() bool {
	return false
}

// NullNotifier drops state change notifications. It is used when no broker is configured.
type NullNotifier struct{}

// NewNullNotifier creates a new NullNotifier.
func NewNullNotifier() *NullNotifier {
	return &NullNotifier{}
}

func (n *NullNotifier) NodeStateChanged(nodeID string, isOn bool) {}
