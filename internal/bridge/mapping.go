package bridge

// PathMapping rewrites a container filesystem prefix to its host
// counterpart. Mappings are evaluated in list order: the first entry whose
// ContainerPrefix matches wins, even when a later entry is more specific.
type PathMapping struct {
	ContainerPrefix string
	HostPrefix      string
}

// Config holds the immutable configuration of a Bridge. A new Bridge is
// constructed per container session; there is no reconfiguration.
type Config struct {
	// Port is the loopback TCP port the bridge listens on. Zero selects
	// DefaultPort. The container side writes to the same port through the
	// SSH reverse tunnel, by convention.
	Port int

	// Mappings translate file:// paths from container to host, in order.
	Mappings []PathMapping
}
