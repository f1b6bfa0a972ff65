package srcbuild

// State tracks how far a tool has progressed through the build
// pipeline. Failed is terminal and reachable from any other state.
type State string

const (
	StateAbsent     State = "absent"
	StateCloned     State = "cloned"
	StatePatched    State = "patched"
	StateConfigured State = "configured"
	StateInstalled  State = "installed"
	StateFailed     State = "failed"
)
