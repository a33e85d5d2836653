package tracer

// SessionEventType labels tracer lifecycle notifications
type SessionEventType int

const (
	// SessionStarted fires when a tracing session becomes active
	SessionStarted SessionEventType = iota

	// SessionStopped fires when a session leaves the running state
	SessionStopped

	// DrainCompleted fires after an aggregation pass has folded a
	// batch of freed records
	DrainCompleted

	// SnapshotTaken fires when session results have been materialized
	SnapshotTaken
)

func (t SessionEventType) String() string {
	switch t {
	case SessionStarted:
		return "started"
	case SessionStopped:
		return "stopped"
	case DrainCompleted:
		return "drain"
	case SnapshotTaken:
		return "snapshot"
	}

	return "unknown"
}

// SessionEvent is a single tracer lifecycle notification
type SessionEvent struct {
	Type SessionEventType

	// Drained is the number of records folded by the aggregation
	// pass, set for DrainCompleted
	Drained int

	// Rows is the number of aggregate rows materialized, set for
	// SnapshotTaken
	Rows int
}
