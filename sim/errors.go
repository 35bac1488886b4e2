package sim

import "fmt"

// SetupError marks a fatal configuration defect: missing or unparseable
// inputs, a disconnected clubhouse, zero runners. The run aborts immediately
// and no partial output is treated as valid.
type SetupError struct {
	Reason string
	Err    error
}

func (e *SetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("setup: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("setup: %s", e.Reason)
}

func (e *SetupError) Unwrap() error { return e.Err }

// ReplicationError aborts a single replication without affecting siblings.
// An unroutable order mid-run is a setup defect surfaced this way, never
// silently absorbed into the failed-order count. The experiment runner
// records the replication as missing, not zero.
type ReplicationError struct {
	Reason string
	Err    error
}

func (e *ReplicationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("replication: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("replication: %s", e.Reason)
}

func (e *ReplicationError) Unwrap() error { return e.Err }
