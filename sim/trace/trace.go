package trace

// RunTrace accumulates the records of one replication. Events arrive in
// engine execution order, which is already time-ordered.
type RunTrace struct {
	Events    []EventRecord
	Positions []PositionRecord
}

// NewRunTrace creates a RunTrace ready for recording.
func NewRunTrace() *RunTrace {
	return &RunTrace{
		Events:    make([]EventRecord, 0),
		Positions: make([]PositionRecord, 0),
	}
}

// RecordEvent appends an event log record.
func (rt *RunTrace) RecordEvent(rec EventRecord) {
	rt.Events = append(rt.Events, rec)
}

// RecordPosition appends a position sample.
func (rt *RunTrace) RecordPosition(rec PositionRecord) {
	rt.Positions = append(rt.Positions, rec)
}
