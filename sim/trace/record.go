// Package trace collects the per-replication event log and position
// time-series consumed by downstream reporting. It stores pure data types
// and has no dependency on the engine.
package trace

// EventRecord is one line of the ordered event log.
type EventRecord struct {
	Entity string `json:"entity"`
	Sec    int64  `json:"sec"`
	Action string `json:"action"`
	Hole   int    `json:"hole"`
}

// PositionRecord is one sample of an entity's position time-series.
type PositionRecord struct {
	Entity string  `json:"entity"`
	Sec    int64   `json:"sec"`
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	Hole   int     `json:"hole"`
}
