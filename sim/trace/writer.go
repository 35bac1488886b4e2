package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// WriteJSON marshals v to path through a buffered writer.
func WriteJSON(path string, v interface{}) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Warnf("closing %s: %v", path, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}

	logrus.Debugf("wrote %s", path)
	return nil
}

// WriteRunArtifacts writes one replication's artifacts under dir/runID/:
// the ordered event log, the position time-series, and the metrics
// document supplied by the caller.
func WriteRunArtifacts(dir, runID string, rt *RunTrace, metrics interface{}) error {
	runDir := filepath.Join(dir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("creating run dir %s: %w", runDir, err)
	}
	if err := WriteJSON(filepath.Join(runDir, "events.json"), rt.Events); err != nil {
		return err
	}
	if err := WriteJSON(filepath.Join(runDir, "coordinates.json"), rt.Positions); err != nil {
		return err
	}
	return WriteJSON(filepath.Join(runDir, "metrics.json"), metrics)
}
