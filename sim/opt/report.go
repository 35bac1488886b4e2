package opt

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/course-sim/course-sim/sim"
	"github.com/course-sim/course-sim/sim/trace"
)

// WriteRecommendation persists the optimizer's structured recommendation
// document.
func WriteRecommendation(path string, rec Recommendation) error {
	return trace.WriteJSON(path, rec)
}

// LoadRunMetrics re-reads per-replication metrics artifacts from an output
// directory (one run subdirectory each). A malformed or missing artifact
// is skipped with a warning and counted, and aggregation proceeds over the
// remaining valid samples; the caller must always report the sample count
// used alongside any aggregate.
func LoadRunMetrics(dir string) (metrics []sim.RunMetrics, skipped int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logrus.Warnf("reading metrics dir %s: %v", dir, err)
		return nil, 0
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name, "metrics.json")
		data, err := os.ReadFile(path)
		if err != nil {
			logrus.Warnf("skipping run %s: %v", name, err)
			skipped++
			continue
		}
		var m sim.RunMetrics
		if err := json.Unmarshal(data, &m); err != nil {
			logrus.Warnf("skipping malformed metrics %s: %v", path, err)
			skipped++
			continue
		}
		metrics = append(metrics, m)
	}
	return metrics, skipped
}
