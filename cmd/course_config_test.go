package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course_config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalConfig = `
name: Pebble Creek
clubhouse:
  latitude: 34.000
  longitude: -84.000
holes:
  - {number: 1, latitude: 34.001, longitude: -84.010}
  - {number: 2, latitude: 34.002, longitude: -84.020}
scenarios:
  - {name: typical_weekday}
`

func TestLoadCourseConfig_AppliesDefaults(t *testing.T) {
	cfg, err := LoadCourseConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadCourseConfig: %v", err)
	}

	assert.Equal(t, "Pebble Creek", cfg.Name)
	assert.Equal(t, int64(600), cfg.Service.DurationMin)
	assert.InDelta(t, 2.68, cfg.Delivery.RunnerSpeedMPS, 1e-9)
	assert.Equal(t, int64(10), cfg.Delivery.PrepTimeMin)
	assert.Equal(t, int64(30), cfg.Delivery.SLAMin)
	assert.Equal(t, int64(30), cfg.Delivery.HandoffSec)

	s := cfg.Scenarios[0]
	assert.Equal(t, 8, s.Groups)
	assert.Equal(t, int64(10), s.TeeIntervalMin)
	assert.Equal(t, int64(240), s.RoundMin)
	assert.InDelta(t, 10.0, s.OrdersPerHour, 1e-9)
}

func TestLoadCourseConfig_ExplicitValuesKept(t *testing.T) {
	cfg, err := LoadCourseConfig(writeConfig(t, `
name: Busy Course
clubhouse:
  latitude: 34.000
  longitude: -84.000
holes:
  - {number: 1, latitude: 34.001, longitude: -84.010}
service:
  open_min: 60
  duration_min: 480
delivery:
  runner_speed_mps: 3.5
  sla_min: 20
bev_cart:
  enabled: true
scenarios:
  - {name: weekend_rush, groups: 12, tee_interval_min: 8, round_min: 270, orders_per_hour: 25}
`))
	if err != nil {
		t.Fatalf("LoadCourseConfig: %v", err)
	}

	assert.Equal(t, int64(60), cfg.Service.OpenMin)
	assert.Equal(t, int64(480), cfg.Service.DurationMin)
	assert.InDelta(t, 3.5, cfg.Delivery.RunnerSpeedMPS, 1e-9)
	assert.Equal(t, int64(20), cfg.Delivery.SLAMin)
	// Enabled cart gets the default cycle when omitted.
	assert.Equal(t, int64(150), cfg.BevCart.CycleMin)
	assert.Equal(t, 12, cfg.Scenarios[0].Groups)
}

func TestLoadCourseConfig_Validation(t *testing.T) {
	cases := []struct {
		name   string
		config string
	}{
		{"no holes", `
name: x
clubhouse: {latitude: 34, longitude: -84}
scenarios: [{name: a}]
`},
		{"duplicate hole", `
name: x
clubhouse: {latitude: 34, longitude: -84}
holes:
  - {number: 1, latitude: 34.001, longitude: -84.010}
  - {number: 1, latitude: 34.002, longitude: -84.020}
scenarios: [{name: a}]
`},
		{"non-positive hole number", `
name: x
clubhouse: {latitude: 34, longitude: -84}
holes: [{number: 0, latitude: 34.001, longitude: -84.010}]
scenarios: [{name: a}]
`},
		{"missing clubhouse", `
name: x
holes: [{number: 1, latitude: 34.001, longitude: -84.010}]
scenarios: [{name: a}]
`},
		{"no scenarios", `
name: x
clubhouse: {latitude: 34, longitude: -84}
holes: [{number: 1, latitude: 34.001, longitude: -84.010}]
`},
		{"unnamed scenario", `
name: x
clubhouse: {latitude: 34, longitude: -84}
holes: [{number: 1, latitude: 34.001, longitude: -84.010}]
scenarios: [{groups: 4}]
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCourseConfig(writeConfig(t, tc.config))
			assert.Error(t, err)
		})
	}
}

func TestLoadCourseConfig_MissingFile(t *testing.T) {
	_, err := LoadCourseConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadCourseConfig_MalformedYAML(t *testing.T) {
	_, err := LoadCourseConfig(writeConfig(t, "holes: [unterminated"))
	assert.Error(t, err)
}

func TestCourseConfig_ScenarioLookup(t *testing.T) {
	cfg, err := LoadCourseConfig(writeConfig(t, `
name: x
clubhouse: {latitude: 34, longitude: -84}
holes: [{number: 1, latitude: 34.001, longitude: -84.010}]
scenarios:
  - {name: typical_weekday}
  - {name: weekend_rush, orders_per_hour: 25}
`))
	if err != nil {
		t.Fatalf("LoadCourseConfig: %v", err)
	}

	s, err := cfg.Scenario("")
	assert.NoError(t, err)
	assert.Equal(t, "typical_weekday", s.Name)

	s, err = cfg.Scenario("weekend_rush")
	assert.NoError(t, err)
	assert.InDelta(t, 25.0, s.OrdersPerHour, 1e-9)

	_, err = cfg.Scenario("missing")
	assert.Error(t, err)
}
