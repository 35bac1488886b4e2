package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CourseConfig is the structured course document loaded from
// course_config.yaml inside a course directory.
type CourseConfig struct {
	Name      string           `yaml:"name"`
	Clubhouse LatLon           `yaml:"clubhouse"`
	Holes     []HoleConfig     `yaml:"holes"`
	Service   ServiceWindow    `yaml:"service"`
	Delivery  DeliveryDefaults `yaml:"delivery"`
	BevCart   BevCartConfig    `yaml:"bev_cart"`
	Scenarios []ScenarioConfig `yaml:"scenarios"`
}

// LatLon is a geographic point in the configuration document.
type LatLon struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// HoleConfig locates one hole on the course.
type HoleConfig struct {
	Number    int     `yaml:"number"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// ServiceWindow defines the delivery service hours in minutes.
type ServiceWindow struct {
	OpenMin     int64 `yaml:"open_min"`
	DurationMin int64 `yaml:"duration_min"`
}

// DeliveryDefaults are the delivery policy defaults; CLI flags override them.
type DeliveryDefaults struct {
	RunnerSpeedMPS float64 `yaml:"runner_speed_mps"`
	PrepTimeMin    int64   `yaml:"prep_time_min"`
	SLAMin         int64   `yaml:"sla_min"`
	HandoffSec     int64   `yaml:"handoff_sec"`
}

// BevCartConfig configures the beverage cart loop.
type BevCartConfig struct {
	Enabled  bool  `yaml:"enabled"`
	CycleMin int64 `yaml:"cycle_min"`
	StartMin int64 `yaml:"start_min"`
}

// ScenarioConfig is a named tee-time/order scenario: how many groups go
// out, how tightly they tee off, and the order arrival rate they generate.
type ScenarioConfig struct {
	Name           string  `yaml:"name"`
	Groups         int     `yaml:"groups"`
	TeeIntervalMin int64   `yaml:"tee_interval_min"`
	RoundMin       int64   `yaml:"round_min"`
	OrdersPerHour  float64 `yaml:"orders_per_hour"`
}

// LoadCourseConfig reads and validates a course configuration document.
func LoadCourseConfig(path string) (*CourseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading course config %s: %w", path, err)
	}
	var cfg CourseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing course config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("course config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyDefaults fills documented defaults for omitted fields.
func (c *CourseConfig) applyDefaults() {
	if c.Service.DurationMin == 0 {
		c.Service.DurationMin = 600
	}
	if c.Delivery.RunnerSpeedMPS == 0 {
		c.Delivery.RunnerSpeedMPS = 2.68 // brisk walking-with-cart pace
	}
	if c.Delivery.PrepTimeMin == 0 {
		c.Delivery.PrepTimeMin = 10
	}
	if c.Delivery.SLAMin == 0 {
		c.Delivery.SLAMin = 30
	}
	if c.Delivery.HandoffSec == 0 {
		c.Delivery.HandoffSec = 30
	}
	if c.BevCart.Enabled && c.BevCart.CycleMin == 0 {
		c.BevCart.CycleMin = 150
	}
	for i := range c.Scenarios {
		s := &c.Scenarios[i]
		if s.Groups == 0 {
			s.Groups = 8
		}
		if s.TeeIntervalMin == 0 {
			s.TeeIntervalMin = 10
		}
		if s.RoundMin == 0 {
			s.RoundMin = 240
		}
		if s.OrdersPerHour == 0 {
			s.OrdersPerHour = 10
		}
	}
}

// Validate rejects configurations no simulation could run on.
func (c *CourseConfig) Validate() error {
	if len(c.Holes) == 0 {
		return fmt.Errorf("no holes configured")
	}
	seen := map[int]bool{}
	for _, h := range c.Holes {
		if h.Number <= 0 {
			return fmt.Errorf("hole number must be positive, got %d", h.Number)
		}
		if seen[h.Number] {
			return fmt.Errorf("duplicate hole number %d", h.Number)
		}
		seen[h.Number] = true
	}
	if c.Clubhouse.Latitude == 0 && c.Clubhouse.Longitude == 0 {
		return fmt.Errorf("clubhouse coordinates not configured")
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("no scenarios configured")
	}
	for _, s := range c.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario with empty name")
		}
		if s.Groups <= 0 || s.TeeIntervalMin <= 0 || s.RoundMin <= 0 {
			return fmt.Errorf("scenario %q has non-positive golfer parameters", s.Name)
		}
	}
	return nil
}

// Scenario returns the named scenario, or the first configured one when
// name is empty.
func (c *CourseConfig) Scenario(name string) (*ScenarioConfig, error) {
	if name == "" {
		return &c.Scenarios[0], nil
	}
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %q not found in course config", name)
}
