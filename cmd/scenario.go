package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/course-sim/course-sim/sim"
	"github.com/course-sim/course-sim/sim/course"
	"github.com/course-sim/course-sim/sim/opt"
)

// loadCourse loads the cart-path graph and course configuration from a
// course directory and reports connectivity against the clubhouse.
func loadCourse(courseDir string) (*course.Graph, *CourseConfig, error) {
	g, err := course.Load(filepath.Join(courseDir, "cart_graph.json"))
	if err != nil {
		return nil, nil, err
	}
	cfg, err := LoadCourseConfig(filepath.Join(courseDir, "course_config.yaml"))
	if err != nil {
		return nil, nil, err
	}

	clubhouse, err := g.ClubhouseNode(cfg.Clubhouse.Latitude, cfg.Clubhouse.Longitude)
	if err != nil {
		return nil, nil, err
	}
	rep := g.ConnectivityReport(clubhouse)
	if !rep.Connected(g.NumNodes()) {
		logrus.Warnf("cart-path graph has %d components; clubhouse component covers %d of %d nodes",
			rep.ComponentCount, rep.ClubhouseComponentSize, g.NumNodes())
		for _, comp := range rep.OtherComponents {
			logrus.Warnf("  detached component: %d nodes, nearest node %d at %.0f m from clubhouse",
				comp.Size, comp.NearestNode, comp.NearestDistanceM)
		}
	}
	return g, cfg, nil
}

// preflightRoutes verifies every hole is shortest-path reachable from the
// clubhouse before any replication starts. A disconnected hole is a fatal
// setup defect, not a simulated outcome.
func preflightRoutes(g *course.Graph, cfg *CourseConfig) error {
	clubhouse, err := g.ClubhouseNode(cfg.Clubhouse.Latitude, cfg.Clubhouse.Longitude)
	if err != nil {
		return err
	}
	for _, h := range cfg.Holes {
		node, err := g.NearestNode(h.Longitude, h.Latitude)
		if err != nil {
			return err
		}
		if _, _, err := g.ShortestPath(clubhouse, node); err != nil {
			return fmt.Errorf("hole %d (node %d) is unreachable from the clubhouse: %w", h.Number, node, err)
		}
	}
	return nil
}

// holePoints converts configured hole locations to the simulation's form.
func holePoints(cfg *CourseConfig) []sim.HolePoint {
	points := make([]sim.HolePoint, 0, len(cfg.Holes))
	for _, h := range cfg.Holes {
		points = append(points, sim.HolePoint{Number: h.Number, Lat: h.Latitude, Lon: h.Longitude})
	}
	return points
}

// buildScenario assembles the replication scenario from the course inputs,
// the selected tee-time scenario, and the effective delivery policy.
func buildScenario(g *course.Graph, cfg *CourseConfig, sc *ScenarioConfig,
	dc sim.DeliveryConfig, baseSeed int64, outputDir string, sampleSec int64) opt.Scenario {

	points := holePoints(cfg)
	svc := sim.ServiceConfig{
		OpenSec:     cfg.Service.OpenMin * 60,
		DurationSec: cfg.Service.DurationMin * 60,
	}

	groups := make([]*sim.GolferGroup, 0, sc.Groups)
	for i := 0; i < sc.Groups; i++ {
		groups = append(groups, &sim.GolferGroup{
			ID:        i + 1,
			TeeOffSec: svc.OpenSec + int64(i)*sc.TeeIntervalMin*60,
			Loop:      sim.Loop{Points: points, CycleSec: sc.RoundMin * 60},
		})
	}

	var cart *sim.BeverageCart
	if cfg.BevCart.Enabled {
		cart = &sim.BeverageCart{
			ID:       1,
			StartSec: svc.OpenSec + cfg.BevCart.StartMin*60,
			Loop:     sim.Loop{Points: sim.ReverseHoles(points), CycleSec: cfg.BevCart.CycleMin * 60, Wrap: true},
		}
	}

	return opt.Scenario{
		Setup: sim.CourseSetup{
			Graph:        g,
			Holes:        points,
			ClubhouseLat: cfg.Clubhouse.Latitude,
			ClubhouseLon: cfg.Clubhouse.Longitude,
		},
		Delivery:          dc,
		Service:           svc,
		Orders:            sim.OrderConfig{OrdersPerHour: sc.OrdersPerHour},
		Groups:            groups,
		Cart:              cart,
		BaseSeed:          baseSeed,
		OutputDir:         outputDir,
		PositionSampleSec: sampleSec,
	}
}

// effectiveDelivery merges config defaults with CLI flag overrides.
func effectiveDelivery(cfg *CourseConfig, runners int, speed float64, prepMin, slaMin int64, blocked []int) sim.DeliveryConfig {
	dc := sim.DeliveryConfig{
		NumRunners:     runners,
		RunnerSpeedMPS: cfg.Delivery.RunnerSpeedMPS,
		PrepTimeSec:    cfg.Delivery.PrepTimeMin * 60,
		SLASec:         cfg.Delivery.SLAMin * 60,
		HandoffSec:     cfg.Delivery.HandoffSec,
		BlockedHoles:   make(map[int]bool, len(blocked)),
	}
	if speed > 0 {
		dc.RunnerSpeedMPS = speed
	}
	if prepMin >= 0 {
		dc.PrepTimeSec = prepMin * 60
	}
	if slaMin > 0 {
		dc.SLASec = slaMin * 60
	}
	for _, h := range blocked {
		dc.BlockedHoles[h] = true
	}
	return dc
}
