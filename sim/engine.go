package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/course-sim/course-sim/sim/course"
	"github.com/course-sim/course-sim/sim/trace"
)

// Engine runs one replication: a single-threaded discrete-event loop that
// advances simulated time, dispatches runners to orders, enforces the
// blocked-hole policy, and emits a structured event log. All suspension is
// logical time advancement via the event queue; nothing blocks on I/O.
type Engine struct {
	// Read-only course inputs, shared across replications.
	Setup CourseSetup

	Delivery DeliveryConfig
	Service  ServiceConfig
	Orders   OrderConfig

	Clubhouse course.NodeID
	holeNodes map[int]course.NodeID
	holeDist  map[int]float64 // clubhouse→hole shortest-path cache

	Groups   []*GolferGroup
	Cart     *BeverageCart
	Runners  []*Runner
	OrderLog []*Order

	eligible []*Order // prep-complete, awaiting dispatch, FIFO by creation

	EventQueue *EventHeap
	Clock      int64
	Trace      *trace.RunTrace

	rng         *PartitionedRNG
	open        bool
	nextEventID uint64
	runErr      error
}

// NewEngine builds a replication from the shared course setup and this
// replication's configuration and seed. Fatal configuration defects return
// a *SetupError; no partial engine is usable after an error.
func NewEngine(setup CourseSetup, dc DeliveryConfig, svc ServiceConfig, oc OrderConfig,
	groups []*GolferGroup, cart *BeverageCart, seed int64) (*Engine, error) {

	if err := Validate(setup, dc, svc, oc); err != nil {
		return nil, err
	}

	clubhouse, err := setup.Graph.ClubhouseNode(setup.ClubhouseLat, setup.ClubhouseLon)
	if err != nil {
		return nil, &SetupError{Reason: "resolving clubhouse node", Err: err}
	}

	e := &Engine{
		Setup:      setup,
		Delivery:   dc,
		Service:    svc,
		Orders:     oc,
		Clubhouse:  clubhouse,
		holeNodes:  make(map[int]course.NodeID, len(setup.Holes)),
		holeDist:   make(map[int]float64, len(setup.Holes)),
		Groups:     groups,
		Cart:       cart,
		EventQueue: NewEventHeap(),
		Clock:      svc.OpenSec,
		Trace:      trace.NewRunTrace(),
		rng:        NewPartitionedRNG(seed),
	}

	for _, h := range setup.Holes {
		node, err := setup.Graph.NearestNode(h.Lon, h.Lat)
		if err != nil {
			return nil, &SetupError{Reason: fmt.Sprintf("resolving node for hole %d", h.Number), Err: err}
		}
		e.holeNodes[h.Number] = node
	}

	for i := 0; i < dc.NumRunners; i++ {
		e.Runners = append(e.Runners, &Runner{ID: i + 1, State: RunnerIdle, Pos: clubhouse})
	}

	for _, o := range GenerateOrders(e.rng, svc, oc, dc, groups) {
		e.OrderLog = append(e.OrderLog, o)
		e.schedule(&OrderCreatedEvent{BaseEvent: e.newBaseEvent(o.CreatedSec, EventOrderCreated), Order: o})
	}
	e.schedule(&ServiceOpenedEvent{BaseEvent: e.newBaseEvent(svc.OpenSec, EventServiceOpened)})
	e.schedule(&ServiceClosedEvent{BaseEvent: e.newBaseEvent(svc.CloseSec(), EventServiceClosed)})

	return e, nil
}

// newBaseEvent allocates the next per-engine event ID for deterministic
// tie-breaking at equal timestamps.
func (e *Engine) newBaseEvent(timestamp int64, t EventType) BaseEvent {
	e.nextEventID++
	return BaseEvent{timestamp: timestamp, eventID: e.nextEventID, eventType: t}
}

func (e *Engine) schedule(ev Event) {
	e.EventQueue.Schedule(ev)
}

// Run processes events in non-decreasing timestamp order until the queue
// drains. Returns a *ReplicationError if an unroutable order is hit
// mid-run; such a defect aborts the replication rather than counting as a
// failed order.
func (e *Engine) Run() error {
	for e.EventQueue.Len() > 0 {
		ev := e.EventQueue.PopNext()
		if ev.Timestamp() < e.Clock {
			panic(fmt.Sprintf("clock went backwards: %d < %d", ev.Timestamp(), e.Clock))
		}
		e.Clock = ev.Timestamp()
		ev.Execute(e)
		if e.runErr != nil {
			return e.runErr
		}
	}
	return nil
}

// --- event handlers ---

func (e *Engine) handleServiceOpened(ev *ServiceOpenedEvent) {
	logrus.Debugf("<< service opened at %d s", ev.Timestamp())
	e.open = true
	e.Trace.RecordEvent(trace.EventRecord{Entity: "clubhouse", Sec: ev.Timestamp(), Action: string(EventServiceOpened)})
	e.dispatchIdleRunners(ev.Timestamp())
}

func (e *Engine) handleOrderCreated(ev *OrderCreatedEvent) {
	o := ev.Order
	logrus.Debugf("<< %s created at %d s (hole %d)", o, ev.Timestamp(), o.Hole)
	o.Status = OrderPreparing
	e.Trace.RecordEvent(trace.EventRecord{Entity: orderEntity(o), Sec: ev.Timestamp(), Action: string(EventOrderCreated), Hole: o.Hole})
	e.schedule(&PrepCompleteEvent{BaseEvent: e.newBaseEvent(o.PrepDoneSec, EventPrepComplete), Order: o})
}

func (e *Engine) handlePrepComplete(ev *PrepCompleteEvent) {
	o := ev.Order
	if o.Status != OrderPreparing {
		// Swept to failed at service close before prep finished.
		return
	}
	o.Status = OrderPending
	e.eligible = append(e.eligible, o)
	e.Trace.RecordEvent(trace.EventRecord{Entity: orderEntity(o), Sec: ev.Timestamp(), Action: string(EventPrepComplete), Hole: o.Hole})
	e.dispatchIdleRunners(ev.Timestamp())
}

func (e *Engine) handleRunnerDispatched(ev *RunnerDispatchedEvent) {
	r, o := ev.Runner, ev.Order
	now := ev.Timestamp()
	logrus.Debugf("<< %s dispatched to %s at %d s", r, o, now)

	dist, err := e.distanceToHole(o.Hole)
	if err != nil {
		e.runErr = &ReplicationError{Reason: fmt.Sprintf("order %d at hole %d is unroutable", o.ID, o.Hole), Err: err}
		return
	}

	e.Trace.RecordEvent(trace.EventRecord{Entity: r.Entity(), Sec: now, Action: string(EventRunnerDispatched), Hole: o.Hole})
	e.recordRunnerPosition(r, e.Clubhouse, now, 0)

	travel := travelSec(dist, e.Delivery.RunnerSpeedMPS)
	e.schedule(&RunnerArrivedEvent{BaseEvent: e.newBaseEvent(now+travel, EventRunnerArrived), Runner: r, Order: o})
}

func (e *Engine) handleRunnerArrived(ev *RunnerArrivedEvent) {
	r, o := ev.Runner, ev.Order
	r.State = RunnerDelivering
	r.Pos = e.holeNodes[o.Hole]
	e.Trace.RecordEvent(trace.EventRecord{Entity: r.Entity(), Sec: ev.Timestamp(), Action: string(EventRunnerArrived), Hole: o.Hole})
	e.recordRunnerPosition(r, r.Pos, ev.Timestamp(), o.Hole)
	e.schedule(&DeliveryCompleteEvent{BaseEvent: e.newBaseEvent(ev.Timestamp()+e.Delivery.HandoffSec, EventDeliveryComplete), Runner: r, Order: o})
}

func (e *Engine) handleDeliveryComplete(ev *DeliveryCompleteEvent) {
	r, o := ev.Runner, ev.Order
	now := ev.Timestamp()

	o.Status = OrderDelivered
	o.DeliveredSec = now
	logrus.Debugf("<< %s delivered at %d s (cycle %d s)", o, now, o.CycleTimeSec())
	e.Trace.RecordEvent(trace.EventRecord{Entity: orderEntity(o), Sec: now, Action: string(EventDeliveryComplete), Hole: o.Hole})

	r.State = RunnerReturning
	dist := e.holeDist[o.Hole] // cached by the outbound leg
	travel := travelSec(dist, e.Delivery.RunnerSpeedMPS)
	e.schedule(&RunnerReturnedEvent{BaseEvent: e.newBaseEvent(now+travel, EventRunnerReturned), Runner: r})
}

func (e *Engine) handleRunnerReturned(ev *RunnerReturnedEvent) {
	r := ev.Runner
	r.finishJob(e.Clubhouse, ev.Timestamp())
	e.Trace.RecordEvent(trace.EventRecord{Entity: r.Entity(), Sec: ev.Timestamp(), Action: string(EventRunnerReturned)})
	e.recordRunnerPosition(r, e.Clubhouse, ev.Timestamp(), 0)
	e.dispatchIdleRunners(ev.Timestamp())
}

func (e *Engine) handleServiceClosed(ev *ServiceClosedEvent) {
	logrus.Debugf("<< service closed at %d s", ev.Timestamp())
	e.open = false
	e.Trace.RecordEvent(trace.EventRecord{Entity: "clubhouse", Sec: ev.Timestamp(), Action: string(EventServiceClosed)})

	// In-flight deliveries run to completion; everything not yet dispatched fails.
	for _, o := range e.OrderLog {
		if o.Status == OrderPreparing || o.Status == OrderPending {
			e.failOrder(o, ev.Timestamp())
		}
	}
	e.eligible = e.eligible[:0]
}

// --- dispatch policy ---

// dispatchIdleRunners assigns the oldest eligible order (FIFO by creation
// time) to each idle runner. Orders on blocked holes stay queued; orders
// whose deadline already passed are failed in place, which only affects
// metrics.
func (e *Engine) dispatchIdleRunners(now int64) {
	if !e.open {
		return
	}
	for _, r := range e.Runners {
		if r.State != RunnerIdle {
			continue
		}
		o := e.nextEligible(now)
		if o == nil {
			return
		}
		o.Status = OrderDispatched
		r.beginJob(o, now)
		e.schedule(&RunnerDispatchedEvent{BaseEvent: e.newBaseEvent(now, EventRunnerDispatched), Runner: r, Order: o})
	}
}

// nextEligible pops the oldest dispatchable order, failing expired ones as
// it scans. Blocked-hole orders are skipped but remain queued.
func (e *Engine) nextEligible(now int64) *Order {
	kept := e.eligible[:0]
	var picked *Order
	for _, o := range e.eligible {
		if picked != nil {
			kept = append(kept, o)
			continue
		}
		if now >= o.DeadlineSec {
			e.failOrder(o, now)
			continue
		}
		if e.Delivery.BlockedHoles[o.Hole] {
			kept = append(kept, o)
			continue
		}
		picked = o
	}
	e.eligible = kept
	return picked
}

func (e *Engine) failOrder(o *Order, now int64) {
	o.Status = OrderFailed
	logrus.Debugf("<< %s failed at %d s", o, now)
	e.Trace.RecordEvent(trace.EventRecord{Entity: orderEntity(o), Sec: now, Action: "order_failed", Hole: o.Hole})
}

// --- routing helpers ---

// distanceToHole returns the cached clubhouse→hole shortest-path length.
func (e *Engine) distanceToHole(hole int) (float64, error) {
	if d, ok := e.holeDist[hole]; ok {
		return d, nil
	}
	node, ok := e.holeNodes[hole]
	if !ok {
		return 0, fmt.Errorf("no node resolved for hole %d", hole)
	}
	_, dist, err := e.Setup.Graph.ShortestPath(e.Clubhouse, node)
	if err != nil {
		return 0, err
	}
	e.holeDist[hole] = dist
	return dist, nil
}

// travelSec converts a path length to whole seconds at the given speed.
func travelSec(distM, speedMPS float64) int64 {
	return int64(math.Ceil(distM / speedMPS))
}

func (e *Engine) recordRunnerPosition(r *Runner, node course.NodeID, sec int64, hole int) {
	n, ok := e.Setup.Graph.Node(node)
	if !ok {
		return
	}
	e.Trace.RecordPosition(trace.PositionRecord{Entity: r.Entity(), Sec: sec, Lon: n.Lon, Lat: n.Lat, Hole: hole})
}

func orderEntity(o *Order) string {
	return fmt.Sprintf("order_%d", o.ID)
}

// SamplePositions appends golfer-group and beverage-cart position samples
// at a fixed interval across the service window. Their movement is
// deterministic, so sampling after the run yields the same series a live
// recorder would have produced.
func (e *Engine) SamplePositions(intervalSec int64) {
	if intervalSec <= 0 {
		return
	}
	for t := e.Service.OpenSec; t <= e.Service.CloseSec(); t += intervalSec {
		for _, g := range e.Groups {
			if !g.OnCourse(t) {
				continue
			}
			lat, lon := g.PositionAt(t)
			e.Trace.RecordPosition(trace.PositionRecord{
				Entity: fmt.Sprintf("group_%d", g.ID), Sec: t, Lon: lon, Lat: lat, Hole: g.HoleAt(t),
			})
		}
		if e.Cart != nil && e.Cart.OnCourse(t) {
			lat, lon := e.Cart.PositionAt(t)
			e.Trace.RecordPosition(trace.PositionRecord{
				Entity: fmt.Sprintf("bev_cart_%d", e.Cart.ID), Sec: t, Lon: lon, Lat: lat, Hole: e.Cart.HoleAt(t),
			})
		}
	}
}
