package sim

// EventType names every event the engine processes. The strings double as
// the action field in the emitted event log.
type EventType string

const (
	EventServiceOpened    EventType = "service_opened"
	EventOrderCreated     EventType = "order_created"
	EventPrepComplete     EventType = "prep_complete"
	EventRunnerArrived    EventType = "runner_arrived_at_order"
	EventDeliveryComplete EventType = "delivery_complete"
	EventRunnerReturned   EventType = "runner_returned"
	EventRunnerDispatched EventType = "runner_dispatched"
	EventServiceClosed    EventType = "service_closed"
)

// eventTypePriority breaks ties between events sharing a timestamp.
// Lower value executes first: state arrivals land before dispatch
// decisions, and service close runs after everything else at its instant.
var eventTypePriority = map[EventType]int{
	EventServiceOpened:    0,
	EventOrderCreated:     1,
	EventPrepComplete:     2,
	EventRunnerArrived:    3,
	EventDeliveryComplete: 4,
	EventRunnerReturned:   5,
	EventRunnerDispatched: 6,
	EventServiceClosed:    7,
}

// Event is a scheduled state transition on the engine's time-ordered queue.
type Event interface {
	Timestamp() int64
	EventID() uint64
	Type() EventType
	Execute(e *Engine)
}

// BaseEvent provides the common event fields. Event IDs are allocated per
// engine so replications stay independent and deterministic.
type BaseEvent struct {
	timestamp int64
	eventID   uint64
	eventType EventType
}

func (b *BaseEvent) Timestamp() int64 { return b.timestamp }
func (b *BaseEvent) EventID() uint64  { return b.eventID }
func (b *BaseEvent) Type() EventType  { return b.eventType }

// ServiceOpenedEvent opens the service window and starts dispatching.
type ServiceOpenedEvent struct {
	BaseEvent
}

func (ev *ServiceOpenedEvent) Execute(e *Engine) { e.handleServiceOpened(ev) }

// OrderCreatedEvent registers a generated order and starts its prep.
type OrderCreatedEvent struct {
	BaseEvent
	Order *Order
}

func (ev *OrderCreatedEvent) Execute(e *Engine) { e.handleOrderCreated(ev) }

// PrepCompleteEvent makes an order eligible for dispatch.
type PrepCompleteEvent struct {
	BaseEvent
	Order *Order
}

func (ev *PrepCompleteEvent) Execute(e *Engine) { e.handlePrepComplete(ev) }

// RunnerDispatchedEvent sends an assigned runner toward an order's hole.
type RunnerDispatchedEvent struct {
	BaseEvent
	Runner *Runner
	Order  *Order
}

func (ev *RunnerDispatchedEvent) Execute(e *Engine) { e.handleRunnerDispatched(ev) }

// RunnerArrivedEvent marks arrival at the order's hole node.
type RunnerArrivedEvent struct {
	BaseEvent
	Runner *Runner
	Order  *Order
}

func (ev *RunnerArrivedEvent) Execute(e *Engine) { e.handleRunnerArrived(ev) }

// DeliveryCompleteEvent finishes the handoff and turns the runner home.
type DeliveryCompleteEvent struct {
	BaseEvent
	Runner *Runner
	Order  *Order
}

func (ev *DeliveryCompleteEvent) Execute(e *Engine) { e.handleDeliveryComplete(ev) }

// RunnerReturnedEvent puts a runner back in the idle pool at the clubhouse.
type RunnerReturnedEvent struct {
	BaseEvent
	Runner *Runner
}

func (ev *RunnerReturnedEvent) Execute(e *Engine) { e.handleRunnerReturned(ev) }

// ServiceClosedEvent closes the window and sweeps undispatched orders.
type ServiceClosedEvent struct {
	BaseEvent
}

func (ev *ServiceClosedEvent) Execute(e *Engine) { e.handleServiceClosed(ev) }
