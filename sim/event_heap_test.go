package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventHeap_OrdersByTimestamp(t *testing.T) {
	h := NewEventHeap()
	h.Schedule(&ServiceClosedEvent{BaseEvent: BaseEvent{timestamp: 300, eventID: 1, eventType: EventServiceClosed}})
	h.Schedule(&ServiceOpenedEvent{BaseEvent: BaseEvent{timestamp: 100, eventID: 2, eventType: EventServiceOpened}})
	h.Schedule(&OrderCreatedEvent{BaseEvent: BaseEvent{timestamp: 200, eventID: 3, eventType: EventOrderCreated}})

	assert.Equal(t, int64(100), h.PopNext().Timestamp())
	assert.Equal(t, int64(200), h.PopNext().Timestamp())
	assert.Equal(t, int64(300), h.PopNext().Timestamp())
	assert.Nil(t, h.PopNext())
}

func TestEventHeap_TiesBreakByTypePriority(t *testing.T) {
	h := NewEventHeap()
	// At the same instant, a dispatch decision must run after the arrival
	// that freed the runner, and service close runs last.
	h.Schedule(&ServiceClosedEvent{BaseEvent: BaseEvent{timestamp: 50, eventID: 1, eventType: EventServiceClosed}})
	h.Schedule(&RunnerDispatchedEvent{BaseEvent: BaseEvent{timestamp: 50, eventID: 2, eventType: EventRunnerDispatched}})
	h.Schedule(&PrepCompleteEvent{BaseEvent: BaseEvent{timestamp: 50, eventID: 3, eventType: EventPrepComplete}})

	assert.Equal(t, EventPrepComplete, h.PopNext().Type())
	assert.Equal(t, EventRunnerDispatched, h.PopNext().Type())
	assert.Equal(t, EventServiceClosed, h.PopNext().Type())
}

func TestEventHeap_TiesBreakByEventID(t *testing.T) {
	h := NewEventHeap()
	h.Schedule(&OrderCreatedEvent{BaseEvent: BaseEvent{timestamp: 10, eventID: 9, eventType: EventOrderCreated}})
	h.Schedule(&OrderCreatedEvent{BaseEvent: BaseEvent{timestamp: 10, eventID: 3, eventType: EventOrderCreated}})

	assert.Equal(t, uint64(3), h.PopNext().EventID())
	assert.Equal(t, uint64(9), h.PopNext().EventID())
}

func TestEventHeap_PeekDoesNotRemove(t *testing.T) {
	h := NewEventHeap()
	assert.Nil(t, h.Peek())
	h.Schedule(&ServiceOpenedEvent{BaseEvent: BaseEvent{timestamp: 1, eventID: 1, eventType: EventServiceOpened}})
	assert.NotNil(t, h.Peek())
	assert.Equal(t, 1, h.Len())
}
