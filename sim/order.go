package sim

import "fmt"

// OrderStatus is the lifecycle state of a delivery order.
type OrderStatus string

const (
	// OrderPending: prep complete, queued for dispatch.
	OrderPending OrderStatus = "pending"
	// OrderPreparing: created, kitchen prep in progress.
	OrderPreparing OrderStatus = "preparing"
	// OrderDispatched: a runner is en route or delivering.
	OrderDispatched OrderStatus = "dispatched"
	// OrderDelivered: handed off to the group. Terminal.
	OrderDelivered OrderStatus = "delivered"
	// OrderFailed: missed its SLA window before dispatch or service closed.
	// Terminal, and expected simulation output rather than an error.
	OrderFailed OrderStatus = "failed"
)

// Order is a delivery request raised by a golfer group at a hole.
// Created by the order generator; mutated only by the Engine; immutable
// once Status reaches delivered or failed.
type Order struct {
	ID      int
	Hole    int
	GroupID int

	CreatedSec   int64
	PrepDoneSec  int64
	DeadlineSec  int64
	DeliveredSec int64 // -1 until fulfilled

	Status OrderStatus
}

func (o *Order) String() string {
	return fmt.Sprintf("order_%d[hole=%d status=%s]", o.ID, o.Hole, o.Status)
}

// Terminal reports whether the order can no longer change state.
func (o *Order) Terminal() bool {
	return o.Status == OrderDelivered || o.Status == OrderFailed
}

// OnTime reports whether a delivered order met its SLA window.
func (o *Order) OnTime() bool {
	return o.Status == OrderDelivered && o.DeliveredSec >= 0 && o.DeliveredSec <= o.DeadlineSec
}

// CycleTimeSec returns creation-to-delivery time for delivered orders.
func (o *Order) CycleTimeSec() int64 {
	return o.DeliveredSec - o.CreatedSec
}
