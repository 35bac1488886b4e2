// Package sim implements the discrete-event simulation core for on-course
// food and beverage delivery: golfer groups and a beverage cart move around
// the course, orders arrive stochastically, and a pool of delivery runners
// fulfills them from the clubhouse over the cart-path routing graph.
//
// A single Engine owns one replication: one event queue, one runner pool,
// one order set, and one seeded random generator. Replications share nothing
// mutable; the only shared read-only object is the course.Graph.
package sim
