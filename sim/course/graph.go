// Package course provides the cart-path routing graph: nearest-node lookup,
// shortest-path queries, and connectivity diagnostics over a real-world
// course path network.
package course

import (
	"container/heap"
	"math"
	"sort"
)

// EarthRadiusM is the mean Earth radius used for great-circle distances.
const EarthRadiusM = 6371000.0

// NodeID identifies a node in the routing graph.
type NodeID int64

// NodeKind tags a node with its role on the course.
type NodeKind string

const (
	KindNormal    NodeKind = "normal"
	KindClubhouse NodeKind = "clubhouse"
	KindTee       NodeKind = "tee"
	KindGreen     NodeKind = "green"
)

// Node is a point on the cart-path network. Immutable once the graph is loaded.
type Node struct {
	ID   NodeID
	Lon  float64
	Lat  float64
	Kind NodeKind
}

// edge is one directed half of an undirected path segment.
type edge struct {
	to     NodeID
	length float64 // meters
}

// Graph is a weighted undirected graph over cart-path nodes.
// Read-only after construction; safe for concurrent queries.
type Graph struct {
	nodes map[NodeID]Node
	adj   map[NodeID][]edge
	order []NodeID // node IDs in ascending order, for deterministic scans
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[NodeID]Node),
		adj:   make(map[NodeID][]edge),
	}
}

// AddNode inserts a node. Re-adding an existing ID overwrites its attributes.
func (g *Graph) AddNode(n Node) {
	if n.Kind == "" {
		n.Kind = KindNormal
	}
	if _, exists := g.nodes[n.ID]; !exists {
		g.order = append(g.order, n.ID)
		sort.Slice(g.order, func(i, j int) bool { return g.order[i] < g.order[j] })
	}
	g.nodes[n.ID] = n
}

// AddEdge inserts an undirected edge of the given length in meters.
// Both endpoints must already exist.
func (g *Graph) AddEdge(a, b NodeID, length float64) {
	g.adj[a] = append(g.adj[a], edge{to: b, length: length})
	g.adj[b] = append(g.adj[b], edge{to: a, length: length})
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// Node returns the node with the given ID.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NearestNode returns the node closest to (lon, lat).
// Returns ErrNotFound if the graph has no nodes.
// Ties resolve to the lowest node ID so results are deterministic.
func (g *Graph) NearestNode(lon, lat float64) (NodeID, error) {
	if len(g.order) == 0 {
		return 0, ErrNotFound
	}
	best := g.order[0]
	bestDist := math.Inf(1)
	for _, id := range g.order {
		n := g.nodes[id]
		d := HaversineM(lat, lon, n.Lat, n.Lon)
		if d < bestDist {
			best = id
			bestDist = d
		}
	}
	return best, nil
}

// ClubhouseNode returns the node tagged clubhouse, or failing that the node
// nearest the configured clubhouse coordinates.
func (g *Graph) ClubhouseNode(lat, lon float64) (NodeID, error) {
	for _, id := range g.order {
		if g.nodes[id].Kind == KindClubhouse {
			return id, nil
		}
	}
	return g.NearestNode(lon, lat)
}

// pathItem is an entry in the Dijkstra priority queue.
type pathItem struct {
	node NodeID
	dist float64
}

// pathQueue is a min-heap over tentative distances with node-ID tie-breaking.
type pathQueue []pathItem

func (q pathQueue) Len() int { return len(q) }
func (q pathQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}
func (q pathQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *pathQueue) Push(x interface{}) { *q = append(*q, x.(pathItem)) }
func (q *pathQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// ShortestPath computes the Dijkstra shortest path from a to b over edge
// lengths. Returns the ordered node sequence and total length in meters.
// Returns an UnreachableError when no path exists; callers must handle
// disconnected topology explicitly.
func (g *Graph) ShortestPath(a, b NodeID) ([]NodeID, float64, error) {
	if _, ok := g.nodes[a]; !ok {
		return nil, 0, ErrNotFound
	}
	if _, ok := g.nodes[b]; !ok {
		return nil, 0, ErrNotFound
	}
	if a == b {
		return []NodeID{a}, 0, nil
	}

	dist := map[NodeID]float64{a: 0}
	prev := map[NodeID]NodeID{}
	done := map[NodeID]bool{}

	q := &pathQueue{{node: a, dist: 0}}
	heap.Init(q)

	for q.Len() > 0 {
		cur := heap.Pop(q).(pathItem)
		if done[cur.node] {
			continue
		}
		done[cur.node] = true
		if cur.node == b {
			break
		}
		for _, e := range g.adj[cur.node] {
			nd := cur.dist + e.length
			if d, seen := dist[e.to]; !seen || nd < d {
				dist[e.to] = nd
				prev[e.to] = cur.node
				heap.Push(q, pathItem{node: e.to, dist: nd})
			}
		}
	}

	total, reached := dist[b]
	if !reached || !done[b] {
		return nil, 0, &UnreachableError{From: a, To: b}
	}

	path := []NodeID{b}
	for at := b; at != a; {
		at = prev[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, total, nil
}

// HaversineM returns the great-circle distance in meters between two
// latitude/longitude points.
func HaversineM(lat1, lon1, lat2, lon2 float64) float64 {
	const deg2rad = math.Pi / 180.0
	phi1 := lat1 * deg2rad
	phi2 := lat2 * deg2rad
	dPhi := (lat2 - lat1) * deg2rad
	dLambda := (lon2 - lon1) * deg2rad

	s := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * EarthRadiusM * math.Asin(math.Sqrt(s))
}
