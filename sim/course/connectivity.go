package course

import "sort"

// ComponentInfo describes one connected component that does not contain the
// clubhouse, with the node in it closest to the clubhouse by great-circle
// distance.
type ComponentInfo struct {
	Size             int     `json:"size"`
	NearestNode      NodeID  `json:"nearest_node"`
	NearestDistanceM float64 `json:"nearest_distance_m"`
}

// Report summarizes graph connectivity relative to the clubhouse component.
// It is a diagnostic only: the system never auto-merges components.
type Report struct {
	ComponentCount         int             `json:"component_count"`
	ClubhouseComponentSize int             `json:"clubhouse_component_size"`
	OtherComponents        []ComponentInfo `json:"other_components"`
}

// Connected reports whether every node is reachable from the clubhouse.
func (r Report) Connected(totalNodes int) bool {
	return r.ClubhouseComponentSize == totalNodes
}

// ConnectivityReport computes connected components and, for each component
// not containing the clubhouse, the node nearest the clubhouse.
func (g *Graph) ConnectivityReport(clubhouse NodeID) Report {
	visited := make(map[NodeID]bool, len(g.nodes))
	club := g.nodes[clubhouse]

	var components [][]NodeID
	clubComponent := -1
	for _, start := range g.order {
		if visited[start] {
			continue
		}
		comp := g.bfs(start, visited)
		for _, id := range comp {
			if id == clubhouse {
				clubComponent = len(components)
			}
		}
		components = append(components, comp)
	}

	rep := Report{ComponentCount: len(components)}
	for i, comp := range components {
		if i == clubComponent {
			rep.ClubhouseComponentSize = len(comp)
			continue
		}
		info := ComponentInfo{Size: len(comp)}
		best := -1.0
		for _, id := range comp {
			n := g.nodes[id]
			d := HaversineM(club.Lat, club.Lon, n.Lat, n.Lon)
			if best < 0 || d < best {
				best = d
				info.NearestNode = id
				info.NearestDistanceM = d
			}
		}
		rep.OtherComponents = append(rep.OtherComponents, info)
	}

	sort.Slice(rep.OtherComponents, func(i, j int) bool {
		a, b := rep.OtherComponents[i], rep.OtherComponents[j]
		if a.Size != b.Size {
			return a.Size > b.Size
		}
		return a.NearestDistanceM < b.NearestDistanceM
	})
	return rep
}

// bfs walks one component starting at start, marking visited nodes, and
// returns the component's members.
func (g *Graph) bfs(start NodeID, visited map[NodeID]bool) []NodeID {
	queue := []NodeID{start}
	visited[start] = true
	var comp []NodeID
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		comp = append(comp, cur)
		for _, e := range g.adj[cur] {
			if !visited[e.to] {
				visited[e.to] = true
				queue = append(queue, e.to)
			}
		}
	}
	return comp
}
