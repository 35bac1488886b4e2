package course

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// nodeDoc is the serialized form of a graph node. The x/y attributes are
// longitude and latitude; kind is optional and defaults to "normal".
type nodeDoc struct {
	ID   int64   `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Kind string  `json:"kind,omitempty"`
}

// linkDoc is the serialized form of an undirected edge with length in meters.
type linkDoc struct {
	Source int64   `json:"source"`
	Target int64   `json:"target"`
	Length float64 `json:"length"`
}

// graphDoc is the node-link document stored in a course directory.
type graphDoc struct {
	Nodes []nodeDoc `json:"nodes"`
	Links []linkDoc `json:"links"`
}

// Load reads a node-link graph document from path. The graph is treated as
// read-only input: it is loaded once per course and shared across all
// replications.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading course graph %s: %w", path, err)
	}

	var doc graphDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing course graph %s: %w", path, err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("course graph %s has no nodes", path)
	}

	g := NewGraph()
	for _, n := range doc.Nodes {
		kind := NodeKind(n.Kind)
		switch kind {
		case KindNormal, KindClubhouse, KindTee, KindGreen:
		case "":
			kind = KindNormal
		default:
			logrus.Warnf("course graph node %d has unknown kind %q; treating as normal", n.ID, n.Kind)
			kind = KindNormal
		}
		g.AddNode(Node{ID: NodeID(n.ID), Lon: n.X, Lat: n.Y, Kind: kind})
	}
	for _, l := range doc.Links {
		if _, ok := g.Node(NodeID(l.Source)); !ok {
			return nil, fmt.Errorf("course graph %s: edge references unknown node %d", path, l.Source)
		}
		if _, ok := g.Node(NodeID(l.Target)); !ok {
			return nil, fmt.Errorf("course graph %s: edge references unknown node %d", path, l.Target)
		}
		if l.Length < 0 {
			return nil, fmt.Errorf("course graph %s: edge %d-%d has negative length", path, l.Source, l.Target)
		}
		g.AddEdge(NodeID(l.Source), NodeID(l.Target), l.Length)
	}

	logrus.Debugf("loaded course graph %s: %d nodes, %d links", path, len(doc.Nodes), len(doc.Links))
	return g, nil
}
