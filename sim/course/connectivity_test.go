package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectivityReport_FullyConnected_SingleComponent(t *testing.T) {
	g := lineGraph()

	rep := g.ConnectivityReport(1)
	assert.Equal(t, 1, rep.ComponentCount)
	assert.Equal(t, g.NumNodes(), rep.ClubhouseComponentSize)
	assert.Empty(t, rep.OtherComponents)
	assert.True(t, rep.Connected(g.NumNodes()))
}

func TestConnectivityReport_IsolatedComponent_ReportedWithNearestNode(t *testing.T) {
	g := lineGraph()
	// Detached two-node island; node 20 is geographically closer to the clubhouse.
	g.AddNode(Node{ID: 20, Lon: -84.605, Lat: 34.02})
	g.AddNode(Node{ID: 21, Lon: -84.70, Lat: 34.10})
	g.AddEdge(20, 21, 50)

	rep := g.ConnectivityReport(1)
	assert.Equal(t, 2, rep.ComponentCount)
	assert.Equal(t, 3, rep.ClubhouseComponentSize)
	assert.False(t, rep.Connected(g.NumNodes()))

	if len(rep.OtherComponents) != 1 {
		t.Fatalf("OtherComponents = %d, want 1", len(rep.OtherComponents))
	}
	comp := rep.OtherComponents[0]
	assert.Equal(t, 2, comp.Size)
	assert.Equal(t, NodeID(20), comp.NearestNode)

	club, _ := g.Node(1)
	near, _ := g.Node(20)
	want := HaversineM(club.Lat, club.Lon, near.Lat, near.Lon)
	assert.InDelta(t, want, comp.NearestDistanceM, 1e-9)
}

func TestConnectivityReport_ComponentSizesSumToTotal(t *testing.T) {
	g := lineGraph()
	g.AddNode(Node{ID: 30, Lon: -84.40, Lat: 34.00})
	g.AddNode(Node{ID: 31, Lon: -84.41, Lat: 34.00})

	rep := g.ConnectivityReport(1)
	total := rep.ClubhouseComponentSize
	for _, c := range rep.OtherComponents {
		total += c.Size
	}
	assert.Equal(t, g.NumNodes(), total)
	assert.Equal(t, 3, rep.ComponentCount)
}
