package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/poregraph/poregraph/pkg/geometry"
)

func testNetwork() *Network {
	return New(
		[]geometry.Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[][2]int{{0, 1}, {0, 2}},
		"", "",
	)
}

func TestLabelsDefault(t *testing.T) {
	n := testNetwork()
	node, edge := n.Labels()
	if node != "node" || edge != "edge" {
		t.Errorf("default labels: got %q/%q", node, edge)
	}
}

func TestMarshalUsesLabels(t *testing.T) {
	n := testNetwork()
	n.NodeLabel = "pore"
	n.EdgeLabel = "throat"

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"pore.coords"`) || !strings.Contains(s, `"throat.conns"`) {
		t.Errorf("expected prefixed collection keys, got %s", s)
	}
}

func TestRoundTrip(t *testing.T) {
	n := testNetwork()
	n.NodeLabel = "site"
	n.EdgeLabel = "bond"

	var buf bytes.Buffer
	if err := Write(n, &buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.NodeLabel != "site" || got.EdgeLabel != "bond" {
		t.Errorf("labels lost in round trip: %q/%q", got.NodeLabel, got.EdgeLabel)
	}
	if got.NodeCount() != n.NodeCount() || got.EdgeCount() != n.EdgeCount() {
		t.Fatalf("counts changed: %d/%d vs %d/%d",
			got.NodeCount(), got.EdgeCount(), n.NodeCount(), n.EdgeCount())
	}
	for i := range n.Coords {
		if got.Coords[i] != n.Coords[i] {
			t.Errorf("coord %d changed: %v vs %v", i, got.Coords[i], n.Coords[i])
		}
	}
	for i := range n.Conns {
		if got.Conns[i] != n.Conns[i] {
			t.Errorf("edge %d changed: %v vs %v", i, got.Conns[i], n.Conns[i])
		}
	}
}

func TestReadRejectsInvalidEdges(t *testing.T) {
	doc := `{"node.coords": [[0,0,0],[1,0,0]], "edge.conns": [[0,5]]}`
	_, err := Read(strings.NewReader(doc))
	if !errors.Is(err, ErrInvalidEdgeEndpoint) {
		t.Errorf("expected ErrInvalidEdgeEndpoint, got %v", err)
	}
}

func TestReadRejectsMissingCollections(t *testing.T) {
	doc := `{"node.coords": [[0,0,0]]}`
	_, err := Read(strings.NewReader(doc))
	if !errors.Is(err, ErrMissingCollection) {
		t.Errorf("expected ErrMissingCollection, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	n := testNetwork()
	if err := n.Validate(); err != nil {
		t.Errorf("valid network: %v", err)
	}

	n.Conns = append(n.Conns, [2]int{1, 1})
	if err := n.Validate(); !errors.Is(err, ErrSelfEdge) {
		t.Errorf("expected ErrSelfEdge, got %v", err)
	}

	n.Conns = [][2]int{{0, 7}}
	if err := n.Validate(); !errors.Is(err, ErrInvalidEdgeEndpoint) {
		t.Errorf("expected ErrInvalidEdgeEndpoint, got %v", err)
	}
}

func TestNewCopiesInputs(t *testing.T) {
	coords := []geometry.Point{{0, 0, 0}, {1, 0, 0}}
	conns := [][2]int{{0, 1}}
	n := New(coords, conns, "", "")

	coords[0] = geometry.Point{9, 9, 9}
	conns[0] = [2]int{1, 0}

	if n.Coords[0] != (geometry.Point{0, 0, 0}) {
		t.Error("coords not copied")
	}
	if n.Conns[0] != [2]int{0, 1} {
		t.Error("conns not copied")
	}
}
