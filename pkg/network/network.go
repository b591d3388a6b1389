// Package network defines the spatial network record produced by the
// generation pipeline and the Gabriel filter that derives it from a
// Delaunay candidate edge set.
//
// A Network is the pair (node coordinates, edge index pairs). Nodes are
// identified by their position in the coordinate sequence; filtering never
// removes or reorders nodes, only edges. The node and edge collection
// labels ("node"/"edge" by default, often "pore"/"throat" in porous-media
// work) are a serialization concern with no effect on the geometry.
package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/poregraph/poregraph/pkg/geometry"
)

// Default collection labels.
const (
	DefaultNodeLabel = "node"
	DefaultEdgeLabel = "edge"
)

var (
	// ErrInvalidEdgeEndpoint is returned by Validate when an edge
	// references a node index outside the coordinate sequence.
	ErrInvalidEdgeEndpoint = errors.New("edge references invalid node index")

	// ErrSelfEdge is returned by Validate when an edge connects a node
	// to itself.
	ErrSelfEdge = errors.New("self edge")

	// ErrMissingCollection is returned when a serialized document lacks
	// the coordinate or connectivity collection.
	ErrMissingCollection = errors.New("missing coords or conns collection")
)

// Network is an immutable spatial graph snapshot: node coordinates plus
// undirected edge index pairs.
type Network struct {
	// NodeLabel and EdgeLabel name the two collections in serialized
	// output. Empty values fall back to the defaults.
	NodeLabel string
	EdgeLabel string

	Coords []geometry.Point
	Conns  [][2]int
}

// New assembles a network from coordinates and edges. The inputs are
// copied, so later mutation of the arguments does not affect the network.
func New(coords []geometry.Point, conns [][2]int, nodeLabel, edgeLabel string) *Network {
	n := &Network{
		NodeLabel: nodeLabel,
		EdgeLabel: edgeLabel,
		Coords:    make([]geometry.Point, len(coords)),
		Conns:     make([][2]int, len(conns)),
	}
	copy(n.Coords, coords)
	copy(n.Conns, conns)
	return n
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.Coords) }

// EdgeCount returns the number of edges.
func (n *Network) EdgeCount() int { return len(n.Conns) }

// Labels returns the effective collection labels, substituting defaults
// for empty values.
func (n *Network) Labels() (node, edge string) {
	node, edge = n.NodeLabel, n.EdgeLabel
	if node == "" {
		node = DefaultNodeLabel
	}
	if edge == "" {
		edge = DefaultEdgeLabel
	}
	return node, edge
}

// Validate checks structural consistency: every edge must reference two
// distinct, in-range node indices.
func (n *Network) Validate() error {
	for i, e := range n.Conns {
		if e[0] == e[1] {
			return fmt.Errorf("%w: edge %d", ErrSelfEdge, i)
		}
		if e[0] < 0 || e[1] < 0 || e[0] >= len(n.Coords) || e[1] >= len(n.Coords) {
			return fmt.Errorf("%w: edge %d = %v with %d nodes", ErrInvalidEdgeEndpoint, i, e, len(n.Coords))
		}
	}
	return nil
}

// document is the serialized form: two collections keyed by label, matching
// the "<node>.coords" / "<edge>.conns" schema of the upstream ecosystem.
type document map[string]json.RawMessage

// MarshalJSON encodes the network as a prefix-keyed document.
func (n *Network) MarshalJSON() ([]byte, error) {
	nodeLabel, edgeLabel := n.Labels()

	coords := make([][3]float64, len(n.Coords))
	for i, p := range n.Coords {
		coords[i] = p
	}
	coordsJSON, err := json.Marshal(coords)
	if err != nil {
		return nil, err
	}
	connsJSON, err := json.Marshal(n.Conns)
	if err != nil {
		return nil, err
	}

	return json.Marshal(document{
		nodeLabel + ".coords": coordsJSON,
		edgeLabel + ".conns":  connsJSON,
	})
}

// UnmarshalJSON decodes a prefix-keyed document, recovering the collection
// labels from the key prefixes.
func (n *Network) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var haveCoords, haveConns bool
	for key, raw := range doc {
		switch {
		case len(key) > len(".coords") && key[len(key)-len(".coords"):] == ".coords":
			var coords [][3]float64
			if err := json.Unmarshal(raw, &coords); err != nil {
				return fmt.Errorf("decode %s: %w", key, err)
			}
			n.NodeLabel = key[:len(key)-len(".coords")]
			n.Coords = make([]geometry.Point, len(coords))
			for i, c := range coords {
				n.Coords[i] = c
			}
			haveCoords = true
		case len(key) > len(".conns") && key[len(key)-len(".conns"):] == ".conns":
			var conns [][2]int
			if err := json.Unmarshal(raw, &conns); err != nil {
				return fmt.Errorf("decode %s: %w", key, err)
			}
			n.EdgeLabel = key[:len(key)-len(".conns")]
			n.Conns = conns
			haveConns = true
		}
	}
	if !haveCoords || !haveConns {
		return ErrMissingCollection
	}
	return n.Validate()
}

// Marshal encodes the network to indented JSON bytes.
func Marshal(n *Network) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(n, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the network as indented JSON to w.
func Write(n *Network, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a network document from r and validates it.
func Read(r io.Reader) (*Network, error) {
	var n Network
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &n, nil
}
