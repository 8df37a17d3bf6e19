// Package osm parses OpenStreetMap data fetched from the Overpass API into
// block-grid elements ready for processing.
package osm

import "github.com/geoforge/osmcraft/internal/coords"

// Node is a point feature projected onto the block grid.
type Node struct {
	ID   int64
	Tags map[string]string
	X    int
	Z    int
}

// XZ returns the node's ground-plane position.
func (n Node) XZ() coords.XZPoint {
	return coords.XZ(n.X, n.Z)
}

// Way is an ordered run of nodes, either an open path or a closed ring.
type Way struct {
	ID    int64
	Nodes []Node
	Tags  map[string]string
}

// Closed reports whether the way's first and last nodes are the same node.
func (w Way) Closed() bool {
	if len(w.Nodes) < 2 {
		return false
	}
	return w.Nodes[0].ID == w.Nodes[len(w.Nodes)-1].ID
}

// MemberRole distinguishes the rings of a multipolygon relation.
type MemberRole int

const (
	RoleOuter MemberRole = iota
	RoleInner
)

// Member is one way of a relation together with its ring role.
type Member struct {
	Role MemberRole
	Way  Way
}

// Relation is a multipolygon assembled from member ways.
type Relation struct {
	ID      int64
	Tags    map[string]string
	Members []Member
}

// Data holds everything parsed from one Overpass response.
type Data struct {
	Nodes     []Node
	Ways      []Way
	Relations []Relation

	// CoastlineWays are natural=coastline segments, kept apart because they
	// are filled jointly rather than per element.
	CoastlineWays [][]Node
}
