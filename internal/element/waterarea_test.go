package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoforge/osmcraft/internal/block"
	"github.com/geoforge/osmcraft/internal/ground"
	"github.com/geoforge/osmcraft/internal/osm"
)

func TestWaterAreaFromClosedWayFillsInterior(t *testing.T) {
	ed := testEditor(t, 16)
	way := osm.Way{
		ID:    1,
		Nodes: closedRing(2, 2, 12, 12),
		Tags:  map[string]string{"natural": "water", "water": "lake"},
	}

	GenerateWaterAreaFromWay(ed, way)

	b, ok := ed.BlockAbsolute(7, 0, 7)
	require.True(t, ok)
	assert.Equal(t, block.Water, b)

	// The outline itself counts as inside.
	b, ok = ed.BlockAbsolute(2, 0, 2)
	require.True(t, ok)
	assert.Equal(t, block.Water, b)

	_, ok = ed.BlockAbsolute(0, 0, 0)
	assert.False(t, ok)
	_, ok = ed.BlockAbsolute(14, 0, 14)
	assert.False(t, ok)
}

func TestWaterAreaOpenWayFallsBackToBarrierFill(t *testing.T) {
	ed := testEditor(t, 16)
	// Geometrically closed but the endpoints are distinct nodes, the shape
	// of data clipped at the download box.
	nodes := []osm.Node{
		node(2, 2), node(12, 2), node(12, 12), node(2, 12), node(2, 2),
	}
	way := osm.Way{ID: 1, Nodes: nodes, Tags: map[string]string{"natural": "water"}}

	GenerateWaterAreaFromWay(ed, way)

	b, ok := ed.BlockAbsolute(7, 0, 7)
	require.True(t, ok)
	assert.Equal(t, block.Water, b)

	_, ok = ed.BlockAbsolute(0, 0, 0)
	assert.False(t, ok)
}

func TestWaterAreaIgnoresNonWater(t *testing.T) {
	ed := testEditor(t, 16)
	way := osm.Way{
		ID:    1,
		Nodes: closedRing(2, 2, 12, 12),
		Tags:  map[string]string{"landuse": "meadow"},
	}
	GenerateWaterAreaFromWay(ed, way)
	assert.Zero(t, ed.ChunkCount())
}

func TestWaterRelationInnerRingStaysDry(t *testing.T) {
	ed := testEditor(t, 16)
	rel := osm.Relation{
		ID:   1,
		Tags: map[string]string{"natural": "water"},
		Members: []osm.Member{
			{Role: osm.RoleOuter, Way: osm.Way{ID: 2, Nodes: closedRing(1, 1, 13, 13)}},
			{Role: osm.RoleInner, Way: osm.Way{ID: 3, Nodes: closedRing(5, 5, 8, 8)}},
		},
	}

	GenerateWaterAreas(ed, rel)

	b, ok := ed.BlockAbsolute(3, 0, 3)
	require.True(t, ok)
	assert.Equal(t, block.Water, b)

	// The island inside the inner ring stays dry.
	_, ok = ed.BlockAbsolute(6, 0, 6)
	assert.False(t, ok)
	_, ok = ed.BlockAbsolute(0, 0, 0)
	assert.False(t, ok)
}

func TestWaterRelationSkipsUnderground(t *testing.T) {
	ed := testEditor(t, 16)
	rel := osm.Relation{
		ID:   1,
		Tags: map[string]string{"natural": "water", "layer": "-1"},
		Members: []osm.Member{
			{Role: osm.RoleOuter, Way: osm.Way{ID: 2, Nodes: closedRing(1, 1, 13, 13)}},
		},
	}
	GenerateWaterAreas(ed, rel)
	assert.Zero(t, ed.ChunkCount())
}

func TestCoastlineFillsSeawardSide(t *testing.T) {
	ed := testEditor(t, 16)
	GenerateCoastlines(ed, [][]osm.Node{closedRing(4, 4, 11, 11)})

	// Outside the coastline ring is ocean.
	b, ok := ed.BlockAbsolute(0, 0, 0)
	require.True(t, ok)
	assert.Equal(t, block.Water, b)
	b, ok = ed.BlockAbsolute(15, 0, 15)
	require.True(t, ok)
	assert.Equal(t, block.Water, b)

	// Land inside stays dry.
	_, ok = ed.BlockAbsolute(7, 0, 7)
	assert.False(t, ok)
}

func TestWaterAreaExcavatesDownToOutlineLevel(t *testing.T) {
	ed := testEditor(t, 16)

	// Terrain: low plain on the west, a rise on the east.
	rows := make([][]int16, 16)
	for z := range rows {
		rows[z] = make([]int16, 16)
		for x := range rows[z] {
			if x < 8 {
				rows[z][x] = 3
			} else {
				rows[z][x] = 7
			}
		}
	}
	ed.SetGround(ground.NewWithElevation(0, ground.FromHeights(0, rows)))

	way := osm.Way{
		ID:    1,
		Nodes: closedRing(1, 1, 14, 6),
		Tags:  map[string]string{"natural": "water"},
	}
	GenerateWaterAreaFromWay(ed, way)

	// The water surface sits at the lowest outline level, 3, and the rise
	// inside the area is dug out down to it.
	b, ok := ed.BlockAbsolute(13, 3, 4)
	require.True(t, ok)
	assert.Equal(t, block.Water, b)
	b, ok = ed.BlockAbsolute(13, 7, 4)
	require.True(t, ok)
	assert.Equal(t, block.Water, b)
	_, ok = ed.BlockAbsolute(13, 8, 4)
	assert.False(t, ok)

	// On the plain only the surface block is water.
	b, ok = ed.BlockAbsolute(2, 3, 3)
	require.True(t, ok)
	assert.Equal(t, block.Water, b)
	_, ok = ed.BlockAbsolute(2, 4, 3)
	assert.False(t, ok)
}

func TestMergeLoopsJoinsSharedEndpoints(t *testing.T) {
	a := osm.Node{ID: 1, X: 0, Z: 0}
	b := osm.Node{ID: 2, X: 5, Z: 0}
	c := osm.Node{ID: 3, X: 5, Z: 5}
	d := osm.Node{ID: 4, X: 0, Z: 5}

	loops := mergeLoops([][]osm.Node{
		{a, b, c},
		{c, d, a},
	})

	require.Len(t, loops, 1)
	assert.True(t, verifyLoops(loops))

	// The ring closes on itself and visits every node exactly once; which
	// node it starts at depends on the merge order.
	ring := loops[0]
	assert.Equal(t, ring[0].ID, ring[len(ring)-1].ID)
	require.Len(t, ring, 5)
	seen := make(map[int64]bool)
	for _, n := range ring[:len(ring)-1] {
		seen[n.ID] = true
	}
	assert.Len(t, seen, 4)
}

func TestMergeLoopsHandlesReversedWays(t *testing.T) {
	a := osm.Node{ID: 1, X: 0, Z: 0}
	b := osm.Node{ID: 2, X: 5, Z: 0}
	c := osm.Node{ID: 3, X: 5, Z: 5}
	d := osm.Node{ID: 4, X: 0, Z: 5}

	// Second way runs the same boundary in the opposite direction.
	loops := mergeLoops([][]osm.Node{
		{a, b, c},
		{a, d, c},
	})

	require.Len(t, loops, 1)
	assert.True(t, verifyLoops(loops))
}

func TestVerifyLoopsRejectsOpenLoop(t *testing.T) {
	a := osm.Node{ID: 1}
	b := osm.Node{ID: 2}
	assert.False(t, verifyLoops([][]osm.Node{{a, b}}))
	assert.True(t, verifyLoops([][]osm.Node{{a, b, a}}))
}
