package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoforge/osmcraft/internal/block"
	"github.com/geoforge/osmcraft/internal/geometry"
)

func TestRailPathSmoothsDiagonals(t *testing.T) {
	way := wayOf(map[string]string{"railway": "rail"}, node(0, 0), node(5, 5))
	path := railPath(way)
	require.NotEmpty(t, path)

	// Rails cannot connect diagonally, so every step moves along one axis.
	for i := 1; i < len(path); i++ {
		dx := abs(path[i].X - path[i-1].X)
		dz := abs(path[i].Z - path[i-1].Z)
		assert.Equal(t, 1, dx+dz, "diagonal step at %d: %v -> %v", i, path[i-1], path[i])
	}
}

func TestGenerateRailwaysLaysTrack(t *testing.T) {
	ed := testEditor(t, 32)
	way := wayOf(map[string]string{"railway": "rail"}, node(0, 5), node(20, 5))

	GenerateRailways(ed, way)

	// Gravel bed under the track.
	b, ok := ed.BlockAbsolute(3, 0, 5)
	require.True(t, ok)
	assert.Equal(t, block.Gravel, b)

	// Oak log sleepers every fourth block.
	b, ok = ed.BlockAbsolute(4, 0, 5)
	require.True(t, ok)
	assert.Equal(t, block.OakLog, b)

	// Every eighth straight segment is a powered rail on a redstone block.
	b, ok = ed.BlockAbsolute(7, 0, 5)
	require.True(t, ok)
	assert.Equal(t, block.RedstoneBlock, b)
	b, ok = ed.BlockAbsolute(7, 1, 5)
	require.True(t, ok)
	assert.Equal(t, block.PoweredRail, b)

	// Plain rail everywhere else.
	b, ok = ed.BlockAbsolute(3, 1, 5)
	require.True(t, ok)
	assert.Equal(t, block.Rail, b)

	// Headroom above the rail stays clear.
	_, ok = ed.BlockAbsolute(3, 2, 5)
	assert.False(t, ok)
}

func TestGenerateRailwaysSkipsUnbuildable(t *testing.T) {
	for _, tags := range []map[string]string{
		{"railway": "abandoned"},
		{"railway": "proposed"},
		{"railway": "subway"},
		{"railway": "rail", "tunnel": "yes"},
		{"railway": "rail", "subway": "yes"},
		{"highway": "residential"},
	} {
		ed := testEditor(t, 32)
		way := wayOf(tags, node(0, 5), node(20, 5))
		GenerateRailways(ed, way)
		assert.Zero(t, ed.ChunkCount(), "tags %v", tags)
	}
}

func TestDetermineRailShape(t *testing.T) {
	at := func(x, z, y int) *railNeighbor {
		return &railNeighbor{pt: geometry.Point3{X: x, Z: z}, y: y}
	}
	cur := geometry.Point3{X: 0, Z: 0}

	// Straight runs.
	assert.Equal(t, shapeNorthSouth, determineRailShape(cur, 1, at(0, -1, 1), at(0, 1, 1)))
	assert.Equal(t, shapeEastWest, determineRailShape(cur, 1, at(-1, 0, 1), at(1, 0, 1)))

	// Corners, in both travel directions.
	assert.Equal(t, shapeNorthWest, determineRailShape(cur, 1, at(-1, 0, 1), at(0, -1, 1)))
	assert.Equal(t, shapeNorthWest, determineRailShape(cur, 1, at(0, -1, 1), at(-1, 0, 1)))
	assert.Equal(t, shapeNorthEast, determineRailShape(cur, 1, at(1, 0, 1), at(0, -1, 1)))
	assert.Equal(t, shapeSouthWest, determineRailShape(cur, 1, at(-1, 0, 1), at(0, 1, 1)))
	assert.Equal(t, shapeSouthEast, determineRailShape(cur, 1, at(1, 0, 1), at(0, 1, 1)))

	// Climbs toward a higher neighbour.
	assert.Equal(t, shapeAscendingEast, determineRailShape(cur, 1, at(1, 0, 2), at(-1, 0, 1)))
	assert.Equal(t, shapeAscendingNorth, determineRailShape(cur, 1, at(0, -1, 2), at(0, 1, 1)))

	// Endpoints follow their single neighbour.
	assert.Equal(t, shapeEastWest, determineRailShape(cur, 1, nil, at(1, 0, 1)))
	assert.Equal(t, shapeNorthSouth, determineRailShape(cur, 1, at(0, 1, 1), nil))
}

func TestRailShapeStrings(t *testing.T) {
	assert.Equal(t, "north_south", shapeNorthSouth.String())
	assert.Equal(t, "south_east", shapeSouthEast.String())
	assert.Equal(t, "ascending_west", shapeAscendingWest.String())

	assert.True(t, shapeNorthSouth.straightOrAscending())
	assert.True(t, shapeAscendingNorth.straightOrAscending())
	assert.False(t, shapeNorthWest.straightOrAscending())
}

func TestGenerateRollerCoaster(t *testing.T) {
	ed := testEditor(t, 32)
	way := wayOf(map[string]string{"roller_coaster": "track"}, node(0, 6), node(13, 6))

	GenerateRollerCoaster(ed, way)

	// Elevated iron foundation with the rail on top.
	b, ok := ed.BlockAbsolute(3, 4, 6)
	require.True(t, ok)
	assert.Equal(t, block.IronBlock, b)
	b, ok = ed.BlockAbsolute(3, 5, 6)
	require.True(t, ok)
	assert.Equal(t, block.Rail, b)

	// Support pillars only on the interval grid.
	b, ok = ed.BlockAbsolute(6, 2, 6)
	require.True(t, ok)
	assert.Equal(t, block.IronBlock, b)
	_, ok = ed.BlockAbsolute(3, 2, 6)
	assert.False(t, ok)
}

func TestRollerCoasterSkipsIndoorAndUnderground(t *testing.T) {
	for _, tags := range []map[string]string{
		{"roller_coaster": "track", "indoor": "yes"},
		{"roller_coaster": "track", "layer": "-2"},
		{"roller_coaster": "station"},
	} {
		ed := testEditor(t, 32)
		way := wayOf(tags, node(0, 6), node(13, 6))
		GenerateRollerCoaster(ed, way)
		assert.Zero(t, ed.ChunkCount(), "tags %v", tags)
	}
}
