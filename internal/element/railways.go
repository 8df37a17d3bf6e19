package element

import (
	"github.com/geoforge/osmcraft/internal/block"
	"github.com/geoforge/osmcraft/internal/editor"
	"github.com/geoforge/osmcraft/internal/geometry"
	"github.com/geoforge/osmcraft/internal/osm"
)

type railShape int

const (
	shapeNorthSouth railShape = iota
	shapeEastWest
	shapeNorthEast
	shapeNorthWest
	shapeSouthEast
	shapeSouthWest
	shapeAscendingEast
	shapeAscendingWest
	shapeAscendingNorth
	shapeAscendingSouth
)

func (s railShape) String() string {
	switch s {
	case shapeNorthSouth:
		return "north_south"
	case shapeEastWest:
		return "east_west"
	case shapeNorthEast:
		return "north_east"
	case shapeNorthWest:
		return "north_west"
	case shapeSouthEast:
		return "south_east"
	case shapeSouthWest:
		return "south_west"
	case shapeAscendingEast:
		return "ascending_east"
	case shapeAscendingWest:
		return "ascending_west"
	case shapeAscendingNorth:
		return "ascending_north"
	default:
		return "ascending_south"
	}
}

func (s railShape) straightOrAscending() bool {
	switch s {
	case shapeNorthSouth, shapeEastWest,
		shapeAscendingEast, shapeAscendingWest,
		shapeAscendingNorth, shapeAscendingSouth:
		return true
	}
	return false
}

var skippedRailwayTypes = map[string]bool{
	"proposed":     true,
	"abandoned":    true,
	"subway":       true,
	"construction": true,
	"razed":        true,
	"turntable":    true,
}

// GenerateRailways lays a railway track along a mapped way: a gravel bed
// following the terrain, rails shaped to follow turns and climbs, oak log
// sleepers, and a powered rail over a redstone block on every eighth
// straight segment.
func GenerateRailways(ed *editor.WorldEditor, way osm.Way) {
	railwayType, ok := way.Tags["railway"]
	if !ok {
		return
	}
	if skippedRailwayTypes[railwayType] {
		return
	}
	if way.Tags["subway"] == "yes" || way.Tags["tunnel"] == "yes" {
		return
	}

	path := railPath(way)
	if len(path) == 0 {
		return
	}

	// Track the ground height under each rail so corners can stay level.
	baseHeights := make([]int, len(path))
	for i, p := range path {
		baseHeights[i] = ed.AbsoluteYAt(p.X, 0, p.Z)
	}

	for j := 1; j+1 < len(path); j++ {
		dirPrevX, dirPrevZ := path[j].X-path[j-1].X, path[j].Z-path[j-1].Z
		dirNextX, dirNextZ := path[j+1].X-path[j].X, path[j+1].Z-path[j].Z

		// When the route turns, force the neighbours down to the corner's
		// base height. Without the flat run the game cannot form a
		// turn-and-climb transition.
		if dirPrevX != dirNextX || dirPrevZ != dirNextZ {
			if baseHeights[j+1] > baseHeights[j] {
				baseHeights[j+1] = baseHeights[j]
			}
			if baseHeights[j-1] > baseHeights[j] {
				baseHeights[j-1] = baseHeights[j]
			}
		}
	}

	for idx, p := range path {
		baseY := baseHeights[idx]
		railY := baseY + 1

		// Rebuild the foundation and clear headroom, overwriting whatever
		// block the rail was sitting on.
		ed.SetBlockAbsolute(block.Gravel, p.X, baseY, p.Z, nil, forceOverride)
		ed.SetBlockAbsolute(block.Air, p.X, railY, p.Z, nil, forceOverride)
		ed.SetBlockAbsolute(block.Air, p.X, railY+1, p.Z, nil, forceOverride)

		var prev, next *railNeighbor
		if idx > 0 {
			prev = &railNeighbor{pt: path[idx-1], y: baseHeights[idx-1] + 1}
		}
		if idx+1 < len(path) {
			next = &railNeighbor{pt: path[idx+1], y: baseHeights[idx+1] + 1}
		}

		shape := determineRailShape(p, railY, prev, next)

		if idx%8 == 7 && shape.straightOrAscending() {
			ed.SetBlockAbsolute(block.RedstoneBlock, p.X, baseY, p.Z, nil, forceOverride)
			powered := block.With(block.PoweredRail, block.Properties{
				"shape":   shape.String(),
				"powered": "true",
			})
			ed.SetBlockWithPropertiesAbsolute(powered, p.X, railY, p.Z, nil, forceOverride)
		} else {
			rail := block.With(block.Rail, block.Properties{"shape": shape.String()})
			ed.SetBlockWithPropertiesAbsolute(rail, p.X, railY, p.Z, nil, forceOverride)
			if idx%4 == 0 {
				ed.SetBlockAbsolute(block.OakLog, p.X, baseY, p.Z, nil, forceOverride)
			}
		}
	}
}

// GenerateRollerCoaster lays an elevated rail on iron block foundations,
// with support pillars down to the ground on a fixed interval.
func GenerateRollerCoaster(ed *editor.WorldEditor, way osm.Way) {
	if way.Tags["roller_coaster"] != "track" {
		return
	}
	if way.Tags["indoor"] == "yes" || layerBelowGround(way.Tags) {
		return
	}

	const elevationHeight = 4
	const pillarInterval = 6

	path := railPath(way)
	for idx, p := range path {
		ed.SetBlock(block.IronBlock, p.X, elevationHeight, p.Z, nil, nil)

		railY := elevationHeight + 1
		var prev, next *railNeighbor
		if idx > 0 {
			prev = &railNeighbor{pt: path[idx-1], y: railY}
		}
		if idx+1 < len(path) {
			next = &railNeighbor{pt: path[idx+1], y: railY}
		}
		shape := determineRailShape(p, railY, prev, next)

		rail := block.With(block.Rail, block.Properties{"shape": shape.String()})
		ed.SetBlockWithProperties(rail, p.X, railY, p.Z, nil, nil)

		if p.X%pillarInterval == 0 && p.Z%pillarInterval == 0 {
			for y := 1; y < elevationHeight; y++ {
				ed.SetBlock(block.IronBlock, p.X, y, p.Z, nil, nil)
			}
		}
	}
}

// railPath joins the way's segments into one point list so every rail can
// see both its predecessor and successor, even across node boundaries.
func railPath(way osm.Way) []geometry.Point3 {
	var path []geometry.Point3
	for i := 1; i < len(way.Nodes); i++ {
		prev := way.Nodes[i-1].XZ()
		cur := way.Nodes[i].XZ()

		points := geometry.Line(prev.X, 0, prev.Z, cur.X, 0, cur.Z)
		smoothed := smoothDiagonalRails(points)

		if len(path) == 0 {
			path = append(path, smoothed...)
		} else {
			path = append(path, smoothed[1:]...)
		}
	}
	return path
}

// smoothDiagonalRails inserts an axis-aligned step between diagonally
// adjacent points, since rails cannot connect across a diagonal.
func smoothDiagonalRails(points []geometry.Point3) []geometry.Point3 {
	smoothed := make([]geometry.Point3, 0, len(points))

	for i, current := range points {
		smoothed = append(smoothed, current)
		if i+1 >= len(points) {
			continue
		}

		next := points[i+1]
		if abs(next.X-current.X) != 1 || abs(next.Z-current.Z) != 1 {
			continue
		}

		// Choose the intermediate based on the overall curve direction.
		var intermediate geometry.Point3
		switch {
		case i > 0:
			if points[i-1].X == current.X {
				// Coming from vertical, keep x constant.
				intermediate = geometry.Point3{X: current.X, Y: current.Y, Z: next.Z}
			} else {
				intermediate = geometry.Point3{X: next.X, Y: current.Y, Z: current.Z}
			}
		case i+2 < len(points):
			if points[i+2].X == next.X {
				// Going to vertical, keep x constant.
				intermediate = geometry.Point3{X: next.X, Y: current.Y, Z: current.Z}
			} else {
				intermediate = geometry.Point3{X: current.X, Y: current.Y, Z: next.Z}
			}
		default:
			intermediate = geometry.Point3{X: next.X, Y: current.Y, Z: current.Z}
		}
		smoothed = append(smoothed, intermediate)
	}
	return smoothed
}

type railNeighbor struct {
	pt geometry.Point3
	y  int
}

func determineRailShape(current geometry.Point3, currentY int, prev, next *railNeighbor) railShape {
	x, z := current.X, current.Z

	if prev != nil && prev.y > currentY {
		if shape, ok := ascendingShape(prev.pt.X-x, prev.pt.Z-z); ok {
			return shape
		}
	}
	if next != nil && next.y > currentY {
		if shape, ok := ascendingShape(next.pt.X-x, next.pt.Z-z); ok {
			return shape
		}
	}

	switch {
	case prev != nil && next != nil:
		px, pz := prev.pt.X, prev.pt.Z
		nx, nz := next.pt.X, next.pt.Z
		if px == nx {
			return shapeNorthSouth
		}
		if pz == nz {
			return shapeEastWest
		}

		fromPrev := [2]int{px - x, pz - z}
		toNext := [2]int{nx - x, nz - z}
		switch {
		case pair(fromPrev, toNext, -1, 0, 0, -1):
			return shapeNorthWest
		case pair(fromPrev, toNext, 1, 0, 0, -1):
			return shapeNorthEast
		case pair(fromPrev, toNext, -1, 0, 0, 1):
			return shapeSouthWest
		case pair(fromPrev, toNext, 1, 0, 0, 1):
			return shapeSouthEast
		}
		if abs(px-x) > abs(pz-z) {
			return shapeEastWest
		}
		return shapeNorthSouth
	case prev != nil:
		return endpointShape(prev.pt, x, z)
	case next != nil:
		return endpointShape(next.pt, x, z)
	}
	return shapeNorthSouth
}

// pair matches the two relative directions in either order.
func pair(a, b [2]int, ax, az, bx, bz int) bool {
	return (a == [2]int{ax, az} && b == [2]int{bx, bz}) ||
		(a == [2]int{bx, bz} && b == [2]int{ax, az})
}

func endpointShape(neighbor geometry.Point3, x, z int) railShape {
	if neighbor.Z == z && neighbor.X != x {
		return shapeEastWest
	}
	return shapeNorthSouth
}

func ascendingShape(dx, dz int) (railShape, bool) {
	switch {
	case dx == 1 && dz == 0:
		return shapeAscendingEast, true
	case dx == -1 && dz == 0:
		return shapeAscendingWest, true
	case dx == 0 && dz == 1:
		return shapeAscendingSouth, true
	case dx == 0 && dz == -1:
		return shapeAscendingNorth, true
	}
	return shapeNorthSouth, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
