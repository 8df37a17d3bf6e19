package element

import (
	"log"
	"math"

	"github.com/geoforge/osmcraft/internal/biome"
	"github.com/geoforge/osmcraft/internal/block"
	"github.com/geoforge/osmcraft/internal/coords"
	"github.com/geoforge/osmcraft/internal/editor"
	"github.com/geoforge/osmcraft/internal/geometry"
	"github.com/geoforge/osmcraft/internal/osm"
)

// GenerateWaterAreas fills a water multipolygon relation: outer rings are
// flooded down to the water level, inner rings stay dry. Open outer rings
// fall back to a barrier fill.
func GenerateWaterAreas(ed *editor.WorldEditor, rel osm.Relation) {
	b := biome.FromTags(rel.Tags)

	if !relationIsWater(rel.Tags) {
		return
	}
	if layerBelowGround(rel.Tags) {
		return
	}

	var outers, inners [][]osm.Node
	for _, mem := range rel.Members {
		switch mem.Role {
		case osm.RoleOuter:
			outers = append(outers, mem.Way.Nodes)
		case osm.RoleInner:
			inners = append(inners, mem.Way.Nodes)
		}
	}

	allLines := make([][]osm.Node, 0, len(outers)+len(inners))
	allLines = append(allLines, outers...)
	allLines = append(allLines, inners...)

	// Any unclosed outer ring means the geometry was clipped by the
	// download box, so loop assembly cannot succeed.
	for _, outer := range outers {
		if ringOpen(outer) {
			fillFromBarriers(ed, allLines, false, groundWaterLevel(ed), b)
			return
		}
	}

	for i, outerNodes := range outers {
		individualOuters := [][]osm.Node{outerNodes}
		individualOuters = mergeLoops(individualOuters)
		if !verifyLoops(individualOuters) {
			log.Printf("water relation %d: invalid outer polygon %d, falling back to barrier fill", rel.ID, i+1)
			fillFromBarriers(ed, allLines, false, groundWaterLevel(ed), b)
			return
		}

		inners = mergeLoops(inners)
		if !verifyLoops(inners) {
			log.Printf("water relation %d: disconnected inner rings, falling back to barrier fill", rel.ID)
			fillFromBarriers(ed, allLines, false, groundWaterLevel(ed), b)
			return
		}

		outersXZ := ringsToXZ(individualOuters)
		innersXZ := ringsToXZ(inners)

		waterLevel := outlineWaterLevel(ed, outersXZ)
		fillPolygons(ed, outersXZ, innersXZ, waterLevel, false, b)
	}
}

// GenerateWaterAreaFromWay fills a closed water way the same way a
// single-ring relation would be.
func GenerateWaterAreaFromWay(ed *editor.WorldEditor, way osm.Way) {
	b := biome.FromTags(way.Tags)

	if !wayIsWater(way.Tags) {
		return
	}
	if layerBelowGround(way.Tags) {
		return
	}
	if len(way.Nodes) == 0 {
		return
	}

	if ringOpen(way.Nodes) {
		fillFromBarriers(ed, [][]osm.Node{way.Nodes}, false, groundWaterLevel(ed), b)
		return
	}

	outer := nodesToXZ(way.Nodes)
	waterLevel := outlineWaterLevel(ed, [][]coords.XZPoint{outer})
	fillPolygons(ed, [][]coords.XZPoint{outer}, nil, waterLevel, false, b)
}

// GenerateCoastlines floods everything seaward of the coastline ways, that
// is outside the barrier they form.
func GenerateCoastlines(ed *editor.WorldEditor, ways [][]osm.Node) {
	if len(ways) == 0 {
		return
	}
	fillFromBarriers(ed, ways, true, groundWaterLevel(ed), biome.Ocean)
}

func relationIsWater(tags map[string]string) bool {
	if _, ok := tags["water"]; ok {
		return true
	}
	return tags["natural"] == "water" || tags["waterway"] == "riverbank"
}

func wayIsWater(tags map[string]string) bool {
	if relationIsWater(tags) {
		return true
	}
	if tags["water"] == "river" {
		return true
	}
	return tags["waterway"] == "river" && tags["area"] == "yes"
}

func ringOpen(nodes []osm.Node) bool {
	if len(nodes) == 0 {
		return true
	}
	return nodes[0].ID != nodes[len(nodes)-1].ID
}

func nodesToXZ(nodes []osm.Node) []coords.XZPoint {
	points := make([]coords.XZPoint, len(nodes))
	for i, n := range nodes {
		points[i] = n.XZ()
	}
	return points
}

func ringsToXZ(rings [][]osm.Node) [][]coords.XZPoint {
	out := make([][]coords.XZPoint, len(rings))
	for i, ring := range rings {
		out[i] = nodesToXZ(ring)
	}
	return out
}

// groundWaterLevel is the water surface for fallback fills: the base ground
// level when terrain is enabled, sea level otherwise.
func groundWaterLevel(ed *editor.WorldEditor) int {
	g := ed.Ground()
	if g != nil && g.ElevationEnabled() {
		return g.GroundLevel()
	}
	return 0
}

// outlineWaterLevel picks the lowest terrain level along the outer rings so
// the whole area floods to a single flat surface.
func outlineWaterLevel(ed *editor.WorldEditor, outers [][]coords.XZPoint) int {
	g := ed.Ground()
	if g == nil || !g.ElevationEnabled() {
		return 0
	}
	minX, minZ := ed.MinCoords()
	var points []coords.XZPoint
	for _, ring := range outers {
		for _, pt := range ring {
			points = append(points, coords.XZ(pt.X-minX, pt.Z-minZ))
		}
	}
	if level, ok := g.MinLevel(points); ok {
		return level
	}
	return 0
}

// mergeLoops joins ways that share endpoint nodes into full rings. It
// repeats until no more joins are possible.
func mergeLoops(loops [][]osm.Node) [][]osm.Node {
	for {
		merged := false
	outer:
		for i := 0; i < len(loops); i++ {
			x := loops[i]
			if !ringOpen(x) {
				continue
			}
			for j := 0; j < len(loops); j++ {
				if i == j {
					continue
				}
				y := loops[j]
				if !ringOpen(y) {
					continue
				}

				var joined []osm.Node
				switch {
				case x[0].ID == y[0].ID:
					joined = append(reversed(x), y[1:]...)
				case x[len(x)-1].ID == y[len(y)-1].ID:
					joined = append(append([]osm.Node{}, x...), reversed(y)[1:]...)
				case x[0].ID == y[len(y)-1].ID:
					joined = append(append([]osm.Node{}, y...), x[1:]...)
				case x[len(x)-1].ID == y[0].ID:
					joined = append(append([]osm.Node{}, x...), y[1:]...)
				default:
					continue
				}

				rest := make([][]osm.Node, 0, len(loops)-1)
				for k, l := range loops {
					if k != i && k != j {
						rest = append(rest, l)
					}
				}
				loops = append(rest, joined)
				merged = true
				break outer
			}
		}
		if !merged {
			return loops
		}
	}
}

func reversed(nodes []osm.Node) []osm.Node {
	out := make([]osm.Node, len(nodes))
	for i, n := range nodes {
		out[len(nodes)-1-i] = n
	}
	return out
}

func verifyLoops(loops [][]osm.Node) bool {
	for _, l := range loops {
		if len(l) == 0 || l[0].ID != l[len(l)-1].ID {
			log.Println("water area: disconnected loop")
			return false
		}
	}
	return true
}

// fillPolygons walks every column of the world box and floods it when it
// lies inside an outer ring and outside every inner ring, or the reverse
// when fillOutside is set.
func fillPolygons(ed *editor.WorldEditor, outers, inners [][]coords.XZPoint, waterLevel int, fillOutside bool, b biome.Biome) {
	minX, minZ := ed.MinCoords()
	maxX, maxZ := ed.MaxCoords()

	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			inOuter := false
			for _, ring := range outers {
				if geometry.PointInRing(x, z, ring) {
					inOuter = true
					break
				}
			}
			inInner := false
			for _, ring := range inners {
				if geometry.PointInRing(x, z, ring) {
					inInner = true
					break
				}
			}

			fill := inOuter && !inInner
			if fillOutside {
				fill = !inOuter || inInner
			}
			if fill {
				floodColumn(ed, x, z, waterLevel, b)
			}
		}
	}
}

// fillFromBarriers rasterizes the given ways into a barrier grid, seals
// their border crossings along the world edge, flood-fills the outside from
// the border, and floods either the enclosed or the outside cells.
func fillFromBarriers(ed *editor.WorldEditor, lines [][]osm.Node, fillOutside bool, waterLevel int, b biome.Biome) {
	minX, minZ := ed.MinCoords()
	maxX, maxZ := ed.MaxCoords()
	width := maxX - minX + 1
	height := maxZ - minZ + 1

	barrier := make([][]bool, height)
	for i := range barrier {
		barrier[i] = make([]bool, width)
	}

	for _, way := range lines {
		rasterizeAndSeal(nodesToXZ(way), barrier, minX, minZ, maxX, maxZ)
	}

	outside := make([][]bool, height)
	for i := range outside {
		outside[i] = make([]bool, width)
	}

	type cell struct{ x, z int }
	var queue []cell
	for x := 0; x < width; x++ {
		if !barrier[0][x] {
			queue = append(queue, cell{x, 0})
		}
		if !barrier[height-1][x] {
			queue = append(queue, cell{x, height - 1})
		}
	}
	for z := 0; z < height; z++ {
		if !barrier[z][0] {
			queue = append(queue, cell{0, z})
		}
		if !barrier[z][width-1] {
			queue = append(queue, cell{width - 1, z})
		}
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c.x < 0 || c.z < 0 || c.x >= width || c.z >= height {
			continue
		}
		if outside[c.z][c.x] || barrier[c.z][c.x] {
			continue
		}
		outside[c.z][c.x] = true
		queue = append(queue,
			cell{c.x - 1, c.z}, cell{c.x + 1, c.z},
			cell{c.x, c.z - 1}, cell{c.x, c.z + 1})
	}

	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			fill := !outside[z][x] && !barrier[z][x]
			if fillOutside {
				fill = outside[z][x] || barrier[z][x]
			}
			if fill {
				floodColumn(ed, minX+x, minZ+z, waterLevel, b)
			}
		}
	}
}

// floodColumn writes water into one column. Terrain above the water level
// is excavated to water so lakes sit flush in hillsides; terrain below gets
// a single surface block at the water level.
func floodColumn(ed *editor.WorldEditor, x, z, waterLevel int, b biome.Biome) {
	g := ed.Ground()
	minX, minZ := ed.MinCoords()

	terrain := waterLevel
	if g != nil {
		terrain = g.Level(coords.XZ(x-minX, z-minZ))
	}

	if terrain >= waterLevel {
		for y := waterLevel; y <= terrain; y++ {
			ed.SetBlockAbsolute(block.Water, x, y, z, nil, forceOverride)
			ed.SetBiomeAbsolute(b, x, y, z)
		}
		return
	}
	ed.SetBlockAbsolute(block.Water, x, waterLevel, z, nil, forceOverride)
	ed.SetBiomeAbsolute(b, x, waterLevel, z)
}

func inBounds(x, z, minX, minZ, maxX, maxZ int) bool {
	return x >= minX && x <= maxX && z >= minZ && z <= maxZ
}

// rasterizeAndSeal draws a way into the barrier grid and, where the way
// leaves and re-enters the world box, closes the gap by drawing along the
// box border so the later flood fill cannot leak through.
func rasterizeAndSeal(line []coords.XZPoint, barrier [][]bool, minX, minZ, maxX, maxZ int) {
	var borderNodes []coords.XZPoint

	insidePrev := false
	if len(line) > 0 {
		insidePrev = inBounds(line[0].X, line[0].Z, minX, minZ, maxX, maxZ)
	}

	for i := 1; i < len(line); i++ {
		a, b := line[i-1], line[i]
		insideCurr := inBounds(b.X, b.Z, minX, minZ, maxX, maxZ)

		for _, p := range geometry.Line(a.X, 0, a.Z, b.X, 0, b.Z) {
			if !inBounds(p.X, p.Z, minX, minZ, maxX, maxZ) {
				continue
			}
			barrier[p.Z-minZ][p.X-minX] = true
		}

		if insidePrev != insideCurr {
			borderNodes = append(borderNodes, clipToBorder(a, b, minX, minZ, maxX, maxZ))
		}
		insidePrev = insideCurr
	}

	if len(borderNodes)%2 != 0 {
		log.Printf("water area: odd number of border intersections: %d", len(borderNodes))
		return
	}
	for i := 0; i+1 < len(borderNodes); i += 2 {
		drawAlongBorder(borderNodes[i], borderNodes[i+1], minX, minZ, maxX, maxZ, barrier)
	}
}

// clipToBorder projects the exit point of a segment leaving the world box
// onto the box border.
func clipToBorder(a, b coords.XZPoint, minX, minZ, maxX, maxZ int) coords.XZPoint {
	ax, az := float64(a.X), float64(a.Z)
	bx, bz := float64(b.X), float64(b.Z)
	dx := bx - ax
	dz := bz - az

	var candidates []float64
	if dx != 0 {
		if bx < float64(minX) {
			candidates = append(candidates, (float64(minX)-ax)/dx)
		} else if bx > float64(maxX) {
			candidates = append(candidates, (float64(maxX)-ax)/dx)
		}
	}
	if dz != 0 {
		if bz < float64(minZ) {
			candidates = append(candidates, (float64(minZ)-az)/dz)
		} else if bz > float64(maxZ) {
			candidates = append(candidates, (float64(maxZ)-az)/dz)
		}
	}

	t := 2.0
	for _, c := range candidates {
		if c >= 0 && c <= 1 && c < t {
			t = c
		}
	}
	x := int(math.Round(ax + dx*t))
	z := int(math.Round(az + dz*t))
	return coords.XZ(clampInt(x, minX, maxX), clampInt(z, minZ, maxZ))
}

// drawAlongBorder marks barrier cells along the world box perimeter between
// two border points, taking the shorter way around.
func drawAlongBorder(from, to coords.XZPoint, minX, minZ, maxX, maxZ int, barrier [][]bool) {
	width := maxX - minX + 1
	height := maxZ - minZ + 1
	perimeter := 2*(width+height) - 4

	idx := func(p coords.XZPoint) int {
		switch {
		case p.Z == minZ:
			return p.X - minX
		case p.X == maxX:
			return (maxX - minX) + (p.Z - minZ)
		case p.Z == maxZ:
			return (maxX - minX) + (maxZ - minZ) + (maxX - p.X)
		default:
			return 2*(maxX-minX) + (maxZ - minZ) + (maxZ - p.Z)
		}
	}

	idxFrom, idxTo := idx(from), idx(to)
	cwDist := (idxTo - idxFrom + perimeter) % perimeter
	ccwDist := (idxFrom - idxTo + perimeter) % perimeter
	clockwise := cwDist <= ccwDist
	steps := cwDist
	if !clockwise {
		steps = ccwDist
	}

	for s := 0; s <= steps; s++ {
		barrier[from.Z-minZ][from.X-minX] = true
		if from == to {
			break
		}

		if clockwise {
			switch {
			case from.Z == minZ && from.X < maxX:
				from.X++
			case from.X == maxX && from.Z < maxZ:
				from.Z++
			case from.Z == maxZ && from.X > minX:
				from.X--
			case from.X == minX && from.Z > minZ:
				from.Z--
			}
		} else {
			switch {
			case from.Z == minZ && from.X > minX:
				from.X--
			case from.X == minX && from.Z < maxZ:
				from.Z++
			case from.Z == maxZ && from.X < maxX:
				from.X++
			case from.X == maxX && from.Z > minZ:
				from.Z--
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
