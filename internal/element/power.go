package element

import (
	"github.com/geoforge/osmcraft/internal/block"
	"github.com/geoforge/osmcraft/internal/editor"
	"github.com/geoforge/osmcraft/internal/geometry"
	"github.com/geoforge/osmcraft/internal/osm"
)

const (
	mainLineHeight  = 10
	minorLineHeight = 6
)

func heightForPowerLine(powerValue string) (int, bool) {
	switch powerValue {
	case "line":
		return mainLineHeight, true
	case "minor_line":
		return minorLineHeight, true
	}
	return 0, false
}

func heightForPowerNode(powerValue string) (int, bool) {
	switch powerValue {
	case "tower":
		return mainLineHeight, true
	case "pole":
		return minorLineHeight, true
	}
	return 0, false
}

// GeneratePowerLines builds a pole under every node of a power way and
// spans chain wires between consecutive pole tops.
func GeneratePowerLines(ed *editor.WorldEditor, way osm.Way) {
	height, ok := heightForPowerLine(way.Tags["power"])
	if !ok {
		return
	}

	poleTops := make([]geometry.Point3, 0, len(way.Nodes))
	for _, node := range way.Nodes {
		if top, ok := buildPowerPole(ed, node, height); ok {
			poleTops = append(poleTops, top)
		}
	}
	spanPowerWires(ed, poleTops)
}

// GeneratePowerNode builds a free-standing tower or pole.
func GeneratePowerNode(ed *editor.WorldEditor, node osm.Node) {
	height, ok := heightForPowerNode(node.Tags["power"])
	if !ok {
		return
	}
	buildPowerPole(ed, node, height)
}

// buildPowerPole places a stone brick base on the ground with an oak fence
// shaft up to the wire height, and returns the top position.
func buildPowerPole(ed *editor.WorldEditor, node osm.Node, poleHeight int) (geometry.Point3, bool) {
	if poleHeight <= 0 {
		return geometry.Point3{}, false
	}

	baseGroundY := ed.AbsoluteYAt(node.X, 0, node.Z)
	stoneY := baseGroundY + 1
	ed.SetBlockAbsolute(block.StoneBricks, node.X, stoneY, node.Z, nil, nil)

	if poleHeight <= 1 {
		return geometry.Point3{X: node.X, Y: stoneY, Z: node.Z}, true
	}

	topY := ed.AbsoluteYAt(node.X, poleHeight, node.Z)
	for y := stoneY + 1; y <= topY; y++ {
		ed.SetBlockAbsolute(block.OakFence, node.X, y, node.Z, nil, nil)
	}
	return geometry.Point3{X: node.X, Y: topY, Z: node.Z}, true
}

func spanPowerWires(ed *editor.WorldEditor, poleTops []geometry.Point3) {
	for i := 1; i < len(poleTops); i++ {
		start, end := poleTops[i-1], poleTops[i]
		if start == end {
			continue
		}

		line := geometry.Line(start.X, start.Y, start.Z, end.X, end.Y, end.Z)
		if len(line) <= 2 {
			continue
		}

		// Skip the endpoints so the chain does not replace the pole tops.
		for idx := 1; idx < len(line)-1; idx++ {
			axis := chainAxis(line, idx)
			chain := block.With(block.Chain, block.Properties{"axis": axis})
			cur := line[idx]
			ed.SetBlockWithPropertiesAbsolute(chain, cur.X, cur.Y, cur.Z, nil, nil)
		}
	}
}

// chainAxis orients a wire link along its dominant travel direction.
func chainAxis(line []geometry.Point3, idx int) string {
	if axis, ok := axisFromDelta(line[idx], line[idx-1]); ok {
		return axis
	}
	if idx+1 < len(line) {
		if axis, ok := axisFromDelta(line[idx+1], line[idx]); ok {
			return axis
		}
	}
	return "y"
}

func axisFromDelta(a, b geometry.Point3) (string, bool) {
	switch {
	case a.X != b.X:
		return "x", true
	case a.Z != b.Z:
		return "z", true
	case a.Y != b.Y:
		return "y", true
	}
	return "", false
}
