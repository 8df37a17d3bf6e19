package element

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/geoforge/osmcraft/internal/block"
	"github.com/geoforge/osmcraft/internal/editor"
	"github.com/geoforge/osmcraft/internal/geometry"
	"github.com/geoforge/osmcraft/internal/osm"
)

// vegetation is cleared from the surface above dug water channels.
var vegetation = []block.Block{block.Grass, block.Wheat, block.Carrots, block.Potatoes}

// GenerateWaterways digs a water channel along a waterway way, sized by its
// type and width metadata, with sloped banks and a dirt bed.
func GenerateWaterways(ed *editor.WorldEditor, way osm.Way, scale float64) {
	waterwayType, ok := way.Tags["waterway"]
	if !ok {
		return
	}
	if layerBelowGround(way.Tags) {
		return
	}

	defaultWidth, depth := waterwayDimensions(waterwayType)
	scaledDefault := clampF(float64(defaultWidth)*scale, 1, 5000)
	width := inferWidth(way.Tags, int(scaledDefault), scale)

	for i := 1; i < len(way.Nodes); i++ {
		prev := way.Nodes[i-1].XZ()
		cur := way.Nodes[i].XZ()
		for _, p := range geometry.Line(prev.X, 0, prev.Z, cur.X, 0, cur.Z) {
			carveWaterChannel(ed, p.X, p.Z, width, depth)
		}
	}
}

// waterwayDimensions returns the default channel width and depth in blocks
// for a waterway type.
func waterwayDimensions(waterwayType string) (width, depth int) {
	switch waterwayType {
	case "river":
		return 30, 4
	case "canal":
		return 16, 3
	case "stream":
		return 6, 2
	case "fairway":
		return 12, 3
	case "flowline":
		return 2, 1
	case "brook", "ditch", "drain":
		return 4, 2
	}
	return 8, 2
}

// widthKeys are alternative metadata keys that may carry the width,
// including data copied from an associated riverbank polygon.
var widthKeys = []string{
	"width",
	"riverbank:width",
	"riverbank_width",
	"est_width",
	"estimated_width",
	"avg_width",
	"average_width",
	"width:avg",
	"width:est",
}

func inferWidth(tags map[string]string, defaultBlocks int, scale float64) int {
	for _, key := range widthKeys {
		widthStr, ok := tags[key]
		if !ok {
			continue
		}
		meters, ok := parseWidthMeters(widthStr)
		if !ok {
			continue
		}
		blocks := int(math.Round(meters * scale))
		if blocks < 1 {
			blocks = 1
		}
		return blocks
	}
	return defaultBlocks
}

// parseWidthMeters reads a width value that may carry a unit suffix and
// returns it in meters.
func parseWidthMeters(s string) (float64, bool) {
	var number, unit strings.Builder
	for _, c := range strings.TrimSpace(s) {
		switch {
		case c >= '0' && c <= '9' || c == '.':
			number.WriteRune(c)
		case c == ',':
			number.WriteRune('.')
		case unicode.IsSpace(c):
		default:
			unit.WriteRune(unicode.ToLower(c))
		}
	}

	value, err := strconv.ParseFloat(number.String(), 64)
	if err != nil {
		return 0, false
	}

	u := unit.String()
	switch {
	case strings.Contains(u, "ft"), strings.Contains(u, "foot"),
		strings.Contains(u, "feet"), strings.Contains(u, "'"):
		return value * 0.3048, true
	case strings.Contains(u, "km"):
		return value * 1000, true
	}
	return value, true
}

// carveWaterChannel digs one cross-section of the channel centered on a
// path point: water down to the channel depth, a dirt bed below, sloped
// banks one block out, and vegetation cleared at the waterline.
func carveWaterChannel(ed *editor.WorldEditor, centerX, centerZ, width, depth int) {
	halfWidth := width / 2

	for x := centerX - halfWidth - 1; x <= centerX+halfWidth+1; x++ {
		for z := centerZ - halfWidth - 1; z <= centerZ+halfWidth+1; z++ {
			dx := abs(x - centerX)
			dz := abs(z - centerZ)
			dist := dx
			if dz > dist {
				dist = dz
			}

			switch {
			case dist <= halfWidth:
				for y := 1 - depth; y <= 0; y++ {
					ed.SetBlock(block.Water, x, y, z, nil, nil)
				}
				ed.SetBlock(block.Dirt, x, -depth, z, nil, nil)
				ed.SetBlock(block.Air, x, 1, z, vegetation, nil)
			case dist == halfWidth+1 && depth > 1:
				slopeDepth := depth - 1
				for y := 1 - slopeDepth; y <= 0; y++ {
					if y == 0 {
						ed.SetBlock(block.Water, x, y, z, nil, nil)
					} else {
						ed.SetBlock(block.Air, x, y, z, nil, nil)
					}
				}
				ed.SetBlock(block.Dirt, x, -slopeDepth, z, nil, nil)
				ed.SetBlock(block.Air, x, 1, z, vegetation, nil)
			}
		}
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
