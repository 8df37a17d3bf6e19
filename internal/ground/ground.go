// Package ground models terrain levels for the generated world: either a
// flat plane or an elevation grid sampled from real-world or synthetic data.
package ground

import (
	"math"

	"github.com/geoforge/osmcraft/internal/coords"
)

// MaxY is the build height limit; elevation never scales past it.
const MaxY = 319

// baseHeightScale converts real elevation meters to block heights before the
// headroom clamp.
const baseHeightScale = 0.7

// Ground answers terrain level queries. A flat Ground returns its configured
// level everywhere.
type Ground struct {
	elevationEnabled bool
	groundLevel      int
	data             *ElevationData
}

// NewFlat returns a Ground with the same level at every column.
func NewFlat(groundLevel int) *Ground {
	return &Ground{groundLevel: groundLevel}
}

// NewWithElevation returns a Ground backed by an elevation grid.
func NewWithElevation(groundLevel int, data *ElevationData) *Ground {
	return &Ground{elevationEnabled: true, groundLevel: groundLevel, data: data}
}

// ElevationEnabled reports whether the ground carries an elevation grid.
func (g *Ground) ElevationEnabled() bool { return g.elevationEnabled }

// GroundLevel returns the configured base level regardless of elevation data.
func (g *Ground) GroundLevel() int { return g.groundLevel }

// Level returns the terrain level at the given column.
func (g *Ground) Level(p coords.XZPoint) int {
	if !g.elevationEnabled || g.data == nil {
		return g.groundLevel
	}
	xRatio := clamp01(float64(p.X) / float64(g.data.width))
	zRatio := clamp01(float64(p.Z) / float64(g.data.height))
	x := min(int(math.Round(xRatio*float64(g.data.width-1))), g.data.width-1)
	z := min(int(math.Round(zRatio*float64(g.data.height-1))), g.data.height-1)
	return g.data.HeightAt(x, z)
}

// MinLevel returns the lowest terrain level among the given columns. The
// second return is false for an empty, elevation-enabled query.
func (g *Ground) MinLevel(points []coords.XZPoint) (int, bool) {
	if !g.elevationEnabled {
		return g.groundLevel, true
	}
	if len(points) == 0 {
		return 0, false
	}
	level := g.Level(points[0])
	for _, p := range points[1:] {
		if l := g.Level(p); l < level {
			level = l
		}
	}
	return level, true
}

// MaxLevel returns the highest terrain level among the given columns.
func (g *Ground) MaxLevel(points []coords.XZPoint) (int, bool) {
	if !g.elevationEnabled {
		return g.groundLevel, true
	}
	if len(points) == 0 {
		return 0, false
	}
	level := g.Level(points[0])
	for _, p := range points[1:] {
		if l := g.Level(p); l > level {
			level = l
		}
	}
	return level, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
