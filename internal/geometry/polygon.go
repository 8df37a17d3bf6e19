package geometry

import "github.com/geoforge/osmcraft/internal/coords"

// PointInRing reports whether a block column lies inside a closed ring,
// using an even-odd ray cast. Columns exactly on an edge count as inside.
func PointInRing(x, z int, ring []coords.XZPoint) bool {
	if len(ring) < 3 {
		return false
	}

	px, pz := float64(x), float64(z)
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		ax, az := float64(ring[i].X), float64(ring[i].Z)
		bx, bz := float64(ring[j].X), float64(ring[j].Z)

		if onSegment(px, pz, ax, az, bx, bz) {
			return true
		}
		if (az > pz) != (bz > pz) {
			crossX := ax + (pz-az)/(bz-az)*(bx-ax)
			if px < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func onSegment(px, pz, ax, az, bx, bz float64) bool {
	cross := (bx-ax)*(pz-az) - (bz-az)*(px-ax)
	if cross != 0 {
		return false
	}
	if px < min2(ax, bx) || px > max2(ax, bx) {
		return false
	}
	if pz < min2(az, bz) || pz > max2(az, bz) {
		return false
	}
	return true
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
