// Package geometry provides the block-grid rasterization primitives used
// when turning mapped ways and areas into voxels.
package geometry

import "github.com/geoforge/osmcraft/internal/coords"

// Point3 is a block position along a traced line.
type Point3 struct {
	X, Y, Z int
}

// Line returns every block position on the line between two points,
// endpoints included, using a three dimensional Bresenham walk.
func Line(x1, y1, z1, x2, y2, z2 int) []Point3 {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	dz := abs(z2 - z1)

	sx := step(x1, x2)
	sy := step(y1, y2)
	sz := step(z1, z2)

	points := make([]Point3, 0, max3(dx, dy, dz)+1)
	x, y, z := x1, y1, z1

	switch {
	case dx >= dy && dx >= dz:
		err1 := 2*dy - dx
		err2 := 2*dz - dx
		for {
			points = append(points, Point3{x, y, z})
			if x == x2 {
				break
			}
			if err1 > 0 {
				y += sy
				err1 -= 2 * dx
			}
			if err2 > 0 {
				z += sz
				err2 -= 2 * dx
			}
			err1 += 2 * dy
			err2 += 2 * dz
			x += sx
		}
	case dy >= dx && dy >= dz:
		err1 := 2*dx - dy
		err2 := 2*dz - dy
		for {
			points = append(points, Point3{x, y, z})
			if y == y2 {
				break
			}
			if err1 > 0 {
				x += sx
				err1 -= 2 * dy
			}
			if err2 > 0 {
				z += sz
				err2 -= 2 * dy
			}
			err1 += 2 * dx
			err2 += 2 * dz
			y += sy
		}
	default:
		err1 := 2*dy - dz
		err2 := 2*dx - dz
		for {
			points = append(points, Point3{x, y, z})
			if z == z2 {
				break
			}
			if err1 > 0 {
				y += sy
				err1 -= 2 * dz
			}
			if err2 > 0 {
				x += sx
				err2 -= 2 * dz
			}
			err1 += 2 * dy
			err2 += 2 * dx
			z += sz
		}
	}
	return points
}

// LineXZ traces a flat line on the ground plane.
func LineXZ(x1, z1, x2, z2 int) []coords.XZPoint {
	line := Line(x1, 0, z1, x2, 0, z2)
	points := make([]coords.XZPoint, len(line))
	for i, p := range line {
		points[i] = coords.XZ(p.X, p.Z)
	}
	return points
}

func step(from, to int) int {
	if from < to {
		return 1
	}
	return -1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
