// Package coords holds the two coordinate systems the generator deals with:
// geographic lat/lng boxes from the input data, and the cartesian block grid
// of the output world. The XZ plane follows Minecraft convention: X runs
// east, Z runs south.
package coords

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidBBox = errors.New("coords: invalid bounding box")

const earthRadiusMeters = 6371000.0

// XZPoint is a column position on the block grid.
type XZPoint struct {
	X int
	Z int
}

func XZ(x, z int) XZPoint {
	return XZPoint{X: x, Z: z}
}

// XZBBox is an inclusive rectangle of block columns.
type XZBBox struct {
	min XZPoint
	max XZPoint
}

// NewXZBBox builds a bounding box from two corners. The corners may be given
// in any order.
func NewXZBBox(a, b XZPoint) XZBBox {
	box := XZBBox{min: a, max: b}
	if box.min.X > box.max.X {
		box.min.X, box.max.X = box.max.X, box.min.X
	}
	if box.min.Z > box.max.Z {
		box.min.Z, box.max.Z = box.max.Z, box.min.Z
	}
	return box
}

// XZBBoxFromLengths builds a box anchored at the origin covering lengthX by
// lengthZ block columns.
func XZBBoxFromLengths(lengthX, lengthZ float64) (XZBBox, error) {
	if lengthX < 1 || lengthZ < 1 {
		return XZBBox{}, fmt.Errorf("%w: lengths %fx%f", ErrInvalidBBox, lengthX, lengthZ)
	}
	return XZBBox{
		min: XZPoint{X: 0, Z: 0},
		max: XZPoint{X: int(lengthX) - 1, Z: int(lengthZ) - 1},
	}, nil
}

func (b XZBBox) Min() XZPoint { return b.min }
func (b XZBBox) Max() XZPoint { return b.max }

func (b XZBBox) Contains(p XZPoint) bool {
	return p.X >= b.min.X && p.X <= b.max.X && p.Z >= b.min.Z && p.Z <= b.max.Z
}

// LengthX returns the number of columns covered along X.
func (b XZBBox) LengthX() int { return b.max.X - b.min.X + 1 }

// LengthZ returns the number of columns covered along Z.
func (b XZBBox) LengthZ() int { return b.max.Z - b.min.Z + 1 }

// LLPoint is a geographic coordinate in degrees.
type LLPoint struct {
	Lat float64
	Lng float64
}

// LLBBox is a geographic bounding box. Min is the south-west corner.
type LLBBox struct {
	min LLPoint
	max LLPoint
}

func NewLLBBox(minLat, minLng, maxLat, maxLng float64) (LLBBox, error) {
	if minLat >= maxLat || minLng >= maxLng {
		return LLBBox{}, fmt.Errorf("%w: (%f,%f)-(%f,%f)", ErrInvalidBBox, minLat, minLng, maxLat, maxLng)
	}
	if minLat < -90 || maxLat > 90 || minLng < -180 || maxLng > 180 {
		return LLBBox{}, fmt.Errorf("%w: out of range", ErrInvalidBBox)
	}
	return LLBBox{
		min: LLPoint{Lat: minLat, Lng: minLng},
		max: LLPoint{Lat: maxLat, Lng: maxLng},
	}, nil
}

func (b LLBBox) Min() LLPoint { return b.min }
func (b LLBBox) Max() LLPoint { return b.max }

// GeoDistance returns the north-south and east-west extent between two
// geographic points in meters, using the haversine formula per axis.
func GeoDistance(a, b LLPoint) (metersZ, metersX float64) {
	metersZ = haversine(a.Lat, a.Lng, b.Lat, a.Lng)
	metersX = haversine(a.Lat, a.Lng, a.Lat, b.Lng)
	return
}

func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// Transformer projects geographic coordinates onto the block grid covered by
// an LLBBox scaled by the given factor. One meter maps to roughly one block
// at scale 1.
type Transformer struct {
	bbox   LLBBox
	blocks XZBBox
}

func NewTransformer(bbox LLBBox, scale float64) (*Transformer, error) {
	metersZ, metersX := GeoDistance(bbox.min, bbox.max)
	blocks, err := XZBBoxFromLengths(math.Floor(metersX)*scale, math.Floor(metersZ)*scale)
	if err != nil {
		return nil, err
	}
	return &Transformer{bbox: bbox, blocks: blocks}, nil
}

// BlockBBox returns the block-grid extent of the projected area.
func (t *Transformer) BlockBBox() XZBBox { return t.blocks }

// ToXZ projects a geographic point to block coordinates. North edge maps to
// Z=0 and grows southward, matching the Minecraft Z axis.
func (t *Transformer) ToXZ(p LLPoint) XZPoint {
	relX := (p.Lng - t.bbox.min.Lng) / (t.bbox.max.Lng - t.bbox.min.Lng)
	relZ := 1 - (p.Lat-t.bbox.min.Lat)/(t.bbox.max.Lat-t.bbox.min.Lat)
	x := int(math.Round(relX * float64(t.blocks.LengthX()-1)))
	z := int(math.Round(relZ * float64(t.blocks.LengthZ()-1)))
	return XZPoint{X: x, Z: z}
}
