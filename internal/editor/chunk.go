package editor

import "sort"

// World height limits (1.18+).
const (
	MinY = -64
	MaxY = 319

	minSectionY = MinY / SectionSize
)

// ChunkCoord addresses a chunk on the XZ plane.
type ChunkCoord struct {
	X int
	Z int
}

// RegionCoord addresses a 32x32 chunk region file.
type RegionCoord struct {
	X int
	Z int
}

// Region returns the region file this chunk belongs to.
func (c ChunkCoord) Region() RegionCoord {
	return RegionCoord{X: floorDiv(c.X, 32), Z: floorDiv(c.Z, 32)}
}

// Chunk is a 16x16 column of sections, created lazily as blocks are placed.
type Chunk struct {
	Coord    ChunkCoord
	sections map[int8]*Section
}

func newChunk(coord ChunkCoord) *Chunk {
	return &Chunk{Coord: coord, sections: make(map[int8]*Section)}
}

// sectionFor returns the section containing world Y, creating it on first
// touch.
func (c *Chunk) sectionFor(y int) *Section {
	sy := int8(floorDiv(y, SectionSize))
	s, ok := c.sections[sy]
	if !ok {
		s = &Section{}
		c.sections[sy] = s
	}
	return s
}

// sectionAt returns the section containing world Y if it exists.
func (c *Chunk) sectionAt(y int) (*Section, bool) {
	s, ok := c.sections[int8(floorDiv(y, SectionSize))]
	return s, ok
}

// ToNBT serializes the chunk, with sections ordered by Y and empty ones
// dropped.
func (c *Chunk) ToNBT() ChunkNBT {
	ys := make([]int8, 0, len(c.sections))
	for y, s := range c.sections {
		if !s.empty() {
			ys = append(ys, y)
		}
	}
	sort.Slice(ys, func(i, j int) bool { return ys[i] < ys[j] })

	out := ChunkNBT{
		DataVersion: dataVersion,
		XPos:        int32(c.Coord.X),
		ZPos:        int32(c.Coord.Z),
		YPos:        minSectionY,
		Status:      "full",
	}
	for _, y := range ys {
		out.Sections = append(out.Sections, c.sections[y].ToNBT(y))
	}
	return out
}

// floorDiv divides rounding toward negative infinity, so negative block
// coordinates land in the right chunk.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod returns the non-negative remainder of floorDiv.
func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (a < 0) != (b < 0) {
		m += b
	}
	return m
}
