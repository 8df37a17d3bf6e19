package editor

import (
	"github.com/geoforge/osmcraft/internal/biome"
	"github.com/geoforge/osmcraft/internal/block"
)

// SectionSize is the edge length of a cubic chunk section.
const SectionSize = 16

// sectionVolume is the number of blocks in a section.
const sectionVolume = SectionSize * SectionSize * SectionSize

// biomeGridSize is the edge length of the per-section biome grid. Biomes are
// stored at 4x4x4 block granularity.
const biomeGridSize = 4

const biomeVolume = biomeGridSize * biomeGridSize * biomeGridSize

// Section is one 16x16x16 cube of a chunk. The zero value is entirely air
// with plains biomes, which relies on air and plains both registering as
// id 0.
type Section struct {
	blockIDs [sectionVolume]uint16
	biomeIDs [biomeVolume]uint16

	// Properties for individual cells, keyed by Index. Only placed blocks
	// that carry state beyond their default have an entry.
	props map[int]block.Properties
}

// Index maps section-local coordinates to the flat block array position.
func Index(x, y, z int) int {
	return y<<8 | z<<4 | x
}

// BiomeIndex maps section-local block coordinates to the 4x4x4 biome grid.
func BiomeIndex(x, y, z int) int {
	return (y/4)<<4 | (z/4)<<2 | x/4
}

// SetBlock stores a block at section-local coordinates, dropping any
// properties a previous occupant left behind.
func (s *Section) SetBlock(x, y, z int, b block.Block) {
	idx := Index(x, y, z)
	s.blockIDs[idx] = block.ID(b)
	delete(s.props, idx)
}

// SetBlockWithProperties stores a block along with its state properties.
func (s *Section) SetBlockWithProperties(x, y, z int, b block.WithProperties) {
	idx := Index(x, y, z)
	s.blockIDs[idx] = block.ID(b.Block)
	if len(b.Properties) == 0 {
		delete(s.props, idx)
		return
	}
	if s.props == nil {
		s.props = make(map[int]block.Properties)
	}
	s.props[idx] = b.Properties
}

// BlockAt returns the block at section-local coordinates. The second return
// is false for air.
func (s *Section) BlockAt(x, y, z int) (block.Block, bool) {
	id := s.blockIDs[Index(x, y, z)]
	if id == block.AirID {
		return block.Air, false
	}
	return block.ByID(id), true
}

// SetBiome stores the biome covering the given section-local block.
func (s *Section) SetBiome(x, y, z int, b biome.Biome) {
	s.biomeIDs[BiomeIndex(x, y, z)] = biome.ID(b)
}

// BiomeAt returns the biome covering the given section-local block.
func (s *Section) BiomeAt(x, y, z int) biome.Biome {
	return biome.ByID(s.biomeIDs[BiomeIndex(x, y, z)])
}

// empty reports whether the section is still all air. Empty sections are not
// serialized.
func (s *Section) empty() bool {
	for _, id := range s.blockIDs {
		if id != block.AirID {
			return false
		}
	}
	return true
}
