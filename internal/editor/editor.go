// Package editor implements the world editor: an in-memory block world that
// feature processors write into and that is finally serialized as Anvil
// region files.
package editor

import (
	"github.com/geoforge/osmcraft/internal/biome"
	"github.com/geoforge/osmcraft/internal/block"
	"github.com/geoforge/osmcraft/internal/coords"
	"github.com/geoforge/osmcraft/internal/ground"
)

// WorldEditor accumulates block placements for a bounded area of the world.
// It is not safe for concurrent use; processors run sequentially.
//
// Placement calls come in two flavors. The plain ones take a Y offset that is
// resolved against the ground level of the column, so "y=1" means one block
// above the terrain. The Absolute ones take world Y coordinates and skip that
// resolution entirely.
type WorldEditor struct {
	worldDir string
	bounds   coords.XZBBox
	ground   *ground.Ground
	chunks   map[ChunkCoord]*Chunk
}

// New creates an editor writing to the given world directory, covering the
// given block bounds. Ground defaults to a flat plane at level 0.
func New(worldDir string, bounds coords.XZBBox) *WorldEditor {
	return &WorldEditor{
		worldDir: worldDir,
		bounds:   bounds,
		ground:   ground.NewFlat(0),
		chunks:   make(map[ChunkCoord]*Chunk),
	}
}

// SetGround installs the terrain model used to resolve relative Y
// coordinates.
func (e *WorldEditor) SetGround(g *ground.Ground) { e.ground = g }

// Ground returns the current terrain model.
func (e *WorldEditor) Ground() *ground.Ground { return e.ground }

// MinCoords returns the minimum corner of the editable area.
func (e *WorldEditor) MinCoords() (x, z int) {
	return e.bounds.Min().X, e.bounds.Min().Z
}

// MaxCoords returns the maximum corner of the editable area.
func (e *WorldEditor) MaxCoords() (x, z int) {
	return e.bounds.Max().X, e.bounds.Max().Z
}

// Bounds returns the editable area.
func (e *WorldEditor) Bounds() coords.XZBBox { return e.bounds }

// AbsoluteYAt resolves a ground-relative Y offset at the given column to a
// world Y coordinate.
func (e *WorldEditor) AbsoluteYAt(x, yOffset, z int) int {
	return e.ground.Level(coords.XZ(x, z)) + yOffset
}

// SetBlock places a block at a ground-relative Y offset, subject to the
// override rules of SetBlockAbsolute.
func (e *WorldEditor) SetBlock(b block.Block, x, yOffset, z int, overrideWhitelist, overrideBlacklist []block.Block) {
	e.SetBlockAbsolute(b, x, e.AbsoluteYAt(x, yOffset, z), z, overrideWhitelist, overrideBlacklist)
}

// SetBlockWithProperties places a block with state properties at a
// ground-relative Y offset.
func (e *WorldEditor) SetBlockWithProperties(b block.WithProperties, x, yOffset, z int, overrideWhitelist, overrideBlacklist []block.Block) {
	e.SetBlockWithPropertiesAbsolute(b, x, e.AbsoluteYAt(x, yOffset, z), z, overrideWhitelist, overrideBlacklist)
}

// SetBlockAbsolute places a block at world coordinates.
//
// If the target cell already holds a non-air block the write is skipped,
// UNLESS an override list allows it: a whitelist permits replacing exactly
// the blocks it names, a blacklist permits replacing everything except the
// blocks it names. With neither list supplied the call is a silent no-op on
// occupied cells. Passing an empty (non-nil) blacklist therefore means
// "always overwrite".
func (e *WorldEditor) SetBlockAbsolute(b block.Block, x, y, z int, overrideWhitelist, overrideBlacklist []block.Block) {
	if !e.placeable(x, y, z) {
		return
	}
	_, section, lx, ly, lz := e.cell(x, y, z)
	if existing, occupied := section.BlockAt(lx, ly, lz); occupied {
		if !overrideAllowed(existing, overrideWhitelist, overrideBlacklist) {
			return
		}
	}
	section.SetBlock(lx, ly, lz, b)
}

// SetBlockWithPropertiesAbsolute places a block with state properties at
// world coordinates. Properties only attach when the placement succeeds.
func (e *WorldEditor) SetBlockWithPropertiesAbsolute(b block.WithProperties, x, y, z int, overrideWhitelist, overrideBlacklist []block.Block) {
	if !e.placeable(x, y, z) {
		return
	}
	_, section, lx, ly, lz := e.cell(x, y, z)
	if existing, occupied := section.BlockAt(lx, ly, lz); occupied {
		if !overrideAllowed(existing, overrideWhitelist, overrideBlacklist) {
			return
		}
	}
	section.SetBlockWithProperties(lx, ly, lz, b)
}

// SetBiome sets the biome at a ground-relative Y offset.
func (e *WorldEditor) SetBiome(b biome.Biome, x, yOffset, z int) {
	e.SetBiomeAbsolute(b, x, e.AbsoluteYAt(x, yOffset, z), z)
}

// SetBiomeAbsolute sets the biome at world coordinates. Biomes have no
// override rules; the last write wins.
func (e *WorldEditor) SetBiomeAbsolute(b biome.Biome, x, y, z int) {
	if !e.placeable(x, y, z) {
		return
	}
	_, section, lx, ly, lz := e.cell(x, y, z)
	section.SetBiome(lx, ly, lz, b)
}

// BlockAbsolute returns the block at world coordinates. The second return is
// false for air or out-of-bounds positions.
func (e *WorldEditor) BlockAbsolute(x, y, z int) (block.Block, bool) {
	if !e.placeable(x, y, z) {
		return block.Air, false
	}
	chunk, ok := e.chunks[ChunkCoord{X: floorDiv(x, SectionSize), Z: floorDiv(z, SectionSize)}]
	if !ok {
		return block.Air, false
	}
	section, ok := chunk.sectionAt(y)
	if !ok {
		return block.Air, false
	}
	return section.BlockAt(floorMod(x, SectionSize), floorMod(y, SectionSize), floorMod(z, SectionSize))
}

// CheckForBlock probes a ground-relative position. With a nil whitelist it
// reports whether any block is present; otherwise whether the present block
// is one of the listed ones.
func (e *WorldEditor) CheckForBlock(x, yOffset, z int, whitelist []block.Block) bool {
	b, occupied := e.BlockAbsolute(x, e.AbsoluteYAt(x, yOffset, z), z)
	if !occupied {
		return false
	}
	if whitelist == nil {
		return true
	}
	return containsBlock(whitelist, b)
}

// ChunkCount returns the number of chunks touched so far.
func (e *WorldEditor) ChunkCount() int { return len(e.chunks) }

func (e *WorldEditor) placeable(x, y, z int) bool {
	return y >= MinY && y <= MaxY && e.bounds.Contains(coords.XZ(x, z))
}

// cell returns the chunk and section for a world position along with the
// section-local coordinates, creating both as needed.
func (e *WorldEditor) cell(x, y, z int) (*Chunk, *Section, int, int, int) {
	coord := ChunkCoord{X: floorDiv(x, SectionSize), Z: floorDiv(z, SectionSize)}
	chunk, ok := e.chunks[coord]
	if !ok {
		chunk = newChunk(coord)
		e.chunks[coord] = chunk
	}
	section := chunk.sectionFor(y)
	return chunk, section, floorMod(x, SectionSize), floorMod(y, SectionSize), floorMod(z, SectionSize)
}

func overrideAllowed(existing block.Block, whitelist, blacklist []block.Block) bool {
	if whitelist != nil {
		return containsBlock(whitelist, existing)
	}
	if blacklist != nil {
		return !containsBlock(blacklist, existing)
	}
	return false
}

func containsBlock(list []block.Block, b block.Block) bool {
	for _, candidate := range list {
		if candidate == b {
			return true
		}
	}
	return false
}
