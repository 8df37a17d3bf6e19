package editor

import (
	"sort"

	"github.com/geoforge/osmcraft/internal/biome"
	"github.com/geoforge/osmcraft/internal/block"
)

// dataVersion identifies the 1.19.2 chunk format.
const dataVersion = 3120

// ChunkNBT is the serialized form of a chunk, matching the post-1.18 layout.
type ChunkNBT struct {
	DataVersion int32        `nbt:"DataVersion"`
	XPos        int32        `nbt:"xPos"`
	ZPos        int32        `nbt:"zPos"`
	YPos        int32        `nbt:"yPos"`
	Status      string       `nbt:"Status"`
	Sections    []SectionNBT `nbt:"sections"`
}

type SectionNBT struct {
	Y           int8           `nbt:"Y"`
	BlockStates BlockStatesNBT `nbt:"block_states"`
	Biomes      BiomesNBT      `nbt:"biomes"`
}

type BlockStatesNBT struct {
	Palette []PaletteEntry `nbt:"palette"`
	Data    []int64        `nbt:"data,omitempty"`
}

type PaletteEntry struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties,omitempty"`
}

type BiomesNBT struct {
	Palette []string `nbt:"palette"`
	Data    []int64  `nbt:"data,omitempty"`
}

// paletteKey distinguishes palette entries: the same block with different
// properties occupies separate entries.
type paletteKey struct {
	name  string
	props string
}

func propsKey(p block.Properties) string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out string
	for _, k := range keys {
		out += k + "=" + p[k] + ";"
	}
	return out
}

// ToNBT serializes the section at the given section Y coordinate. Blocks are
// bit-packed against a palette with at least 4 bits per entry; biomes use the
// 4x4x4 grid with as few bits as the palette allows. For single-entry
// palettes the data array is omitted entirely.
func (s *Section) ToNBT(y int8) SectionNBT {
	palette := []PaletteEntry{{Name: block.Air.Name()}}
	paletteIdx := map[paletteKey]int{{name: block.Air.Name()}: 0}

	indices := make([]uint64, sectionVolume)
	for idx, id := range s.blockIDs {
		b := block.ByID(id)
		key := paletteKey{name: b.Name()}
		var props block.Properties
		if p, ok := s.props[idx]; ok {
			props = p
			key.props = propsKey(p)
		}
		pi, ok := paletteIdx[key]
		if !ok {
			pi = len(palette)
			entry := PaletteEntry{Name: b.Name()}
			if len(props) > 0 {
				entry.Properties = map[string]string(props)
			}
			palette = append(palette, entry)
			paletteIdx[key] = pi
		}
		indices[idx] = uint64(pi)
	}

	out := SectionNBT{
		Y:           y,
		BlockStates: BlockStatesNBT{Palette: palette},
	}
	if len(palette) > 1 {
		out.BlockStates.Data = packIndices(indices, bitsFor(len(palette), 4))
	}

	biomePalette := []string{biome.Plains.Name()}
	biomeIdx := map[uint16]int{biome.ID(biome.Plains): 0}
	biomeIndices := make([]uint64, biomeVolume)
	for idx, id := range s.biomeIDs {
		pi, ok := biomeIdx[id]
		if !ok {
			pi = len(biomePalette)
			biomePalette = append(biomePalette, biome.ByID(id).Name())
			biomeIdx[id] = pi
		}
		biomeIndices[idx] = uint64(pi)
	}
	out.Biomes = BiomesNBT{Palette: biomePalette}
	if len(biomePalette) > 1 {
		out.Biomes.Data = packIndices(biomeIndices, bitsFor(len(biomePalette), 1))
	}

	return out
}

// bitsFor returns the index width needed for a palette of the given size,
// with a floor the format imposes.
func bitsFor(paletteLen, min int) int {
	bits := min
	for 1<<bits < paletteLen {
		bits++
	}
	return bits
}

// packIndices packs palette indices into 64-bit words. Entries never span
// word boundaries; leftover high bits stay zero.
func packIndices(indices []uint64, bits int) []int64 {
	perWord := 64 / bits
	out := make([]int64, 0, (len(indices)+perWord-1)/perWord)

	var word uint64
	var used int
	for _, idx := range indices {
		if used+bits > 64 {
			out = append(out, int64(word))
			word, used = 0, 0
		}
		word |= idx << used
		used += bits
	}
	if used > 0 {
		out = append(out, int64(word))
	}
	return out
}

// unpackIndices reverses packIndices; it is used when reading worlds back.
func unpackIndices(data []int64, bits, count int) []uint64 {
	mask := uint64(1)<<bits - 1
	out := make([]uint64, 0, count)

	wordIdx := 0
	var word uint64
	if len(data) > 0 {
		word = uint64(data[0])
	}
	used := 0
	for i := 0; i < count; i++ {
		if used+bits > 64 {
			wordIdx++
			if wordIdx >= len(data) {
				break
			}
			word = uint64(data[wordIdx])
			used = 0
		}
		out = append(out, word>>used&mask)
		used += bits
	}
	return out
}
