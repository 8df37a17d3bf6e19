package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoforge/osmcraft/internal/biome"
	"github.com/geoforge/osmcraft/internal/block"
)

func TestToNBTSerializationRoundTrip(t *testing.T) {
	var section Section

	// 15 unique blocks without extra properties.
	blocks := []block.Block{
		block.AcaciaPlanks, block.Andesite, block.BirchLeaves, block.BirchLog,
		block.BlackConcrete, block.Blackstone, block.BlueFlower,
		block.BlueTerracotta, block.Bricks, block.Cauldron,
		block.ChiseledStoneBricks, block.CobblestoneWall, block.Cobblestone,
		block.PolishedBlackstoneBricks, block.CrackedStoneBricks,
	}

	type placement struct {
		idx   int
		name  string
		props block.Properties
	}
	var expected []placement

	for i, b := range blocks {
		section.SetBlock(i, 0, 0, b)
		expected = append(expected, placement{idx: Index(i, 0, 0), name: b.Name()})
	}

	signProps := block.Properties{"rotation": "4"}
	section.SetBlockWithProperties(0, 1, 0, block.With(block.Sign, signProps))
	expected = append(expected, placement{Index(0, 1, 0), "minecraft:oak_sign", signProps})

	trapProps := block.Properties{"half": "bottom"}
	section.SetBlockWithProperties(1, 1, 0, block.With(block.OakTrapdoor, trapProps))
	expected = append(expected, placement{Index(1, 1, 0), "minecraft:oak_trapdoor", trapProps})

	nbtSection := section.ToNBT(0)

	paletteLen := len(nbtSection.BlockStates.Palette)
	assert.Greater(t, paletteLen, 16)
	assert.Equal(t, len(expected)+1, paletteLen) // + air

	data := nbtSection.BlockStates.Data
	require.NotEmpty(t, data)
	bitsPerBlock := len(data) * 64 / sectionVolume
	assert.Equal(t, 5, bitsPerBlock)

	indices := unpackIndices(data, bitsPerBlock, sectionVolume)
	require.Len(t, indices, sectionVolume)

	for _, p := range expected {
		entry := nbtSection.BlockStates.Palette[indices[p.idx]]
		assert.Equal(t, p.name, entry.Name)
		if p.props != nil {
			assert.Equal(t, map[string]string(p.props), entry.Properties)
		}
	}

	// An untouched block stays air.
	airEntry := nbtSection.BlockStates.Palette[indices[Index(15, 15, 15)]]
	assert.Equal(t, "minecraft:air", airEntry.Name)

	assert.Equal(t, []string{"minecraft:plains"}, nbtSection.Biomes.Palette)
	assert.Empty(t, nbtSection.Biomes.Data)
}

func TestSinglePaletteSectionOmitsData(t *testing.T) {
	var section Section
	nbtSection := section.ToNBT(2)
	assert.Equal(t, int8(2), nbtSection.Y)
	assert.Len(t, nbtSection.BlockStates.Palette, 1)
	assert.Empty(t, nbtSection.BlockStates.Data)
}

func TestBiomeSerializationWritesPaletteAndData(t *testing.T) {
	var section Section
	section.SetBiome(0, 0, 0, biome.Desert)

	nbtSection := section.ToNBT(0)
	require.Len(t, nbtSection.Biomes.Palette, 2)
	assert.Contains(t, nbtSection.Biomes.Palette, "minecraft:plains")
	assert.Contains(t, nbtSection.Biomes.Palette, "minecraft:desert")

	data := nbtSection.Biomes.Data
	require.NotEmpty(t, data)
	bitsPerBiome := bitsFor(len(nbtSection.Biomes.Palette), 1)
	indices := unpackIndices(data, bitsPerBiome, biomeVolume)
	require.Len(t, indices, biomeVolume)

	assert.Equal(t, "minecraft:desert", nbtSection.Biomes.Palette[indices[BiomeIndex(0, 0, 0)]])
	assert.Equal(t, "minecraft:plains", nbtSection.Biomes.Palette[indices[BiomeIndex(15, 15, 15)]])
}

func TestPackUnpackIndices(t *testing.T) {
	indices := make([]uint64, 100)
	for i := range indices {
		indices[i] = uint64(i % 17)
	}
	bits := bitsFor(17, 4)
	assert.Equal(t, 5, bits)

	packed := packIndices(indices, bits)
	unpacked := unpackIndices(packed, bits, len(indices))
	assert.Equal(t, indices, unpacked)
}

func TestBitsFor(t *testing.T) {
	assert.Equal(t, 4, bitsFor(2, 4))
	assert.Equal(t, 4, bitsFor(16, 4))
	assert.Equal(t, 5, bitsFor(17, 4))
	assert.Equal(t, 1, bitsFor(2, 1))
	assert.Equal(t, 2, bitsFor(3, 1))
}
