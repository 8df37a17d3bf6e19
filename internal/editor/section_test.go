package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoforge/osmcraft/internal/biome"
	"github.com/geoforge/osmcraft/internal/block"
)

func TestSetBlockGetBlockRoundTrip(t *testing.T) {
	var section Section
	section.SetBlock(1, 2, 3, block.OakPlanks)

	got, ok := section.BlockAt(1, 2, 3)
	require.True(t, ok)
	assert.Equal(t, block.OakPlanks, got)
}

func TestDefaultInitializationFillsWithAir(t *testing.T) {
	var section Section
	for x := 0; x < SectionSize; x++ {
		for z := 0; z < SectionSize; z++ {
			_, ok := section.BlockAt(x, 0, z)
			assert.False(t, ok)
		}
	}
	assert.True(t, section.empty())
}

func TestSetBlockWithPropertiesMaintainsProperties(t *testing.T) {
	var section Section
	sign := block.With(block.Sign, block.Properties{"rotation": "4"})
	section.SetBlockWithProperties(0, 0, 0, sign)

	nbtSection := section.ToNBT(0)
	var found *PaletteEntry
	for i := range nbtSection.BlockStates.Palette {
		if nbtSection.BlockStates.Palette[i].Name == "minecraft:oak_sign" {
			found = &nbtSection.BlockStates.Palette[i]
		}
	}
	require.NotNil(t, found, "sign palette entry")
	assert.Equal(t, "4", found.Properties["rotation"])
}

func TestOverwritingDropsStaleProperties(t *testing.T) {
	var section Section
	section.SetBlockWithProperties(2, 2, 2, block.With(block.Sign, block.Properties{"rotation": "8"}))
	section.SetBlock(2, 2, 2, block.Stone)

	nbtSection := section.ToNBT(0)
	for _, entry := range nbtSection.BlockStates.Palette {
		assert.Empty(t, entry.Properties)
	}
}

func TestSetBiomeStoresID(t *testing.T) {
	var section Section
	section.SetBiome(1, 2, 3, biome.Forest)
	assert.Equal(t, biome.Forest, section.BiomeAt(1, 2, 3))

	// The 4x4x4 grid covers neighbouring blocks too.
	assert.Equal(t, biome.Forest, section.BiomeAt(0, 2, 2))
}

func TestDefaultBiomesArePlains(t *testing.T) {
	var section Section
	for y := 0; y < SectionSize; y += 4 {
		assert.Equal(t, biome.Plains, section.BiomeAt(0, y, 0))
	}
}

func TestIndexLayout(t *testing.T) {
	assert.Equal(t, 0, Index(0, 0, 0))
	assert.Equal(t, 15, Index(15, 0, 0))
	assert.Equal(t, 16, Index(0, 0, 1))
	assert.Equal(t, 256, Index(0, 1, 0))
	assert.Equal(t, 4095, Index(15, 15, 15))
}

func TestBiomeIndexLayout(t *testing.T) {
	assert.Equal(t, 0, BiomeIndex(0, 0, 0))
	assert.Equal(t, 0, BiomeIndex(3, 3, 3))
	assert.Equal(t, 1, BiomeIndex(4, 0, 0))
	assert.Equal(t, 4, BiomeIndex(0, 0, 4))
	assert.Equal(t, 16, BiomeIndex(0, 4, 0))
	assert.Equal(t, 63, BiomeIndex(15, 15, 15))
}
