package biome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownBiomesHaveStableIDs(t *testing.T) {
	assert.Equal(t, uint16(0), ID(Plains))
	assert.Equal(t, uint16(1), ID(Forest))
	assert.Equal(t, uint16(2), ID(River))
}

func TestIDInsertsOnceAndIsConsistent(t *testing.T) {
	first := ID(FromName("minecraft:__biome_registry_test"))
	second := ID(FromName("minecraft:__biome_registry_test"))
	assert.Equal(t, first, second)

	other := ID(FromName("minecraft:__biome_registry_other_test"))
	assert.Equal(t, first+1, other)
}

func TestByIDReturnsOriginal(t *testing.T) {
	custom := FromName("minecraft:__biome_registry_biome_test")
	assert.Equal(t, custom, ByID(ID(custom)))
}

func TestFromTags(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want Biome
	}{
		{"explicit biome tag wins", map[string]string{"biome": "minecraft:mushroom_fields", "landuse": "forest"}, MushroomFields},
		{"river from water tag", map[string]string{"natural": "water", "water": "river"}, River},
		{"ocean from lake", map[string]string{"water": "lake"}, Ocean},
		{"waterway without natural is river", map[string]string{"waterway": "river"}, River},
		{"wetland prefers swamp", map[string]string{"natural": "water", "water": "wetland"}, Swamp},
		{"natural wood", map[string]string{"natural": "wood"}, Forest},
		{"natural beach", map[string]string{"natural": "beach"}, Beach},
		{"scrub leads to savanna", map[string]string{"natural": "scrub"}, Savanna},
		{"landuse forest", map[string]string{"landuse": "forest"}, Forest},
		{"leisure park falls back", map[string]string{"leisure": "park"}, Plains},
		{"unknown tags fall back to plains", map[string]string{"highway": "primary"}, Plains},
		{"empty", map[string]string{}, Plains},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromTags(tt.tags))
		})
	}
}
