// Package biome defines world biomes, their compact-id registry and the
// mapping from OSM-style tags to a biome.
package biome

import "sync"

// Biome is a namespaced biome type, comparable by name.
type Biome struct {
	name string
}

func newBiome(namespacedName string) Biome {
	return Biome{name: namespacedName}
}

func (b Biome) Name() string { return b.name }

var (
	Plains         = newBiome("minecraft:plains")
	Forest         = newBiome("minecraft:forest")
	River          = newBiome("minecraft:river")
	Beach          = newBiome("minecraft:beach")
	Desert         = newBiome("minecraft:desert")
	Ocean          = newBiome("minecraft:ocean")
	Jungle         = newBiome("minecraft:jungle")
	Swamp          = newBiome("minecraft:swamp")
	Taiga          = newBiome("minecraft:taiga")
	Savanna        = newBiome("minecraft:savanna")
	Mountains      = newBiome("minecraft:mountains")
	SnowyTundra    = newBiome("minecraft:snowy_tundra")
	SnowyTaiga     = newBiome("minecraft:snowy_taiga")
	MushroomFields = newBiome("minecraft:mushroom_fields")
)

var builtins = []Biome{
	Plains, Forest, River, Beach, Desert, Ocean, Jungle, Swamp, Taiga,
	Savanna, Mountains, SnowyTundra, SnowyTaiga, MushroomFields,
}

var (
	nameCacheMu sync.Mutex
	nameCache   = map[string]Biome{}
)

// FromName interns a biome by its namespaced name.
func FromName(name string) Biome {
	nameCacheMu.Lock()
	defer nameCacheMu.Unlock()
	if b, ok := nameCache[name]; ok {
		return b
	}
	b := newBiome(name)
	nameCache[name] = b
	return b
}

type registry struct {
	mu     sync.Mutex
	biomes []Biome
	ids    map[Biome]uint16
}

var reg = func() *registry {
	r := &registry{ids: make(map[Biome]uint16, len(builtins))}
	for _, b := range builtins {
		r.ids[b] = uint16(len(r.biomes))
		r.biomes = append(r.biomes, b)
	}
	return r
}()

// ID returns the compact id for a biome, registering unknown biomes on first
// use. Plains is id 0, matching the section zero value.
func ID(b Biome) uint16 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if id, ok := reg.ids[b]; ok {
		return id
	}
	id := uint16(len(reg.biomes))
	reg.biomes = append(reg.biomes, b)
	reg.ids[b] = id
	return id
}

// ByID returns the biome registered under the given id.
func ByID(id uint16) Biome {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.biomes[id]
}
