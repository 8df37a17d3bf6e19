package biome

type mapping struct {
	value string
	biome Biome
}

var landuseMappings = []mapping{
	{"forest", Forest},
	{"grass", Plains},
	{"meadow", Plains},
	{"greenfield", Plains},
	{"orchard", Forest},
	{"farmland", Plains},
	{"military", Plains},
	{"industrial", Plains},
	{"railway", Plains},
	{"commercial", Plains},
	{"residential", Plains},
	{"cemetery", Plains},
	{"traffic_island", Plains},
	{"construction", Plains},
	{"village_green", Plains},
}

var naturalMappings = []mapping{
	{"beach", Beach},
	{"coastline", Beach},
	{"wetland", Swamp},
	{"swamp", Swamp},
	{"marsh", Swamp},
	{"wood", Forest},
	{"scrub", Savanna},
	{"grassland", Savanna},
	{"heath", Savanna},
	{"taiga", Taiga},
	{"fell", Mountains},
	{"bare_rock", Mountains},
	{"scree", Mountains},
	{"rock", Mountains},
	{"sand", Desert},
	{"glacier", SnowyTundra},
	{"ice", SnowyTundra},
	{"tree", Forest},
	{"woodland", Forest},
}

var leisureMappings = []mapping{
	{"park", Plains},
	{"nature_reserve", Forest},
	{"pitch", Plains},
	{"golf_course", Plains},
	{"garden", Plains},
}

var knownBiomes = map[string]Biome{
	"minecraft:plains":          Plains,
	"minecraft:forest":          Forest,
	"minecraft:river":           River,
	"minecraft:beach":           Beach,
	"minecraft:desert":          Desert,
	"minecraft:ocean":           Ocean,
	"minecraft:jungle":          Jungle,
	"minecraft:swamp":           Swamp,
	"minecraft:taiga":           Taiga,
	"minecraft:savanna":         Savanna,
	"minecraft:mountains":       Mountains,
	"minecraft:snowy_tundra":    SnowyTundra,
	"minecraft:snowy_taiga":     SnowyTaiga,
	"minecraft:mushroom_fields": MushroomFields,
}

func lookup(table []mapping, value string) (Biome, bool) {
	for _, m := range table {
		if m.value == value {
			return m.biome, true
		}
	}
	return Biome{}, false
}

func fromWaterRelated(tags map[string]string) (Biome, bool) {
	if water, ok := tags["water"]; ok {
		switch water {
		case "river", "canal", "stream":
			return River, true
		case "lake", "reservoir", "lagoon", "pond":
			return Ocean, true
		case "sea", "ocean":
			return Ocean, true
		case "wetland", "swamp":
			return Swamp, true
		default:
			return River, true
		}
	}
	if waterway, ok := tags["waterway"]; ok {
		switch waterway {
		case "river", "canal", "stream":
			return River, true
		case "drain":
			return Swamp, true
		default:
			return River, true
		}
	}
	return Biome{}, false
}

// FromTags determines a biome from OSM tag key-value pairs. The priority
// order is explicit biome tag, natural feature, water-specific hints, then
// landuse/leisure fallbacks. Unmatched tags resolve to Plains.
func FromTags(tags map[string]string) Biome {
	if custom, ok := tags["biome"]; ok {
		if b, ok := knownBiomes[custom]; ok {
			return b
		}
	}

	if natural, ok := tags["natural"]; ok {
		if natural == "water" {
			if b, ok := fromWaterRelated(tags); ok {
				return b
			}
		}
		if b, ok := lookup(naturalMappings, natural); ok {
			return b
		}
	}

	// Water hints may come from landuse=reservoir style tagging where the
	// natural key is absent.
	if b, ok := fromWaterRelated(tags); ok {
		return b
	}

	if landuse, ok := tags["landuse"]; ok {
		if b, ok := lookup(landuseMappings, landuse); ok {
			return b
		}
	}

	if leisure, ok := tags["leisure"]; ok {
		if b, ok := lookup(leisureMappings, leisure); ok {
			return b
		}
	}

	return Plains
}
