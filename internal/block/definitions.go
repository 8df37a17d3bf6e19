package block

// The built-in palette. Ordering matters: the registry hands out ids in this
// order, and saved worlds rely on a block keeping its id within one run.
var (
	Air                      = newBlock("minecraft:air")
	AcaciaPlanks             = newBlock("minecraft:acacia_planks")
	Andesite                 = newBlock("minecraft:andesite")
	BirchLeaves              = newBlock("minecraft:birch_leaves")
	BirchLog                 = newBlock("minecraft:birch_log")
	BlackConcrete            = newBlock("minecraft:black_concrete")
	Blackstone               = newBlock("minecraft:blackstone")
	BlueFlower               = newBlock("minecraft:cornflower")
	BlueTerracotta           = newBlock("minecraft:blue_terracotta")
	Bricks                   = newBlock("minecraft:bricks")
	Carrots                  = newBlock("minecraft:carrots")
	Cauldron                 = newBlock("minecraft:cauldron")
	Chain                    = newBlock("minecraft:chain")
	ChiseledStoneBricks      = newBlock("minecraft:chiseled_stone_bricks")
	Cobblestone              = newBlock("minecraft:cobblestone")
	CobblestoneWall          = newBlock("minecraft:cobblestone_wall")
	CrackedStoneBricks       = newBlock("minecraft:cracked_stone_bricks")
	Dirt                     = newBlock("minecraft:dirt")
	Farmland                 = newBlock("minecraft:farmland")
	Glowstone                = newBlock("minecraft:glowstone")
	Grass                    = newBlock("minecraft:grass")
	GrassBlock               = newBlock("minecraft:grass_block")
	Gravel                   = newBlock("minecraft:gravel")
	IronBars                 = newBlock("minecraft:iron_bars")
	IronBlock                = newBlock("minecraft:iron_block")
	Ladder                   = newBlock("minecraft:ladder")
	MossBlock                = newBlock("minecraft:moss_block")
	MudBricks                = newBlock("minecraft:mud_bricks")
	OakFence                 = newBlock("minecraft:oak_fence")
	OakLeaves                = newBlock("minecraft:oak_leaves")
	OakLog                   = newBlock("minecraft:oak_log")
	OakPlanks                = newBlock("minecraft:oak_planks")
	OakSlab                  = newBlock("minecraft:oak_slab")
	OakTrapdoor              = newBlock("minecraft:oak_trapdoor")
	Podzol                   = newBlock("minecraft:podzol")
	PolishedAndesite         = newBlock("minecraft:polished_andesite")
	PolishedBlackstone       = newBlock("minecraft:polished_blackstone")
	PolishedBlackstoneBricks = newBlock("minecraft:polished_blackstone_bricks")
	Potatoes                 = newBlock("minecraft:potatoes")
	PoweredRail              = newBlock("minecraft:powered_rail")
	Rail                     = newBlock("minecraft:rail")
	RedFlower                = newBlock("minecraft:poppy")
	RedstoneBlock            = newBlock("minecraft:redstone_block")
	Sand                     = newBlock("minecraft:sand")
	Sandstone                = newBlock("minecraft:sandstone")
	Sign                     = newBlock("minecraft:oak_sign")
	SmoothStone              = newBlock("minecraft:smooth_stone")
	SnowBlock                = newBlock("minecraft:snow_block")
	SnowLayer                = newBlock("minecraft:snow")
	SpruceLog                = newBlock("minecraft:spruce_log")
	Stone                    = newBlock("minecraft:stone")
	StoneBricks              = newBlock("minecraft:stone_bricks")
	StoneBrickSlab           = newBlock("minecraft:stone_brick_slab")
	TallGrass                = newBlock("minecraft:tall_grass")
	Terracotta               = newBlock("minecraft:terracotta")
	Water                    = newBlock("minecraft:water")
	Wheat                    = newBlock("minecraft:wheat")
	WhiteConcrete            = newBlock("minecraft:white_concrete")
)

// builtins lists every predefined block in registration order.
var builtins = []Block{
	Air, AcaciaPlanks, Andesite, BirchLeaves, BirchLog, BlackConcrete,
	Blackstone, BlueFlower, BlueTerracotta, Bricks, Carrots, Cauldron, Chain,
	ChiseledStoneBricks, Cobblestone, CobblestoneWall, CrackedStoneBricks,
	Dirt, Farmland, Glowstone, Grass, GrassBlock, Gravel, IronBars, IronBlock,
	Ladder, MossBlock, MudBricks, OakFence, OakLeaves, OakLog, OakPlanks,
	OakSlab, OakTrapdoor, Podzol, PolishedAndesite, PolishedBlackstone,
	PolishedBlackstoneBricks, Potatoes, PoweredRail, Rail, RedFlower,
	RedstoneBlock, Sand, Sandstone, Sign, SmoothStone, SnowBlock, SnowLayer,
	SpruceLog, Stone, StoneBricks, StoneBrickSlab, TallGrass, Terracotta,
	Water, Wheat, WhiteConcrete,
}
