// Package generator runs the full pipeline: download map data, build the
// terrain, process every element, and save the world.
package generator

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/geoforge/osmcraft/internal/block"
	"github.com/geoforge/osmcraft/internal/config"
	"github.com/geoforge/osmcraft/internal/coords"
	"github.com/geoforge/osmcraft/internal/editor"
	"github.com/geoforge/osmcraft/internal/element"
	"github.com/geoforge/osmcraft/internal/ground"
	"github.com/geoforge/osmcraft/internal/osm"
	"github.com/geoforge/osmcraft/internal/progress"
)

// Generator ties the pipeline stages together for one run.
type Generator struct {
	cfg  config.Config
	sink progress.Sink
}

func New(cfg config.Config, sink progress.Sink) *Generator {
	if sink == nil {
		sink = progress.Discard{}
	}
	return &Generator{cfg: cfg, sink: sink}
}

// Run executes the whole pipeline and writes the world to disk.
func (g *Generator) Run(ctx context.Context) error {
	if err := g.cfg.Validate(); err != nil {
		return err
	}
	bbox, err := g.cfg.ParseBBox()
	if err != nil {
		return err
	}

	tr, err := coords.NewTransformer(bbox, g.cfg.Scale)
	if err != nil {
		return err
	}
	bounds := tr.BlockBBox()
	log.Printf("world covers %dx%d blocks", bounds.LengthX(), bounds.LengthZ())

	g.sink.Publish(progress.Event{Stage: "fetch", Message: "downloading map data", Percent: 0})
	raw, err := g.fetchRaw(ctx, bbox)
	if err != nil {
		return err
	}

	g.sink.Publish(progress.Event{Stage: "parse", Message: "parsing elements", Percent: 10})
	data, err := osm.Parse(raw, tr)
	if err != nil {
		return err
	}
	log.Printf("parsed %d nodes, %d ways, %d relations, %d coastline segments",
		len(data.Nodes), len(data.Ways), len(data.Relations), len(data.CoastlineWays))

	ed := editor.New(g.cfg.WorldDir, bounds)

	g.sink.Publish(progress.Event{Stage: "terrain", Message: "building terrain", Percent: 20})
	grd, err := g.buildGround(bbox, bounds)
	if err != nil {
		return err
	}
	ed.SetGround(grd)

	if g.cfg.FillGround {
		fillGroundSurface(ed, bounds)
	}

	g.sink.Publish(progress.Event{Stage: "elements", Message: "processing elements", Percent: 40})
	g.processElements(ed, data)

	g.sink.Publish(progress.Event{Stage: "save", Message: "writing region files", Percent: 90})
	if err := ed.Save(); err != nil {
		return fmt.Errorf("save world: %w", err)
	}

	g.sink.Publish(progress.Event{Stage: "done", Message: "world saved", Percent: 100})
	log.Printf("saved %d chunks to %s", ed.ChunkCount(), g.cfg.WorldDir)
	return nil
}

func (g *Generator) fetchRaw(ctx context.Context, bbox coords.LLBBox) ([]byte, error) {
	if g.cfg.InputFile != "" {
		return os.ReadFile(g.cfg.InputFile)
	}
	fetcher := osm.NewFetcher()
	if g.cfg.OverpassURL != "" {
		fetcher.URL = g.cfg.OverpassURL
	}
	return fetcher.Fetch(ctx, bbox)
}

func (g *Generator) buildGround(bbox coords.LLBBox, bounds coords.XZBBox) (*ground.Ground, error) {
	switch g.cfg.Terrain {
	case config.TerrainPerlin:
		elev := ground.SyntheticElevation(bounds.LengthX(), bounds.LengthZ(),
			g.cfg.TerrainSeed, g.cfg.GroundLevel, g.cfg.Scale)
		return ground.NewWithElevation(g.cfg.GroundLevel, elev), nil
	case config.TerrainFetch:
	default:
		return ground.NewFlat(g.cfg.GroundLevel), nil
	}

	cache, err := ground.OpenTileCache(g.cfg.TileCache)
	if err != nil {
		return nil, fmt.Errorf("open tile cache: %w", err)
	}
	defer cache.Close()

	fetcher := ground.NewFetcher(cache)
	elev, err := fetcher.FetchElevation(bbox, g.cfg.Scale, g.cfg.GroundLevel)
	if err != nil {
		return nil, fmt.Errorf("fetch elevation: %w", err)
	}

	if g.cfg.Debug {
		if err := elev.SaveDebugImage("elevation_debug.png"); err != nil {
			log.Printf("write elevation debug image: %v", err)
		}
		if err := elev.DumpRaw("elevation_raw.zst"); err != nil {
			log.Printf("write elevation raw dump: %v", err)
		}
	}
	return ground.NewWithElevation(g.cfg.GroundLevel, elev), nil
}

// fillGroundSurface builds the terrain column under every block: stone
// body, a dirt layer, and a grass block surface.
func fillGroundSurface(ed *editor.WorldEditor, bounds coords.XZBBox) {
	grd := ed.Ground()
	for x := bounds.Min().X; x <= bounds.Max().X; x++ {
		for z := bounds.Min().Z; z <= bounds.Max().Z; z++ {
			surface := grd.Level(coords.XZ(x-bounds.Min().X, z-bounds.Min().Z))
			for y := editor.MinY; y < surface-3; y++ {
				ed.SetBlockAbsolute(block.Stone, x, y, z, nil, nil)
			}
			for y := surface - 3; y < surface; y++ {
				if y >= editor.MinY {
					ed.SetBlockAbsolute(block.Dirt, x, y, z, nil, nil)
				}
			}
			ed.SetBlockAbsolute(block.GrassBlock, x, surface, z, nil, nil)
		}
	}
}

func (g *Generator) processElements(ed *editor.WorldEditor, data *osm.Data) {
	total := len(data.Ways) + len(data.Relations) + len(data.Nodes)
	done := 0
	report := func() {
		done++
		if total > 0 && done%500 == 0 {
			pct := 40 + 50*float64(done)/float64(total)
			g.sink.Publish(progress.Event{
				Stage:   "elements",
				Message: fmt.Sprintf("%d of %d elements", done, total),
				Percent: pct,
			})
		}
	}

	for _, way := range data.Ways {
		element.GenerateWaterways(ed, way, g.cfg.Scale)
		element.GenerateWaterAreaFromWay(ed, way)
		element.GenerateRailways(ed, way)
		element.GenerateRollerCoaster(ed, way)
		element.GeneratePowerLines(ed, way)
		report()
	}
	for _, rel := range data.Relations {
		element.GenerateWaterAreas(ed, rel)
		report()
	}
	for _, node := range data.Nodes {
		element.GeneratePowerNode(ed, node)
		report()
	}

	element.GenerateCoastlines(ed, data.CoastlineWays)
}

// ServeProgress starts the websocket progress endpoint in the background
// and returns the broadcaster to publish into.
func ServeProgress(addr string) *progress.Broadcaster {
	b := progress.NewBroadcaster()
	mux := http.NewServeMux()
	mux.HandleFunc("/progress", b.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("progress server: %v", err)
		}
	}()
	return b
}
