package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/geoforge/osmcraft/internal/config"
	"github.com/geoforge/osmcraft/internal/editor"
	"github.com/geoforge/osmcraft/internal/generator"
	"github.com/geoforge/osmcraft/internal/progress"
)

func main() {
	app := &cli.App{
		Name:  "osmcraft",
		Usage: "generates Minecraft worlds from OpenStreetMap data",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate a world for a geographic bounding box",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "YAML config file"},
					&cli.StringFlag{Name: "bbox", Usage: "minLat,minLng,maxLat,maxLng"},
					&cli.StringFlag{Name: "out", Usage: "output world directory"},
					&cli.StringFlag{Name: "file", Usage: "read OSM JSON from a local file"},
					&cli.Float64Flag{Name: "scale", Value: 0, Usage: "blocks per meter"},
					&cli.IntFlag{Name: "ground-level", Value: -62, Usage: "base terrain height"},
					&cli.StringFlag{Name: "terrain", Usage: "elevation source: flat, fetch, or perlin"},
					&cli.Int64Flag{Name: "terrain-seed", Usage: "seed for perlin terrain"},
					&cli.BoolFlag{Name: "fill-ground", Usage: "fill terrain columns before processing"},
					&cli.StringFlag{Name: "progress-addr", Usage: "serve websocket progress on this address"},
					&cli.BoolFlag{Name: "debug", Usage: "write debug artifacts"},
				},
				Action: runGenerate,
			},
			{
				Name:      "inspect",
				Usage:     "summarize the chunks of a saved world",
				ArgsUsage: "WORLD_DIR",
				Action:    runInspect,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runGenerate(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if v := c.String("bbox"); v != "" {
		cfg.BBox = v
	}
	if v := c.String("out"); v != "" {
		cfg.WorldDir = v
	}
	if v := c.String("file"); v != "" {
		cfg.InputFile = v
	}
	if v := c.Float64("scale"); v > 0 {
		cfg.Scale = v
	}
	if c.IsSet("ground-level") {
		cfg.GroundLevel = c.Int("ground-level")
	}
	if v := c.String("terrain"); v != "" {
		cfg.Terrain = v
	}
	if c.IsSet("terrain-seed") {
		cfg.TerrainSeed = c.Int64("terrain-seed")
	}
	if c.Bool("fill-ground") {
		cfg.FillGround = true
	}
	if v := c.String("progress-addr"); v != "" {
		cfg.ProgressAddr = v
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}

	if cfg.WorldDir == "" {
		cfg.WorldDir = filepath.Join("worlds", uuid.NewString())
	}

	var sink progress.Sink = progress.LogSink{}
	if cfg.ProgressAddr != "" {
		sink = progress.Multi{progress.LogSink{}, generator.ServeProgress(cfg.ProgressAddr)}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return generator.New(cfg, sink).Run(ctx)
}

func runInspect(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("need a world directory to inspect")
	}

	stats, err := editor.ScanWorld(c.Args().Get(0))
	if err != nil {
		return err
	}

	fmt.Printf("regions:  %d\n", stats.Regions)
	fmt.Printf("chunks:   %d\n", stats.Chunks)
	fmt.Printf("sections: %d\n", stats.Sections)
	if stats.Chunks > 0 {
		fmt.Printf("extent:   chunk (%d,%d) to (%d,%d)\n",
			stats.MinChunkX, stats.MinChunkZ, stats.MaxChunkX, stats.MaxChunkZ)
	}
	return nil
}
