package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoforge/osmcraft/internal/config"
	"github.com/geoforge/osmcraft/internal/editor"
	"github.com/geoforge/osmcraft/internal/progress"
)

// inputFixture is a minimal Overpass response: a power line between two
// towers, well inside the bounding box used by the tests.
const inputFixture = `{
  "elements": [
    {"type": "node", "id": 1, "lat": 52.5005, "lon": 13.4005},
    {"type": "node", "id": 2, "lat": 52.5015, "lon": 13.4025},
    {"type": "node", "id": 3, "lat": 52.5010, "lon": 13.4015,
     "tags": {"power": "tower"}},
    {"type": "way", "id": 10, "nodes": [1, 2],
     "tags": {"power": "line"}}
  ]
}`

type recordingSink struct {
	events []progress.Event
}

func (r *recordingSink) Publish(e progress.Event) { r.events = append(r.events, e) }

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(input, []byte(inputFixture), 0o644))

	cfg := config.Default()
	cfg.BBox = "52.5000,13.4000,52.5020,13.4030"
	cfg.WorldDir = filepath.Join(dir, "world")
	cfg.InputFile = input
	cfg.GroundLevel = 0
	return cfg
}

func TestRunGeneratesWorld(t *testing.T) {
	cfg := testConfig(t)
	sink := &recordingSink{}

	gen := New(cfg, sink)
	require.NoError(t, gen.Run(context.Background()))

	stats, err := editor.ScanWorld(cfg.WorldDir)
	require.NoError(t, err)
	assert.Greater(t, stats.Chunks, 0)

	require.NotEmpty(t, sink.events)
	assert.Equal(t, "fetch", sink.events[0].Stage)
	last := sink.events[len(sink.events)-1]
	assert.Equal(t, "done", last.Stage)
	assert.Equal(t, 100.0, last.Percent)
}

func TestRunWithPerlinTerrain(t *testing.T) {
	cfg := testConfig(t)
	cfg.Terrain = config.TerrainPerlin
	cfg.TerrainSeed = 7

	gen := New(cfg, nil)
	require.NoError(t, gen.Run(context.Background()))

	stats, err := editor.ScanWorld(cfg.WorldDir)
	require.NoError(t, err)
	assert.Greater(t, stats.Chunks, 0)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.BBox = ""

	gen := New(cfg, nil)
	assert.ErrorIs(t, gen.Run(context.Background()), config.ErrInvalidConfig)
}

func TestRunRejectsMalformedInput(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.InputFile, []byte(`{"elements": "no"}`), 0o644))

	gen := New(cfg, nil)
	assert.Error(t, gen.Run(context.Background()))
}

func TestRunMissingInputFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputFile = filepath.Join(t.TempDir(), "absent.json")

	gen := New(cfg, nil)
	assert.Error(t, gen.Run(context.Background()))
}
