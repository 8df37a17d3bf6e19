package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Tnze/go-mc/nbt"
)

// WorldStats summarizes a saved world.
type WorldStats struct {
	Regions   int
	Chunks    int
	Sections  int
	MinChunkX int
	MinChunkZ int
	MaxChunkX int
	MaxChunkZ int
}

// ScanWorld walks every region file of a saved world and tallies its chunks.
// Regions are processed concurrently.
func ScanWorld(worldDir string) (*WorldStats, error) {
	regionDir := filepath.Join(worldDir, "region")
	entries, err := os.ReadDir(regionDir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".mca") {
			paths = append(paths, filepath.Join(regionDir, entry.Name()))
		}
	}

	var wg sync.WaitGroup
	wg.Add(len(paths))
	results := make(chan *WorldStats, len(paths))
	errs := make(chan error, len(paths))
	for _, path := range paths {
		go func(path string) {
			defer wg.Done()
			stats, err := scanRegion(path)
			if err != nil {
				errs <- fmt.Errorf("%s: %w", filepath.Base(path), err)
				return
			}
			results <- stats
		}(path)
	}
	wg.Wait()
	close(results)
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}

	total := &WorldStats{}
	first := true
	for stats := range results {
		total.Regions++
		total.Chunks += stats.Chunks
		total.Sections += stats.Sections
		if first || stats.MinChunkX < total.MinChunkX {
			total.MinChunkX = stats.MinChunkX
		}
		if first || stats.MinChunkZ < total.MinChunkZ {
			total.MinChunkZ = stats.MinChunkZ
		}
		if first || stats.MaxChunkX > total.MaxChunkX {
			total.MaxChunkX = stats.MaxChunkX
		}
		if first || stats.MaxChunkZ > total.MaxChunkZ {
			total.MaxChunkZ = stats.MaxChunkZ
		}
		first = false
	}
	return total, nil
}

func scanRegion(path string) (*WorldStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	reader, err := NewRegionReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	defer reader.Close()

	stats := &WorldStats{}
	first := true
	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			if !reader.ChunkExists(x, z) {
				continue
			}
			chunkReader, err := reader.ReadChunk(x, z)
			if err != nil {
				return nil, fmt.Errorf("chunk %d,%d: %w", x, z, err)
			}
			var chunk ChunkNBT
			if _, err = nbt.NewDecoder(chunkReader).Decode(&chunk); err != nil {
				return nil, fmt.Errorf("chunk %d,%d: %w", x, z, err)
			}

			stats.Chunks++
			stats.Sections += len(chunk.Sections)
			cx, cz := int(chunk.XPos), int(chunk.ZPos)
			if first || cx < stats.MinChunkX {
				stats.MinChunkX = cx
			}
			if first || cz < stats.MinChunkZ {
				stats.MinChunkZ = cz
			}
			if first || cx > stats.MaxChunkX {
				stats.MaxChunkX = cx
			}
			if first || cz > stats.MaxChunkZ {
				stats.MaxChunkZ = cz
			}
			first = false
		}
	}
	return stats, nil
}

// PaletteEntryAt resolves the palette entry for a section-local block in the
// serialized form, unpacking the bit-packed data array.
func (s SectionNBT) PaletteEntryAt(x, y, z int) PaletteEntry {
	if len(s.BlockStates.Palette) == 1 || len(s.BlockStates.Data) == 0 {
		return s.BlockStates.Palette[0]
	}
	bits := bitsFor(len(s.BlockStates.Palette), 4)
	indices := unpackIndices(s.BlockStates.Data, bits, sectionVolume)
	return s.BlockStates.Palette[indices[Index(x, y, z)]]
}

// BiomeNameAt resolves the biome palette entry covering a section-local
// block.
func (s SectionNBT) BiomeNameAt(x, y, z int) string {
	if len(s.Biomes.Palette) == 1 || len(s.Biomes.Data) == 0 {
		return s.Biomes.Palette[0]
	}
	bits := bitsFor(len(s.Biomes.Palette), 1)
	indices := unpackIndices(s.Biomes.Data, bits, biomeVolume)
	return s.Biomes.Palette[indices[BiomeIndex(x, y, z)]]
}
