package editor

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/zlib"
	"github.com/willf/bitset"
)

const (
	regionChunks     = 32 * 32
	regionSectorSize = 4096

	// compressionZlib is the Anvil chunk payload compression id.
	compressionZlib = 2
)

// Save serializes every touched chunk into Anvil region files under
// <worldDir>/region, creating the directory as needed.
func (e *WorldEditor) Save() error {
	regionDir := filepath.Join(e.worldDir, "region")
	if err := os.MkdirAll(regionDir, 0o755); err != nil {
		return err
	}

	byRegion := make(map[RegionCoord][]*Chunk)
	for _, chunk := range e.chunks {
		rc := chunk.Coord.Region()
		byRegion[rc] = append(byRegion[rc], chunk)
	}

	for rc, chunks := range byRegion {
		path := filepath.Join(regionDir, regionFileName(rc))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		err = writeRegion(file, chunks)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("region r.%d.%d: %w", rc.X, rc.Z, err)
		}
	}
	return nil
}

// regionFileName is the conventional Anvil name for a region file.
func regionFileName(rc RegionCoord) string {
	return fmt.Sprintf("r.%d.%d.mca", rc.X, rc.Z)
}

// writeRegion lays out a region file: 1024 sector-table entries, 1024
// timestamps, then the compressed chunk payloads on 4KiB sector boundaries.
func writeRegion(w io.Writer, chunks []*Chunk) (err error) {
	sort.Slice(chunks, func(i, j int) bool {
		return chunkSlot(chunks[i].Coord) < chunkSlot(chunks[j].Coord)
	})

	sectorTable := make([]int32, regionChunks)
	timestamps := make([]int32, regionChunks)
	now := int32(time.Now().Unix())

	// The first two sectors hold the tables and are never handed out.
	allocated := bitset.New(2)
	allocated.Set(0)
	allocated.Set(1)

	var body bytes.Buffer
	for _, chunk := range chunks {
		payload, perr := compressChunk(chunk)
		if perr != nil {
			return perr
		}

		sectors := uint((len(payload) + regionSectorSize - 1) / regionSectorSize)
		start, ok := allocated.NextClear(0)
		if !ok {
			start = allocated.Len()
		}
		for s := uint(0); s < sectors; s++ {
			allocated.Set(start + s)
		}

		slot := chunkSlot(chunk.Coord)
		sectorTable[slot] = int32(start)<<8 | int32(sectors)
		timestamps[slot] = now

		body.Write(payload)
		if pad := len(payload) % regionSectorSize; pad != 0 {
			body.Write(make([]byte, regionSectorSize-pad))
		}
	}

	if err = binary.Write(w, binary.BigEndian, sectorTable); err != nil {
		return
	}
	if err = binary.Write(w, binary.BigEndian, timestamps); err != nil {
		return
	}
	_, err = body.WriteTo(w)
	return
}

// compressChunk encodes a chunk as NBT and wraps it in the length-prefixed,
// zlib-compressed payload the region format expects.
func compressChunk(chunk *Chunk) ([]byte, error) {
	var raw bytes.Buffer
	if err := nbt.NewEncoder(&raw).Encode(chunk.ToNBT(), ""); err != nil {
		return nil, fmt.Errorf("chunk %d,%d: %w", chunk.Coord.X, chunk.Coord.Z, err)
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := raw.WriteTo(zw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	payload := make([]byte, 5+compressed.Len())
	binary.BigEndian.PutUint32(payload[:4], uint32(compressed.Len()+1))
	payload[4] = compressionZlib
	copy(payload[5:], compressed.Bytes())
	return payload, nil
}

// chunkSlot returns the chunk's index in the region tables.
func chunkSlot(c ChunkCoord) int {
	return floorMod(c.X, 32) + floorMod(c.Z, 32)*32
}
