package editor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

var (
	ErrNoChunk            = errors.New("region: chunk not found")
	ErrInvalidChunkLength = errors.New("region: invalid chunk length")
	ErrInvalidCompression = errors.New("region: invalid compression format")
)

const (
	compressionGzip = 1
)

// RegionReader reads back an Anvil region file, mainly to verify and inspect
// generated worlds. The reader is not safe for concurrent access.
type RegionReader struct {
	source      io.ReadSeeker
	sectorTable []int32
	Name        string
}

// NewRegionReader creates a reader over the given source, taking ownership
// of it.
func NewRegionReader(source io.ReadSeeker) (reader *RegionReader, err error) {
	reader = &RegionReader{
		source:      source,
		sectorTable: make([]int32, regionChunks),
	}
	if file, ok := source.(*os.File); ok {
		reader.Name = file.Name()
	}
	err = reader.readSectorTable()
	return
}

func (r *RegionReader) readSectorTable() (err error) {
	if _, err = r.source.Seek(0, io.SeekStart); err != nil {
		return
	}
	rawTable := make([]byte, regionSectorSize)
	if _, err = io.ReadFull(r.source, rawTable); err != nil {
		return
	}
	return binary.Read(bytes.NewReader(rawTable), binary.BigEndian, r.sectorTable)
}

// ChunkExists reports whether the chunk at region-local coordinates is
// present.
func (r *RegionReader) ChunkExists(x, z int) bool {
	return r.sectorTable[x+z*32] != 0
}

// ReadChunk returns a reader over the decompressed NBT of the chunk at
// region-local coordinates. The result may be handed to an NBT decoder.
func (r *RegionReader) ReadChunk(x, z int) (chunk io.Reader, err error) {
	offset := r.sectorTable[x+z*32]

	sectorNumber := offset >> 8
	occupiedSectors := offset & 0xff
	if sectorNumber == 0 {
		err = ErrNoChunk
		return
	}

	if _, err = r.source.Seek(int64(sectorNumber)*regionSectorSize, io.SeekStart); err != nil {
		return
	}

	sectorData := make([]byte, occupiedSectors*regionSectorSize)
	if _, err = io.ReadFull(r.source, sectorData); err != nil {
		return
	}

	sectorReader := bytes.NewReader(sectorData)
	var sectorHeader struct {
		Length      int32
		Compression byte
	}
	if err = binary.Read(sectorReader, binary.BigEndian, &sectorHeader); err != nil {
		return
	}

	if sectorHeader.Length > int32(len(sectorData)-5) {
		return nil, ErrInvalidChunkLength
	}

	chunkStream := io.LimitReader(sectorReader, int64(sectorHeader.Length))
	switch sectorHeader.Compression {
	case compressionGzip:
		return gzip.NewReader(chunkStream)
	case compressionZlib:
		return zlib.NewReader(chunkStream)
	default:
		return nil, ErrInvalidCompression
	}
}

func (r *RegionReader) Close() error {
	if closer, ok := r.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
