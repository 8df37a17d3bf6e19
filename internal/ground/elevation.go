package ground

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ElevationData holds a processed elevation grid. Heights are stored as raw
// meters above sea level in a flat slice and converted to block Y levels on
// demand.
type ElevationData struct {
	heights     []int16
	width       int
	height      int
	minHeight   int16
	heightRange int16
	groundLevel int
	scaledRange float64
}

// newElevationData finalizes a raw meter grid: empty cells become sea level,
// and the block-height scaling is derived from the grid's range, clamped so
// the tallest point stays inside 90% of the headroom below the build limit.
func newElevationData(heights []int16, width, height int, groundLevel int, scale float64) *ElevationData {
	const empty = math.MinInt16

	minHeight := int16(math.MaxInt16)
	maxHeight := int16(math.MinInt16)
	for i, h := range heights {
		if h == empty {
			h = 0
			heights[i] = 0
		}
		if h < minHeight {
			minHeight = h
		}
		if h > maxHeight {
			maxHeight = h
		}
	}

	heightRange := maxHeight - minHeight
	heightScale := baseHeightScale * math.Sqrt(scale)
	scaledRange := float64(heightRange) * heightScale

	availableRange := float64(MaxY-groundLevel) * 0.9
	if scaledRange > availableRange {
		heightScale *= availableRange / scaledRange
		scaledRange = float64(heightRange) * heightScale
	}

	return &ElevationData{
		heights:     heights,
		width:       width,
		height:      height,
		minHeight:   minHeight,
		heightRange: heightRange,
		groundLevel: groundLevel,
		scaledRange: scaledRange,
	}
}

// FromHeights builds elevation data from a row-major grid of block Y levels,
// bypassing scaling. Meant for fixtures and tests.
func FromHeights(groundLevel int, rows [][]int16) *ElevationData {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	flat := make([]int16, 0, width*height)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return &ElevationData{
		heights:     flat,
		width:       width,
		height:      height,
		minHeight:   0,
		heightRange: 1,
		groundLevel: groundLevel,
		scaledRange: 1,
	}
}

// HeightAt returns the block Y level for the given grid cell.
func (d *ElevationData) HeightAt(x, z int) int {
	raw := int(d.heights[z*d.width+x])
	relative := float64(raw-int(d.minHeight)) / float64(d.heightRange)
	scaled := relative * d.scaledRange
	y := int(math.Round(float64(d.groundLevel) + scaled))
	if y < d.groundLevel {
		return d.groundLevel
	}
	if y > MaxY {
		return MaxY
	}
	return y
}

// Width returns the grid width in columns.
func (d *ElevationData) Width() int { return d.width }

// Height returns the grid depth in rows.
func (d *ElevationData) Height() int { return d.height }

// SaveDebugImage writes the grid as a normalized grayscale PNG.
func (d *ElevationData) SaveDebugImage(filename string) error {
	if !strings.HasSuffix(filename, ".png") {
		filename += ".png"
	}

	minH, maxH := MaxY, -MaxY
	for z := 0; z < d.height; z++ {
		for x := 0; x < d.width; x++ {
			h := d.HeightAt(x, z)
			if h < minH {
				minH = h
			}
			if h > maxH {
				maxH = h
			}
		}
	}
	span := maxH - minH
	if span == 0 {
		span = 1
	}

	img := image.NewGray(image.Rect(0, 0, d.width, d.height))
	for z := 0; z < d.height; z++ {
		for x := 0; x < d.width; x++ {
			v := uint8(float64(d.HeightAt(x, z)-minH) / float64(span) * 255)
			img.SetGray(x, z, color.Gray{Y: v})
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// DumpRaw writes the raw meter grid zstd-compressed to the given file, little
// more than a debugging aid for comparing fetch runs.
func (d *ElevationData) DumpRaw(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	buf := make([]byte, 2*len(d.heights))
	for i, h := range d.heights {
		buf[2*i] = byte(uint16(h) >> 8)
		buf[2*i+1] = byte(uint16(h))
	}
	if _, err = enc.Write(buf); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
