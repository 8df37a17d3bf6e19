package ground

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/geoforge/osmcraft/internal/coords"
)

// terrariumURL is the AWS open elevation tileset; no API key required.
const terrariumURL = "https://s3.amazonaws.com/elevation-tiles-prod/terrarium/{z}/{x}/{y}.png"

// terrariumOffset is the height decoding offset of the Terrarium format.
const terrariumOffset = 32768.0

const (
	minZoom = 10
	maxZoom = 15

	tileSize = 256
)

var ErrTileFetch = errors.New("ground: tile fetch failed")

type tileCoord struct {
	x uint32
	y uint32
}

// Fetcher downloads Terrarium elevation tiles, consulting a cache before
// going to the network.
type Fetcher struct {
	Client *http.Client
	Cache  *TileCache
	URL    string
}

func NewFetcher(cache *TileCache) *Fetcher {
	return &Fetcher{Client: http.DefaultClient, Cache: cache, URL: terrariumURL}
}

// FetchElevation builds an elevation grid covering the bounding box, sized to
// match the scaled block grid.
func (f *Fetcher) FetchElevation(bbox coords.LLBBox, scale float64, groundLevel int) (*ElevationData, error) {
	metersZ, metersX := coords.GeoDistance(bbox.Min(), bbox.Max())
	gridWidth := int(math.Floor(metersX) * scale)
	gridHeight := int(math.Floor(metersZ) * scale)
	if gridWidth < 1 || gridHeight < 1 {
		return nil, fmt.Errorf("ground: degenerate grid %dx%d", gridWidth, gridHeight)
	}

	zoom := zoomFor(bbox)
	heights := make([]int16, gridWidth*gridHeight)
	for i := range heights {
		heights[i] = math.MinInt16
	}

	for _, tile := range tilesFor(bbox, zoom) {
		img, err := f.tile(zoom, tile)
		if err != nil {
			return nil, err
		}
		rasterizeTile(img, tile, zoom, bbox, heights, gridWidth, gridHeight)
	}

	return newElevationData(heights, gridWidth, gridHeight, groundLevel, scale), nil
}

// tile returns the decoded tile image, from cache when possible.
func (f *Fetcher) tile(zoom uint8, tc tileCoord) (image.Image, error) {
	if f.Cache != nil {
		if raw, ok := f.Cache.Get(zoom, tc.x, tc.y); ok {
			if img, _, err := image.Decode(bytes.NewReader(raw)); err == nil {
				return img, nil
			}
			// Corrupt cache entry; fall through and refetch.
		}
	}

	url := strings.NewReplacer(
		"{z}", fmt.Sprint(zoom),
		"{x}", fmt.Sprint(tc.x),
		"{y}", fmt.Sprint(tc.y),
	).Replace(f.URL)

	resp, err := f.Client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTileFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: z%d x%d y%d: %s", ErrTileFetch, zoom, tc.x, tc.y, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTileFetch, err)
	}
	if f.Cache != nil {
		_ = f.Cache.Put(zoom, tc.x, tc.y, raw)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode z%d x%d y%d: %v", ErrTileFetch, zoom, tc.x, tc.y, err)
	}
	return img, nil
}

// rasterizeTile projects tile pixels into the elevation grid, decoding the
// Terrarium height encoding (R*256 + G + B/256) - 32768.
func rasterizeTile(img image.Image, tc tileCoord, zoom uint8, bbox coords.LLBBox, heights []int16, gridWidth, gridHeight int) {
	n := math.Pow(2, float64(zoom))
	min, max := bbox.Min(), bbox.Max()

	bounds := img.Bounds()
	for py := 0; py < tileSize; py++ {
		for px := 0; px < tileSize; px++ {
			lng := (float64(tc.x)+float64(px)/tileSize)/n*360 - 180
			latRad := math.Pi * (1 - 2*(float64(tc.y)+float64(py)/tileSize)/n)
			lat := math.Atan(math.Sinh(latRad)) * 180 / math.Pi

			if lat < min.Lat || lat > max.Lat || lng < min.Lng || lng > max.Lng {
				continue
			}

			relX := (lng - min.Lng) / (max.Lng - min.Lng)
			relZ := 1 - (lat-min.Lat)/(max.Lat-min.Lat)
			gx := int(math.Round(relX * float64(gridWidth)))
			gz := int(math.Round(relZ * float64(gridHeight)))
			if gx >= gridWidth || gz >= gridHeight {
				continue
			}

			r, g, b, _ := img.At(bounds.Min.X+px, bounds.Min.Y+py).RGBA()
			meters := (float64(r>>8)*256 + float64(g>>8) + float64(b>>8)/256) - terrariumOffset
			heights[gz*gridWidth+gx] = int16(math.Round(meters))
		}
	}
}

// zoomFor picks a tile zoom level from the bounding box extent.
func zoomFor(bbox coords.LLBBox) uint8 {
	latDiff := math.Abs(bbox.Max().Lat - bbox.Min().Lat)
	lngDiff := math.Abs(bbox.Max().Lng - bbox.Min().Lng)
	maxDiff := math.Max(latDiff, lngDiff)
	zoom := int(-math.Log2(maxDiff) + 20)
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	return uint8(zoom)
}

func latLngToTile(lat, lng float64, zoom uint8) tileCoord {
	latRad := lat * math.Pi / 180
	n := math.Pow(2, float64(zoom))
	x := uint32((lng + 180) / 360 * n)
	y := uint32((1 - math.Asinh(math.Tan(latRad))/math.Pi) / 2 * n)
	return tileCoord{x: x, y: y}
}

func tilesFor(bbox coords.LLBBox, zoom uint8) []tileCoord {
	a := latLngToTile(bbox.Min().Lat, bbox.Min().Lng, zoom)
	b := latLngToTile(bbox.Max().Lat, bbox.Max().Lng, zoom)

	x1, x2 := minU32(a.x, b.x), maxU32(a.x, b.x)
	y1, y2 := minU32(a.y, b.y), maxU32(a.y, b.y)

	var tiles []tileCoord
	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			tiles = append(tiles, tileCoord{x: x, y: y})
		}
	}
	return tiles
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
