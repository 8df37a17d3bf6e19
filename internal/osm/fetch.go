package osm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/geoforge/osmcraft/internal/coords"
)

const defaultOverpassURL = "https://overpass-api.de/api/interpreter"

// ErrOverpass is returned when the Overpass API answers with a non-200
// status.
var ErrOverpass = errors.New("overpass request failed")

// Fetcher downloads raw OSM data for a bounding box from an Overpass
// endpoint.
type Fetcher struct {
	Client *http.Client
	URL    string
}

// NewFetcher returns a Fetcher against the public Overpass instance.
func NewFetcher() *Fetcher {
	return &Fetcher{Client: http.DefaultClient, URL: defaultOverpassURL}
}

// Fetch runs one Overpass query covering the whole bounding box and returns
// the raw JSON response body.
func (f *Fetcher) Fetch(ctx context.Context, bbox coords.LLBBox) ([]byte, error) {
	query := overpassQuery(bbox)
	form := url.Values{"data": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrOverpass, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// overpassQuery selects every node, way, and relation in the box, with
// referenced geometry recursed in.
func overpassQuery(bbox coords.LLBBox) string {
	box := fmt.Sprintf("%f,%f,%f,%f", bbox.Min().Lat, bbox.Min().Lng, bbox.Max().Lat, bbox.Max().Lng)
	return fmt.Sprintf("[out:json][timeout:180];(node(%s);way(%s);relation(%s););(._;>;);out body;", box, box, box)
}
