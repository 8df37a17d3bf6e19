package osm

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/geoforge/osmcraft/internal/coords"
)

type rawResponse struct {
	Elements []rawElement `json:"elements"`
}

type rawElement struct {
	Type    string            `json:"type"`
	ID      int64             `json:"id"`
	Lat     float64           `json:"lat"`
	Lon     float64           `json:"lon"`
	Nodes   []int64           `json:"nodes"`
	Members []rawMember       `json:"members"`
	Tags    map[string]string `json:"tags"`
}

type rawMember struct {
	Type string `json:"type"`
	Ref  int64  `json:"ref"`
	Role string `json:"role"`
}

// Parse validates an Overpass API response and projects its elements onto
// the block grid of the given transformer.
func Parse(data []byte, tr *coords.Transformer) (*Data, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}
	if err := validateResponse(doc); err != nil {
		return nil, err
	}

	var resp rawResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}

	parsed := &Data{}
	nodesByID := make(map[int64]Node)
	waysByID := make(map[int64]Way)

	for _, el := range resp.Elements {
		if el.Type != "node" {
			continue
		}
		pt := tr.ToXZ(coords.LLPoint{Lat: el.Lat, Lng: el.Lon})
		node := Node{ID: el.ID, Tags: el.Tags, X: pt.X, Z: pt.Z}
		nodesByID[el.ID] = node
		if len(el.Tags) > 0 {
			parsed.Nodes = append(parsed.Nodes, node)
		}
	}

	for _, el := range resp.Elements {
		if el.Type != "way" {
			continue
		}
		way := Way{ID: el.ID, Tags: el.Tags}
		for _, ref := range el.Nodes {
			node, ok := nodesByID[ref]
			if !ok {
				continue
			}
			way.Nodes = append(way.Nodes, node)
		}
		if len(way.Nodes) == 0 {
			continue
		}
		waysByID[el.ID] = way
		if way.Tags["natural"] == "coastline" {
			parsed.CoastlineWays = append(parsed.CoastlineWays, way.Nodes)
			continue
		}
		parsed.Ways = append(parsed.Ways, way)
	}

	for _, el := range resp.Elements {
		if el.Type != "relation" {
			continue
		}
		if el.Tags["type"] != "multipolygon" {
			continue
		}
		rel := Relation{ID: el.ID, Tags: el.Tags}
		for _, mem := range el.Members {
			if mem.Type != "way" {
				continue
			}
			way, ok := waysByID[mem.Ref]
			if !ok {
				continue
			}
			switch mem.Role {
			case "outer":
				rel.Members = append(rel.Members, Member{Role: RoleOuter, Way: way})
			case "inner":
				rel.Members = append(rel.Members, Member{Role: RoleInner, Way: way})
			default:
				log.Printf("relation %d: skipping member role %q", el.ID, mem.Role)
			}
		}
		if len(rel.Members) == 0 {
			continue
		}
		parsed.Relations = append(parsed.Relations, rel)
	}

	return parsed, nil
}
