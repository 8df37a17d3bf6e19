// Package element turns parsed map features into blocks through the world
// editor.
package element

import (
	"strconv"

	"github.com/geoforge/osmcraft/internal/block"
)

// forceOverride is an empty blacklist, letting a write replace whatever
// block occupies the cell.
var forceOverride = []block.Block{}

// layerBelowGround reports whether the element is mapped underground.
func layerBelowGround(tags map[string]string) bool {
	layer, ok := tags["layer"]
	if !ok {
		return false
	}
	v, err := strconv.Atoi(layer)
	if err != nil {
		return false
	}
	return v < 0
}
