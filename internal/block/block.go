// Package block defines the palette of placeable blocks and a registry that
// maps them to compact numeric ids for section storage.
package block

import "sync"

// Block is a namespaced block type. Blocks are value types and compare by
// name, so they can be used directly as map keys.
type Block struct {
	name string
}

func newBlock(namespacedName string) Block {
	return Block{name: namespacedName}
}

// Name returns the namespaced identifier, e.g. "minecraft:stone".
func (b Block) Name() string { return b.name }

func (b Block) IsAir() bool { return b == Air }

var (
	nameCacheMu sync.Mutex
	nameCache   = map[string]Block{}
)

// FromName returns the block for the given namespaced name, interning names
// not covered by the predefined palette.
func FromName(name string) Block {
	nameCacheMu.Lock()
	defer nameCacheMu.Unlock()
	if b, ok := nameCache[name]; ok {
		return b
	}
	b := newBlock(name)
	nameCache[name] = b
	return b
}

// Properties is a block state property compound, e.g. {"shape": "east_west",
// "powered": "true"} for a powered rail. Values are kept as strings the way
// the game serializes them.
type Properties map[string]string

func (p Properties) clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// WithProperties pairs a block with the state properties to attach on
// placement.
type WithProperties struct {
	Block      Block
	Properties Properties
}

func With(b Block, props Properties) WithProperties {
	return WithProperties{Block: b, Properties: props.clone()}
}
