package block

import "sync"

// AirID is the registry id of Air. Sections are zero-initialized, so air must
// stay at id 0.
const AirID uint16 = 0

type registry struct {
	mu     sync.Mutex
	blocks []Block
	ids    map[Block]uint16
}

var reg = func() *registry {
	r := &registry{ids: make(map[Block]uint16, len(builtins))}
	for _, b := range builtins {
		r.ids[b] = uint16(len(r.blocks))
		r.blocks = append(r.blocks, b)
	}
	return r
}()

// ID returns the compact id for a block, assigning the next free id to blocks
// seen for the first time.
func ID(b Block) uint16 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if id, ok := reg.ids[b]; ok {
		return id
	}
	id := uint16(len(reg.blocks))
	reg.blocks = append(reg.blocks, b)
	reg.ids[b] = id
	return id
}

// ByID returns the block registered under the given id. It panics on ids that
// were never handed out; sections only ever store ids from ID.
func ByID(id uint16) Block {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.blocks[id]
}
