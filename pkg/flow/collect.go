package flow

import "github.com/aretw0/qflow/pkg/domain"

// BlockIDs maps blocks, by identity, to their platform identifiers while
// remembering the order in which blocks were first registered.
// The zero value is not usable; use NewBlockIDs or CollectDistinctBlocks.
type BlockIDs struct {
	order []*domain.Block
	ids   map[*domain.Block]string
}

// NewBlockIDs creates an empty table.
func NewBlockIDs() *BlockIDs {
	return &BlockIDs{ids: make(map[*domain.Block]string)}
}

// CollectDistinctBlocks gathers the blocks referenced anywhere under root,
// once each, in first-encounter order. Every slot starts unset; the caller
// uploads the blocks in order and fills the slots with Set.
func CollectDistinctBlocks(root Node) *BlockIDs {
	ids := NewBlockIDs()
	for _, ref := range root.BlockRefs() {
		ids.Add(ref.Block())
	}
	return ids
}

// Add registers b with an unset identifier. It reports whether b was new.
func (m *BlockIDs) Add(b *domain.Block) bool {
	if _, ok := m.ids[b]; ok {
		return false
	}
	m.order = append(m.order, b)
	m.ids[b] = ""
	return true
}

// Set records the platform identifier of b, registering b if needed.
func (m *BlockIDs) Set(b *domain.Block, id string) {
	m.Add(b)
	m.ids[b] = id
}

// Lookup returns the identifier of b. It reports false when b is unknown or
// its slot is still unset.
func (m *BlockIDs) Lookup(b *domain.Block) (string, bool) {
	if m == nil {
		return "", false
	}
	id, ok := m.ids[b]
	return id, ok && id != ""
}

// Has reports whether b is registered, set or not.
func (m *BlockIDs) Has(b *domain.Block) bool {
	if m == nil {
		return false
	}
	_, ok := m.ids[b]
	return ok
}

// Blocks returns the registered blocks in registration order.
func (m *BlockIDs) Blocks() []*domain.Block {
	if m == nil {
		return nil
	}
	return append([]*domain.Block(nil), m.order...)
}

// Len returns the number of distinct blocks.
func (m *BlockIDs) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Missing returns the registered blocks whose identifier is still unset.
func (m *BlockIDs) Missing() []*domain.Block {
	var missing []*domain.Block
	for _, b := range m.Blocks() {
		if m.ids[b] == "" {
			missing = append(missing, b)
		}
	}
	return missing
}
