package ecs

// CombatantID encodes a 16-bit slot index in the lower bits and a 16-bit
// generation in the upper bits. Generation increments on release so stale
// ids held by commands or events never resolve to a recycled slot.
type CombatantID uint32

func NewCombatantID(index uint16, generation uint16) CombatantID {
	return CombatantID(uint32(generation)<<16 | uint32(index))
}

func (id CombatantID) Index() uint16      { return uint16(id) }
func (id CombatantID) Generation() uint16 { return uint16(id >> 16) }
func (id CombatantID) IsZero() bool       { return id == 0 }

// Pool allocates combatant slots with generational indices and a free list.
// Slot 0 is reserved so the zero CombatantID never resolves to a live
// combatant. A battle holds at most a few dozen combatants, so slot
// storage starts small and grows on demand.
type Pool struct {
	generations []uint16
	freeList    []uint16
	nextIndex   uint16
}

func NewPool() *Pool {
	return &Pool{
		generations: make([]uint16, 1, 16),
		freeList:    make([]uint16, 0, 8),
		nextIndex:   1,
	}
}

func (p *Pool) Create() CombatantID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewCombatantID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewCombatantID(idx, p.generations[idx])
}

func (p *Pool) Alive(id CombatantID) bool {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *Pool) Release(id CombatantID) {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != id.Generation() {
		return // already released (stale reference)
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}
