package ecs

// Removable is implemented by every component store so the Registry can
// strip a combatant from all stores when it leaves the battle.
type Removable interface {
	Remove(id CombatantID)
}

// Store is a typed map store for combatant components. Pure generics, no
// reflect. Values are held by pointer so systems mutate in place.
type Store[T any] struct {
	data map[CombatantID]*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		data: make(map[CombatantID]*T, 16),
	}
}

func (s *Store[T]) Set(id CombatantID, c *T) {
	s.data[id] = c
}

func (s *Store[T]) Get(id CombatantID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Remove(id CombatantID) {
	delete(s.data, id)
}

func (s *Store[T]) Has(id CombatantID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

// Each visits entries in map order. Systems that need a deterministic
// order must drive iteration from an ordered roster instead.
func (s *Store[T]) Each(fn func(CombatantID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}

// Each2 iterates over combatants present in both stores, scanning the
// smaller one and probing the larger.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(CombatantID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok {
				fn(id, a, b)
			}
		}
	} else {
		for id, b := range sb.data {
			if a, ok := sa.data[id]; ok {
				fn(id, a, b)
			}
		}
	}
}
