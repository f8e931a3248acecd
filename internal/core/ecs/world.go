package ecs

// Registry tracks all component stores for bulk cleanup on release.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 8),
	}
}

func (r *Registry) Register(store Removable) {
	r.stores = append(r.stores, store)
}

// RemoveAll clears the given combatant from every registered store.
func (r *Registry) RemoveAll(id CombatantID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

// World owns the combatant pool, the component registry, and a deferred
// release queue flushed by the cleanup system at end of tick.
type World struct {
	pool         *Pool
	registry     *Registry
	releaseQueue []CombatantID
}

func NewWorld() *World {
	return &World{
		pool:         NewPool(),
		registry:     NewRegistry(),
		releaseQueue: make([]CombatantID, 0, 8),
	}
}

func (w *World) Pool() *Pool         { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) Spawn() CombatantID {
	return w.pool.Create()
}

func (w *World) Alive(id CombatantID) bool {
	return w.pool.Alive(id)
}

// MarkForRelease queues a combatant for end-of-tick cleanup.
func (w *World) MarkForRelease(id CombatantID) {
	w.releaseQueue = append(w.releaseQueue, id)
}

// FlushReleaseQueue releases all queued combatants and clears their
// components. Called by the cleanup system once per tick.
func (w *World) FlushReleaseQueue() {
	for _, id := range w.releaseQueue {
		w.registry.RemoveAll(id)
		w.pool.Release(id)
	}
	w.releaseQueue = w.releaseQueue[:0]
}
