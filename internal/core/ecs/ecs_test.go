package ecs

import "testing"

func TestPoolNeverIssuesZeroID(t *testing.T) {
	p := NewPool()
	id := p.Create()
	if id.IsZero() {
		t.Fatal("pool issued the reserved zero id")
	}
	if p.Alive(0) {
		t.Error("zero id reports alive")
	}
}

func TestPoolGenerationsInvalidateStaleIDs(t *testing.T) {
	p := NewPool()
	a := p.Create()
	if !p.Alive(a) {
		t.Fatal("fresh id not alive")
	}

	p.Release(a)
	if p.Alive(a) {
		t.Fatal("released id still alive")
	}

	// The slot is recycled with a bumped generation.
	b := p.Create()
	if b.Index() != a.Index() {
		t.Fatalf("recycled index = %d, want %d", b.Index(), a.Index())
	}
	if b.Generation() != a.Generation()+1 {
		t.Errorf("generation = %d, want %d", b.Generation(), a.Generation()+1)
	}
	if p.Alive(a) || !p.Alive(b) {
		t.Error("stale id resolves against the recycled slot")
	}
}

func TestPoolDoubleReleaseIsNoop(t *testing.T) {
	p := NewPool()
	a := p.Create()
	p.Release(a)
	p.Release(a) // stale second release must not bump the generation again

	b := p.Create()
	if b.Generation() != a.Generation()+1 {
		t.Errorf("generation = %d after double release, want %d", b.Generation(), a.Generation()+1)
	}
}

func TestStoreSetGetRemove(t *testing.T) {
	type health struct{ hp int }
	s := NewStore[health]()
	p := NewPool()
	id := p.Create()

	if _, ok := s.Get(id); ok {
		t.Fatal("empty store resolved a component")
	}
	s.Set(id, &health{hp: 10})
	h, ok := s.Get(id)
	if !ok || h.hp != 10 {
		t.Fatalf("Get = %+v ok=%v", h, ok)
	}

	h.hp = 5 // stored by pointer, mutations stick
	if got, _ := s.Get(id); got.hp != 5 {
		t.Error("store did not share the component pointer")
	}

	s.Remove(id)
	if s.Has(id) || s.Len() != 0 {
		t.Error("component survived removal")
	}
}

func TestEach2VisitsIntersection(t *testing.T) {
	type a struct{ n int }
	type b struct{ n int }
	sa, sb := NewStore[a](), NewStore[b]()
	p := NewPool()

	both := p.Create()
	onlyA := p.Create()
	sa.Set(both, &a{n: 1})
	sa.Set(onlyA, &a{n: 2})
	sb.Set(both, &b{n: 3})

	visited := 0
	Each2(sa, sb, func(id CombatantID, va *a, vb *b) {
		visited++
		if id != both || va.n != 1 || vb.n != 3 {
			t.Errorf("visited id=%d a=%+v b=%+v", id, va, vb)
		}
	})
	if visited != 1 {
		t.Errorf("visited %d pairs, want 1", visited)
	}
}

func TestWorldDeferredRelease(t *testing.T) {
	type tag struct{}
	w := NewWorld()
	s := NewStore[tag]()
	w.Registry().Register(s)

	id := w.Spawn()
	s.Set(id, &tag{})

	w.MarkForRelease(id)
	if !w.Alive(id) {
		t.Fatal("combatant released before the flush")
	}
	w.FlushReleaseQueue()
	if w.Alive(id) {
		t.Error("combatant alive after the flush")
	}
	if s.Has(id) {
		t.Error("components survived the flush")
	}

	// The queue is drained; a second flush is a no-op.
	w.FlushReleaseQueue()
}
