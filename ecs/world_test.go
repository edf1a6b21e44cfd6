package ecs

import (
	"errors"
	"testing"
	"time"

	"github.com/milk9111/vrviewer/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
				if w.Len() != c.create-1 {
					t.Fatalf("expected %d live entities, got %d", c.create-1, w.Len())
				}
			}
		})
	}
}

func TestWorldRecycledSlotInvalidatesOldHandle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := w.CreateEntity()
	if err := Add(w, old, h, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	w.DestroyEntity(old)

	fresh := w.CreateEntity()
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %s after %s", fresh, old)
	}
	if fresh == old {
		t.Fatalf("recycled handle must differ from the stale one")
	}
	if w.IsAlive(old) {
		t.Fatalf("stale handle must not be alive")
	}
	if Has(w, fresh, h) {
		t.Fatalf("components must not survive slot reuse")
	}
	if err := Add(w, old, h, 2); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1, 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1)
				if !ok || v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2, "a"); err != nil {
					return err
				}
				return Add(w, e2, h2, "b")
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2) || !Has(w, e2, h2) {
					t.Fatalf("expected both entities to have string component")
				}
				if got := w.Query(h2.ID()); len(got) != 2 || got[0] != e1 || got[1] != e2 {
					t.Fatalf("unexpected query result %v", got)
				}
			},
			teardown: func() bool { return Remove(w, e1, h2) && Remove(w, e2, h2) },
		},
		{
			name:  "replace_value",
			setup: func() error { _ = Add(w, e2, h1, 1); return Add(w, e2, h1, 2) },
			check: func(t *testing.T) {
				if v, _ := Get(w, e2, h1); v != 2 {
					t.Fatalf("expected replaced value 2, got %d", v)
				}
			},
			teardown: func() bool { return Remove(w, e2, h1) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestQueryIntersectsStores(t *testing.T) {
	w := NewWorld()
	a := component.NewComponent[int]()
	b := component.NewComponent[bool]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()
	_ = Add(w, e1, a, 1)
	_ = Add(w, e2, a, 2)
	_ = Add(w, e3, a, 3)
	_ = Add(w, e3, b, true)
	_ = Add(w, e1, b, true)

	got := w.Query(a.ID(), b.ID())
	if len(got) != 2 || got[0] != e1 || got[1] != e3 {
		t.Fatalf("expected [e1 e3], got %v", got)
	}

	w.DestroyEntity(e1)
	if first, ok := w.First(b.ID()); !ok || first != e3 {
		t.Fatalf("expected e3 first after destroying e1, got %v ok=%v", first, ok)
	}
}

func TestForEachWritesBack(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	_ = Add(w, e1, h, 1)
	_ = Add(w, e2, h, 5)

	ForEach(w, h, func(_ Entity, v *int) { *v *= 10 })

	if v, _ := Get(w, e1, h); v != 10 {
		t.Fatalf("expected 10, got %d", v)
	}
	if v, _ := Get(w, e2, h); v != 50 {
		t.Fatalf("expected 50, got %d", v)
	}
}

func TestForEachToleratesDestroy(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e1 := w.CreateEntity()
	_ = Add(w, e1, h, 1)

	ForEach(w, h, func(e Entity, _ *int) { w.DestroyEntity(e) })

	if w.IsAlive(e1) {
		t.Fatalf("entity should be destroyed")
	}
	if len(w.Query(h.ID())) != 0 {
		t.Fatalf("destroyed entity must not be written back")
	}
}

func TestAdvanceClampsNegativeDelta(t *testing.T) {
	w := NewWorld()
	w.Advance(-time.Second)
	if w.Delta() != 0 {
		t.Fatalf("expected zero delta, got %v", w.Delta())
	}
	w.Advance(16 * time.Millisecond)
	if w.Delta() != 16*time.Millisecond || w.Frame() != 2 {
		t.Fatalf("unexpected delta=%v frame=%d", w.Delta(), w.Frame())
	}
}

type countingSystem struct{ n *int }

func (c countingSystem) Update(*World) { *c.n++ }

func TestSchedulerRunsInOrder(t *testing.T) {
	var order []int
	n := 0
	s := NewScheduler(countingSystem{&n}, nil)
	s.Add(systemFunc(func(*World) { order = append(order, n) }))
	s.Update(NewWorld())

	if len(s.Systems()) != 2 {
		t.Fatalf("nil systems must be skipped, got %d", len(s.Systems()))
	}
	if len(order) != 1 || order[0] != 1 {
		t.Fatalf("expected counting system to run first, got %v", order)
	}
}

type systemFunc func(*World)

func (f systemFunc) Update(w *World) { f(w) }
