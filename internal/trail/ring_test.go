package trail

import "testing"

func TestRingPartialFill(t *testing.T) {
	r := NewRing(8)

	for i := 0; i < 5; i++ {
		r.Append(Point{X: float64(i), Y: -float64(i)})
	}

	if r.Len() != 5 {
		t.Errorf("expected 5 points, got %d", r.Len())
	}
	if r.Cap() != 8 {
		t.Errorf("expected capacity 8, got %d", r.Cap())
	}

	snap := r.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("expected snapshot of 5 points, got %d", len(snap))
	}
	for i, p := range snap {
		if p.X != float64(i) {
			t.Errorf("expected oldest-first order, snap[%d].X=%f", i, p.X)
		}
	}
}

func TestRingOverwritesOldest(t *testing.T) {
	const capacity = 4
	r := NewRing(capacity)

	for i := 0; i < capacity+3; i++ {
		r.Append(Point{X: float64(i)})
	}

	if r.Len() != capacity {
		t.Errorf("expected count capped at %d, got %d", capacity, r.Len())
	}

	snap := r.Snapshot()
	// points 0..2 overwritten, 3..6 retained oldest first
	want := []float64{3, 4, 5, 6}
	for i, p := range snap {
		if p.X != want[i] {
			t.Errorf("snap[%d].X = %f, want %f", i, p.X, want[i])
		}
	}
}

func TestRingRetainsExactlyCapacity(t *testing.T) {
	const capacity = 16
	r := NewRing(capacity)

	total := capacity * 3
	for i := 0; i < total; i++ {
		r.Append(Point{X: float64(i)})
	}

	snap := r.Snapshot()
	if len(snap) != capacity {
		t.Fatalf("expected %d points, got %d", capacity, len(snap))
	}

	// The cap-th most recent point is still present...
	if snap[0].X != float64(total-capacity) {
		t.Errorf("oldest retained point: got %f, want %f", snap[0].X, float64(total-capacity))
	}
	// ...and anything older is gone.
	for _, p := range snap {
		if p.X < float64(total-capacity) {
			t.Errorf("found evicted point %f in snapshot", p.X)
		}
	}
}

func TestRingDefaultCapacity(t *testing.T) {
	r := NewRing(0)
	if r.Cap() != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, r.Cap())
	}

	r = NewRing(-5)
	if r.Cap() != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, r.Cap())
	}
}

func TestRingSnapshotIsCopy(t *testing.T) {
	r := NewRing(4)
	r.Append(Point{X: 1})

	snap := r.Snapshot()
	snap[0].X = 99

	if r.Snapshot()[0].X != 1 {
		t.Error("snapshot must not alias the ring's backing array")
	}
}
