package buffer

import "testing"

func TestPoolGetReturnsZeroed(t *testing.T) {
	p := NewPool()

	b := p.Get(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}

	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}

	p.Put(b)
}

func TestPoolReuseIsZeroed(t *testing.T) {
	p := NewPool()

	b := p.Get(4)
	b.Fill(42)
	p.Put(b)

	b2 := p.Get(4)
	for i, v := range b2.Samples() {
		if v != 0 {
			t.Fatalf("reused Samples()[%d] = %v, want 0", i, v)
		}
	}

	p.Put(b2)
}

func TestPoolGetCopy(t *testing.T) {
	p := NewPool()
	src := []float64{1, 2, 3}

	b := p.GetCopy(src)
	b.Set(0, 7)
	if src[0] != 1 {
		t.Fatal("GetCopy must not alias the source")
	}
	if b.Len() != 3 || b.At(2) != 3 {
		t.Fatalf("GetCopy = %v", b.Samples())
	}
	p.Put(b)
}

func TestPoolPutNilSafe(_ *testing.T) {
	p := NewPool()
	p.Put(nil) // must not panic
}
