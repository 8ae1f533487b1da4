package buffer

import (
	"errors"
	"testing"
)

func TestNewZeroFilled(t *testing.T) {
	b := New(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewNegativeLength(t *testing.T) {
	b := New(-1)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 for negative input", b.Len())
	}
}

func TestFromSliceSharesMemory(t *testing.T) {
	s := []float64{1, 2, 3}
	b := FromSlice(s)
	b.Set(0, 99)
	if s[0] != 99 {
		t.Fatal("FromSlice should share underlying memory")
	}
	if b.At(0) != 99 {
		t.Fatalf("At(0) = %v, want 99", b.At(0))
	}
}

func TestFillAndReset(t *testing.T) {
	b := New(5)
	b.Fill(2.5)
	for i := range b.Len() {
		if b.At(i) != 2.5 {
			t.Fatalf("At(%d) = %v after Fill", i, b.At(i))
		}
	}
	b.Reset()
	if b.MaxAbs() != 0 {
		t.Fatal("Reset did not zero the buffer")
	}
	if b.Len() != 5 {
		t.Fatalf("Len() = %d, length must not change", b.Len())
	}
}

func TestSliceCopies(t *testing.T) {
	b := FromSlice([]float64{0, 1, 2, 3, 4})
	s, err := b.Slice(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Samples(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice(1, 4) = %v", got)
	}
	s.Set(0, 42)
	if b.At(1) != 1 {
		t.Fatal("Slice must not alias the source")
	}

	for _, r := range [][2]int{{-1, 2}, {2, 6}, {3, 2}} {
		if _, err := b.Slice(r[0], r[1]); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Slice(%d, %d) err = %v", r[0], r[1], err)
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := FromSlice([]float64{1, 2, 3, 4})
	b := FromSlice([]float64{2, 2, 2, 2})

	if err := a.Mul(b); err != nil {
		t.Fatal(err)
	}
	if err := a.Add(b); err != nil {
		t.Fatal(err)
	}
	if err := a.Sub(FromSlice([]float64{1, 1, 1, 1})); err != nil {
		t.Fatal(err)
	}
	a.Scale(0.5)

	// ((x*2)+2-1)/2
	want := []float64{1.5, 2.5, 3.5, 4.5}
	for i, w := range want {
		if a.At(i) != w {
			t.Fatalf("At(%d) = %v, want %v", i, a.At(i), w)
		}
	}
	if a.Sum() != 12 {
		t.Fatalf("Sum() = %v, want 12", a.Sum())
	}
}

func TestSquareAndReverse(t *testing.T) {
	b := FromSlice([]float64{-3, 1, 2})
	b.Square()
	b.Reverse()
	want := []float64{4, 1, 9}
	for i, w := range want {
		if b.At(i) != w {
			t.Fatalf("At(%d) = %v, want %v", i, b.At(i), w)
		}
	}
	if b.MaxAbs() != 9 {
		t.Fatalf("MaxAbs() = %v, want 9", b.MaxAbs())
	}
}

func TestDimensionMismatch(t *testing.T) {
	a := New(4)
	b := New(3)

	ops := map[string]func() error{
		"Mul":      func() error { return a.Mul(b) },
		"Add":      func() error { return a.Add(b) },
		"Sub":      func() error { return a.Sub(b) },
		"CopyFrom": func() error { return a.CopyFrom(b) },
		"nil":      func() error { return a.Mul(nil) },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrDimensionMismatch) {
			t.Fatalf("%s err = %v, want ErrDimensionMismatch", name, err)
		}
	}
}

func TestCopyIsDeep(t *testing.T) {
	orig := FromSlice([]float64{1, 2, 3})
	cp := orig.Copy()
	cp.Set(0, 99)
	if orig.At(0) != 1 {
		t.Fatal("Copy should be independent of original")
	}

	dst := New(3)
	if err := dst.CopyFrom(orig); err != nil {
		t.Fatal(err)
	}
	if dst.At(2) != 3 {
		t.Fatalf("CopyFrom: At(2) = %v", dst.At(2))
	}
}
