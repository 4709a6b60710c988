package sparse

import (
	"testing"
)

func TestNullValue(t *testing.T) {
	M := NewIntMatrix(3, 3, DefaultNullValue)
	if v := M.Value(1, 1); v != DefaultNullValue {
		t.Errorf("expected empty position to return null value, got %d", v)
	}
	if vals := M.Values(1, 1); vals != nil {
		t.Errorf("expected no values for empty position, got %v", vals)
	}
}

func TestSetAndAdd(t *testing.T) {
	M := NewIntMatrix(10, 10, -1)
	M.Set(2, 3, 4711)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) = 4711, is %d", v)
	}
	if !M.Add(2, 3, 123) {
		t.Errorf("expected 123 to be added to (2,3)")
	}
	if M.Add(2, 3, 123) {
		t.Errorf("expected second add of 123 to be a no-op")
	}
	vals := M.Values(2, 3)
	if len(vals) != 2 || vals[0] != 123 || vals[1] != 4711 {
		t.Errorf("expected values [123 4711], have %v", vals)
	}
	if M.ValueCount() != 1 {
		t.Errorf("expected 1 position to be set, have %d", M.ValueCount())
	}
	M.Set(2, 3, 7)
	if M.Count(2, 3) != 1 || M.Value(2, 3) != 7 {
		t.Errorf("expected Set to replace values, have %v", M.Values(2, 3))
	}
}

func TestRowMajorOrder(t *testing.T) {
	M := NewIntMatrix(4, 4, -1)
	M.Add(3, 0, 1)
	M.Add(0, 3, 2)
	M.Add(1, 1, 3)
	M.Add(0, 1, 4)
	var order []int32
	M.Each(func(i, j int, values []int32) {
		order = append(order, values[0])
	})
	expected := []int32{4, 2, 3, 1}
	for k, v := range expected {
		if order[k] != v {
			t.Fatalf("expected row-major order %v, have %v", expected, order)
		}
	}
}

func TestIndexOutOfRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected out-of-range Add to panic")
		}
	}()
	M := NewIntMatrix(2, 2, -1)
	M.Add(2, 0, 1)
}
