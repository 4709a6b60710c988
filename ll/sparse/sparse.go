/*
Package sparse implements a simple type for sparse integer matrices.
It is used for LL(1) prediction tables. Every entry in the table is an
ordered set of int32 values, allowing multiply defined (conflicting) cells.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     vals := M.Values(2, 3)         // returns [123 4711]
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Values within a position are kept in ascending order, without duplicates.
// Values cannot be deleted, but positions may be overwritten with Set.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	values   []int32 // ascending
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the smallest value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if t := m.find(i, j); t != nil {
		return t.values[0]
	}
	return m.nullval
}

// Values returns all values at position (i,j) in ascending order, or nil.
func (m *IntMatrix) Values(i, j int) []int32 {
	if t := m.find(i, j); t != nil {
		return append([]int32(nil), t.values...)
	}
	return nil
}

// Count returns the number of values at position (i,j).
func (m *IntMatrix) Count(i, j int) int {
	if t := m.find(i, j); t != nil {
		return len(t.values)
	}
	return 0
}

// Set a value in the matrix at position (i,j), replacing all values present.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	t := m.locate(i, j)
	t.values = append(t.values[:0], value)
	return m
}

// Add a value to the matrix at position (i,j). Returns false if the value has
// already been present.
func (m *IntMatrix) Add(i, j int, value int32) bool {
	t := m.locate(i, j)
	k := sort.Search(len(t.values), func(k int) bool { return t.values[k] >= value })
	if k < len(t.values) && t.values[k] == value {
		return false
	}
	t.values = append(t.values, 0)
	copy(t.values[k+1:], t.values[k:])
	t.values[k] = value
	return true
}

// Each calls f for every position set, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, values []int32)) {
	for _, t := range m.values {
		f(t.row, t.col, append([]int32(nil), t.values...))
	}
}

func (m *IntMatrix) find(i, j int) *triplet {
	for k := range m.values {
		t := &m.values[k]
		if !t.storedLeftOf(i, j) { // have skipped all lesser indices
			if t.storedAt(i, j) {
				return t
			}
			break
		}
	}
	return nil
}

// locate finds the triplet at position (i,j), inserting an empty one if
// necessary.
func (m *IntMatrix) locate(i, j int) *triplet {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix index out of range: (%d,%d) in %d x %d", i, j,
			m.rowcnt, m.colcnt))
	}
	at := 0 // will be position of new value
	for k := range m.values {
		t := &m.values[k]
		if !t.storedLeftOf(i, j) {
			if t.storedAt(i, j) {
				return t
			}
			break
		}
		at++
	}
	tnew := triplet{row: i, col: j}
	// the following 3 lines have to work for k being the right edge of v or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
	return &m.values[at]
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}
