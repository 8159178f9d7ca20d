// Package hashtable provides the key-indexed vertex store backing the
// permutohedral lattice.
//
// Lattice vertices are identified by short sequences of int16
// coordinates. The store maps each distinct key to a dense, 0-based,
// monotonically assigned vertex index and supports reverse lookup of
// the key for a given index.
package hashtable

// NotFound is returned by Find when the key is absent and insertion
// was not requested.
const NotFound int32 = -1

// bytesPerCoord is the encoded size of one int16 key coordinate.
const bytesPerCoord = 2

// Store resolves fixed-length int16 keys to dense vertex indices.
type Store interface {
	// Find returns the index stored for key. With insertIfAbsent,
	// an absent key is assigned the next free index and stored;
	// otherwise Find returns NotFound and never allocates.
	Find(key []int16, insertIfAbsent bool) int32

	// Size returns the number of distinct stored keys.
	Size() int

	// Key returns the key stored at index. The returned slice is
	// owned by the store and valid until the next insertion.
	// Index must have been previously assigned by Find.
	Key(index int32) []int16
}

// Table is the default map-backed Store.
type Table struct {
	dim   int
	index map[string]int32
	keys  []int16 // flat storage, dim coordinates per vertex
	buf   []byte  // scratch for key encoding
}

// New creates a Table for keys of dim coordinates. capacityHint sizes
// the underlying storage; it may be zero.
func New(dim, capacityHint int) *Table {
	return &Table{
		dim:   dim,
		index: make(map[string]int32, capacityHint),
		keys:  make([]int16, 0, capacityHint*dim),
		buf:   make([]byte, 0, dim*bytesPerCoord),
	}
}

// Find implements Store. Indices are assigned densely from 0 in
// insertion order.
func (t *Table) Find(key []int16, insertIfAbsent bool) int32 {
	t.buf = t.buf[:0]
	for _, c := range key {
		t.buf = append(t.buf, byte(uint16(c)), byte(uint16(c)>>8))
	}

	// string(t.buf) in the index expression does not allocate.
	if id, ok := t.index[string(t.buf)]; ok {
		return id
	}
	if !insertIfAbsent {
		return NotFound
	}

	id := int32(len(t.index))
	t.index[string(t.buf)] = id
	t.keys = append(t.keys, key...)
	return id
}

// Size implements Store.
func (t *Table) Size() int {
	return len(t.index)
}

// Key implements Store.
func (t *Table) Key(index int32) []int16 {
	lo := int(index) * t.dim
	return t.keys[lo : lo+t.dim]
}
