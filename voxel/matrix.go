package voxel

import (
	"math/bits"

	"github.com/katalvlaran/nanovox/coord"
)

// Matrix is a dense, word-packed bitset over a cube of side r (r^3 bits).
// The zero value is not usable; construct with NewMatrix.
type Matrix struct {
	r     byte
	words []uint64
}

// NewMatrix allocates an all-empty matrix of resolution r.
//
// Complexity: O(r^3/64).
func NewMatrix(r byte) *Matrix {
	n := int(r) * int(r) * int(r)

	return &Matrix{r: r, words: make([]uint64, wordCount(n))}
}

func wordCount(nbits int) int {
	return (nbits + 63) / 64
}

// Clone returns an independent copy of m.
func (m *Matrix) Clone() *Matrix {
	words := make([]uint64, len(m.words))
	copy(words, m.words)

	return &Matrix{r: m.r, words: words}
}

// Resolution returns r.
func (m *Matrix) Resolution() byte {
	return m.r
}

func (m *Matrix) index(p coord.Pn) (int, bool) {
	r := int(m.r)
	if int(p.X) >= r || int(p.Y) >= r || int(p.Z) >= r {
		return 0, false
	}

	return int(p.X)*r*r + int(p.Y)*r + int(p.Z), true
}

// Get reports whether p is full. Out-of-range points read as false.
//
// Complexity: O(1).
func (m *Matrix) Get(p coord.Pn) bool {
	idx, ok := m.index(p)
	if !ok {
		return false
	}

	return m.words[idx/64]&(uint64(1)<<uint(idx%64)) != 0
}

// Set marks p as full, returning whether it was previously empty.
// p must be within range; an out-of-range p is a programming error and
// panics, matching the reference matrix's behavior for writes.
//
// Complexity: O(1).
func (m *Matrix) Set(p coord.Pn) bool {
	idx, ok := m.index(p)
	if !ok {
		panic("voxel: Set on out-of-range point")
	}
	word := &m.words[idx/64]
	bit := uint64(1) << uint(idx%64)
	was := *word&bit != 0
	*word |= bit

	return !was
}

// Unset marks p as empty, returning whether it was previously full.
// p must be within range; see Set.
//
// Complexity: O(1).
func (m *Matrix) Unset(p coord.Pn) bool {
	idx, ok := m.index(p)
	if !ok {
		panic("voxel: Unset on out-of-range point")
	}
	word := &m.words[idx/64]
	bit := uint64(1) << uint(idx%64)
	was := *word&bit != 0
	*word &^= bit

	return was
}

// Len returns the population count (number of full voxels).
//
// Complexity: O(r^3/64).
func (m *Matrix) Len() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}

	return n
}

func (m *Matrix) pointAt(bitIdx int) coord.Pn {
	r := int(m.r)
	x := bitIdx / (r * r)
	rem := bitIdx % (r * r)
	y := rem / r
	z := rem % r

	return coord.Pn{X: byte(x), Y: byte(y), Z: byte(z)}
}

// FullPoints returns every full voxel, in ascending index order.
//
// Complexity: O(r^3/64 + len(result)).
func (m *Matrix) FullPoints() []coord.Pn {
	res := make([]coord.Pn, 0, m.Len())
	for wi, w := range m.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			res = append(res, m.pointAt(wi*64+tz))
			w &= w - 1
		}
	}

	return res
}

// SymmetricDifference returns every point whose full/empty status differs
// between m and other. Returns ErrResolutionMismatch if their resolutions
// differ.
//
// Complexity: O(r^3/64 + len(result)).
func (m *Matrix) SymmetricDifference(other *Matrix) ([]coord.Pn, error) {
	if m.r != other.r {
		return nil, ErrResolutionMismatch
	}

	res := make([]coord.Pn, 0)
	for wi := range m.words {
		diff := m.words[wi] ^ other.words[wi]
		for diff != 0 {
			tz := bits.TrailingZeros64(diff)
			res = append(res, m.pointAt(wi*64+tz))
			diff &= diff - 1
		}
	}

	return res, nil
}

// IsGrounded reports whether every full voxel is 6-connected, through full
// voxels only, to a full voxel on the y=0 floor.
//
// Complexity: O(r^3) time, O(r^3) memory.
func (m *Matrix) IsGrounded() bool {
	full := m.FullPoints()
	if len(full) == 0 {
		return true
	}

	visited := make(map[coord.Pn]bool, len(full))
	queue := make([]coord.Pn, 0, len(full))
	for _, p := range full {
		if p.Y == 0 {
			visited[p] = true
			queue = append(queue, p)
		}
	}

	for i := 0; i < len(queue); i++ {
		p := queue[i]
		for _, np := range p.Adjacents(m.r) {
			if m.Get(np) && !visited[np] {
				visited[np] = true
				queue = append(queue, np)
			}
		}
	}

	return len(visited) == len(full)
}
