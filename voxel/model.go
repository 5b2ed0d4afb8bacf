package voxel

import (
	"bufio"
	"io"

	"github.com/katalvlaran/nanovox/coord"
)

// Model wraps a Matrix with the contest's well-formedness invariant.
type Model struct {
	matrix *Matrix
}

// NewModel allocates an empty, well-formed model of resolution r.
func NewModel(r byte) *Model {
	return &Model{matrix: NewMatrix(r)}
}

// ModelFromMatrix wraps an existing matrix as a Model without copying it.
func ModelFromMatrix(m *Matrix) *Model {
	return &Model{matrix: m}
}

// Matrix returns a clone of the model's underlying matrix, so callers
// (chiefly engine.NewGame) get their own mutable copy to evolve.
func (mo *Model) Matrix() *Matrix {
	return mo.matrix.Clone()
}

// Resolution returns R.
func (mo *Model) Resolution() byte {
	return mo.matrix.Resolution()
}

// Get reports whether p is full in the model.
func (mo *Model) Get(p coord.Pn) bool {
	return mo.matrix.Get(p)
}

// Len returns the number of full voxels.
func (mo *Model) Len() int {
	return mo.matrix.Len()
}

// FullPoints returns every full voxel.
func (mo *Model) FullPoints() []coord.Pn {
	return mo.matrix.FullPoints()
}

// DiffPoints returns the symmetric difference against another model.
func (mo *Model) DiffPoints(other *Model) ([]coord.Pn, error) {
	return mo.matrix.SymmetricDifference(other.matrix)
}

// DiffPointsMatrix returns the symmetric difference against a raw matrix
// (used by the engine/solver to diff the model against live game state).
func (mo *Model) DiffPointsMatrix(other *Matrix) ([]coord.Pn, error) {
	return mo.matrix.SymmetricDifference(other)
}

// IsComplete reports whether m exactly equals the model's matrix.
func (mo *Model) IsComplete(m *Matrix) bool {
	diff, err := mo.matrix.SymmetricDifference(m)

	return err == nil && len(diff) == 0
}

// IsWellFormed reports whether every full voxel satisfies
// 0 < x < R-1, y < R-1, 1 <= z < R-1, and the full-voxel set is grounded.
//
// Complexity: O(r^3).
func (mo *Model) IsWellFormed() bool {
	r := mo.matrix.Resolution()
	for _, p := range mo.matrix.FullPoints() {
		if !(p.X > 0 && p.X < r-1 && p.Y < r-1 && p.Z >= 1 && p.Z < r-1) {
			return false
		}
	}

	return mo.matrix.IsGrounded()
}

// floorDiv8 returns ceil(n/8).
func floorDiv8(n int) int {
	return (n + 7) / 8
}

func reverseBits(b byte) byte {
	var out byte
	for i := 0; i < 8; i++ {
		out |= ((b >> uint(i)) & 1) << uint(7-i)
	}

	return out
}

// ReadModel decodes a *.mdl stream: one leading byte R, followed by
// ceil(R^3/8) bytes of bits, low bit first within each byte (bit position p
// in the byte corresponds to voxel index byteIndex*8 + (7-p)).
//
// Complexity: O(r^3).
func ReadModel(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)
	rb, err := br.ReadByte()
	if err != nil {
		return nil, ErrTruncatedStream
	}
	res := int(rb)
	n := res * res * res
	nbytes := floorDiv8(n)

	buf := make([]byte, nbytes)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, ErrTruncatedStream
	}

	m := NewMatrix(rb)
	for byteIdx, b := range buf {
		rev := reverseBits(b)
		for p := 0; p < 8; p++ {
			voxelIdx := byteIdx*8 + p
			if voxelIdx >= n {
				break
			}
			if rev&(1<<uint(p)) != 0 {
				pn := m.pointAt(voxelIdx)
				m.Set(pn)
			}
		}
	}

	return ModelFromMatrix(m), nil
}

// WriteModel encodes mo in the *.mdl binary format described by ReadModel.
//
// Complexity: O(r^3).
func WriteModel(w io.Writer, mo *Model) error {
	bw := bufio.NewWriter(w)
	r := mo.Resolution()
	if err := bw.WriteByte(r); err != nil {
		return err
	}

	n := int(r) * int(r) * int(r)
	nbytes := floorDiv8(n)
	buf := make([]byte, nbytes)
	for _, p := range mo.FullPoints() {
		voxelIdx, _ := mo.matrix.index(p)
		byteIdx := voxelIdx / 8
		buf[byteIdx] |= 1 << uint(voxelIdx%8)
	}
	for i, b := range buf {
		buf[i] = reverseBits(b)
	}
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	return bw.Flush()
}
