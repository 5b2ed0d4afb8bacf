package voxel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nanovox/coord"
	"github.com/katalvlaran/nanovox/voxel"
)

func TestMatrixGetSetUnset(t *testing.T) {
	m := voxel.NewMatrix(5)
	p := coord.Pn{X: 1, Y: 2, Z: 3}
	require.False(t, m.Get(p))
	require.True(t, m.Set(p))
	require.True(t, m.Get(p))
	require.False(t, m.Set(p)) // already full
	require.Equal(t, 1, m.Len())
	require.True(t, m.Unset(p))
	require.Equal(t, 0, m.Len())
}

func TestMatrixOutOfRangeReadsFalse(t *testing.T) {
	m := voxel.NewMatrix(3)
	require.False(t, m.Get(coord.Pn{X: 9, Y: 9, Z: 9}))
}

func TestSymmetricDifference(t *testing.T) {
	a := voxel.NewMatrix(4)
	b := voxel.NewMatrix(4)
	a.Set(coord.Pn{X: 1, Y: 1, Z: 1})
	b.Set(coord.Pn{X: 2, Y: 2, Z: 2})
	diff, err := a.SymmetricDifference(b)
	require.NoError(t, err)
	require.Len(t, diff, 2)
}

func TestIsGroundedSingleFloorVoxel(t *testing.T) {
	m := voxel.NewMatrix(4)
	m.Set(coord.Pn{X: 1, Y: 0, Z: 1})
	require.True(t, m.IsGrounded())
}

func TestIsGroundedFloatingVoxel(t *testing.T) {
	m := voxel.NewMatrix(4)
	m.Set(coord.Pn{X: 1, Y: 2, Z: 1})
	require.False(t, m.IsGrounded())
}

func TestIsGroundedChain(t *testing.T) {
	m := voxel.NewMatrix(4)
	m.Set(coord.Pn{X: 1, Y: 0, Z: 1})
	m.Set(coord.Pn{X: 1, Y: 1, Z: 1})
	m.Set(coord.Pn{X: 1, Y: 2, Z: 1})
	require.True(t, m.IsGrounded())
}

func TestModelRoundTrip(t *testing.T) {
	m := voxel.NewModel(5)
	raw := m.Matrix()
	raw.Set(coord.Pn{X: 1, Y: 0, Z: 1})
	raw.Set(coord.Pn{X: 1, Y: 1, Z: 1})
	raw.Set(coord.Pn{X: 1, Y: 2, Z: 1})
	m = voxel.ModelFromMatrix(raw)

	var buf bytes.Buffer
	require.NoError(t, voxel.WriteModel(&buf, m))

	decoded, err := voxel.ReadModel(&buf)
	require.NoError(t, err)
	require.Equal(t, m.Len(), decoded.Len())
	diff, err := m.DiffPoints(decoded)
	require.NoError(t, err)
	require.Empty(t, diff)
}

func TestModelIsWellFormed(t *testing.T) {
	raw := voxel.NewMatrix(5)
	raw.Set(coord.Pn{X: 1, Y: 0, Z: 1})
	require.True(t, voxel.ModelFromMatrix(raw).IsWellFormed())

	bad := voxel.NewMatrix(5)
	bad.Set(coord.Pn{X: 0, Y: 0, Z: 1}) // x==0 violates 0<x<R-1
	require.False(t, voxel.ModelFromMatrix(bad).IsWellFormed())
}

func TestModelEmptyRoundTrip(t *testing.T) {
	m := voxel.NewModel(3)
	var buf bytes.Buffer
	require.NoError(t, voxel.WriteModel(&buf, m))
	decoded, err := voxel.ReadModel(&buf)
	require.NoError(t, err)
	require.Equal(t, 0, decoded.Len())
	require.Equal(t, byte(3), decoded.Resolution())
}
