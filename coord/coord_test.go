package coord_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nanovox/coord"
)

func TestLongLinearRoundTrip(t *testing.T) {
	cases := []coord.PnDiff{
		{DX: 15}, {DX: -15}, {DX: 1}, {DX: -1},
		{DY: 15}, {DY: -15}, {DY: 1}, {DY: -1},
		{DZ: 15}, {DZ: -15}, {DZ: 1}, {DZ: -1},
	}
	for _, d := range cases {
		require.True(t, d.IsLongLinear())
		a, i, err := d.EncodeLongLinear()
		require.NoError(t, err)
		got := coord.DecodeLongLinear(a, i)
		require.Equal(t, d, got)
		require.True(t, got.IsLongLinear())
	}
}

func TestShortLinearRoundTrip(t *testing.T) {
	cases := []coord.PnDiff{
		{DX: 5}, {DX: -5}, {DX: 1}, {DX: -1},
		{DY: 5}, {DY: -5}, {DY: 1}, {DY: -1},
		{DZ: 5}, {DZ: -5}, {DZ: 1}, {DZ: -1},
	}
	for _, d := range cases {
		require.True(t, d.IsShortLinear())
		a, i, err := d.EncodeShortLinear()
		require.NoError(t, err)
		got := coord.DecodeShortLinear(a, i)
		require.Equal(t, d, got)
		require.True(t, got.IsShortLinear())
	}
}

func TestShortLinearRejectsLargeMagnitude(t *testing.T) {
	d := coord.PnDiff{DX: 10}
	require.False(t, d.IsShortLinear())
	require.True(t, d.IsLongLinear())
	_, _, err := d.EncodeShortLinear()
	require.ErrorIs(t, err, coord.ErrNotShortLinear)
}

func TestNearRoundTrip(t *testing.T) {
	cases := []coord.PnDiff{
		{DX: -1, DY: 1}, {DY: 1, DZ: 1}, {DY: -1, DZ: -1},
		{DX: 1, DZ: -1}, {DY: 1}, {DY: -1}, {DZ: -1}, {DX: 1},
	}
	for _, d := range cases {
		require.True(t, d.IsNear())
		nd, err := d.EncodeNear()
		require.NoError(t, err)
		require.Equal(t, d, coord.DecodeNear(nd))
	}
}

func TestFarRoundTrip(t *testing.T) {
	d := coord.PnDiff{DX: 30, DY: -30, DZ: 1}
	require.True(t, d.IsFar())
	x, y, z, err := d.EncodeFar()
	require.NoError(t, err)
	require.Equal(t, d, coord.DecodeFar(x, y, z))
}

func TestAddOutOfRange(t *testing.T) {
	p := coord.Pn{X: 0}
	_, err := p.Add(coord.PnDiff{DX: -1}, 10)
	require.ErrorIs(t, err, coord.ErrOutOfRange)

	p2 := coord.Pn{X: 9}
	_, err = p2.Add(coord.PnDiff{DX: 1}, 10)
	require.ErrorIs(t, err, coord.ErrOutOfRange)
}

func TestRegionCoversInclusiveBox(t *testing.T) {
	region := coord.Pn{X: 1, Y: 1, Z: 1}.Region(coord.Pn{X: 2, Y: 1, Z: 3})
	require.Len(t, region, 2*1*3)
	require.Contains(t, region, coord.Pn{X: 1, Y: 1, Z: 1})
	require.Contains(t, region, coord.Pn{X: 2, Y: 1, Z: 3})
}

func TestAdjacentsRespectsBounds(t *testing.T) {
	origin := coord.Zero()
	adj := origin.Adjacents(5)
	require.Len(t, adj, 3) // only +x, +y, +z stay in range
}
