package trace_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nanovox/coord"
	"github.com/katalvlaran/nanovox/trace"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tr := trace.Trace{
		trace.Halt(),
		trace.Wait(),
		trace.Flip(),
		trace.SMove(coord.PnDiff{DZ: 15}),
		trace.SMove(coord.PnDiff{DX: -15}),
		trace.LMove(coord.PnDiff{DZ: 5}, coord.PnDiff{DX: -5}),
		trace.FusionP(coord.PnDiff{DY: 1, DZ: -1}),
		trace.FusionS(coord.PnDiff{DX: 1}),
		trace.Fission(coord.PnDiff{DX: 1, DY: 1}, 10),
		trace.Fill(coord.PnDiff{DY: -1}),
		trace.GFill(coord.PnDiff{DY: -1}, coord.PnDiff{DX: 30, DY: 30, DZ: 30}),
		trace.GVoid(coord.PnDiff{DX: 1}, coord.PnDiff{DX: -30, DY: -30, DZ: -30}),
	}

	var buf bytes.Buffer
	require.NoError(t, trace.Encode(&buf, tr))
	got, err := trace.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, tr, got)
}

func TestEncodeDecodeRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	near := func() coord.PnDiff {
		for {
			d := coord.PnDiff{DX: int8(rng.Intn(3) - 1), DY: int8(rng.Intn(3) - 1), DZ: int8(rng.Intn(3) - 1)}
			if d.IsNear() {
				return d
			}
		}
	}
	long := func() coord.PnDiff {
		axis := rng.Intn(3)
		mag := int8(rng.Intn(15) + 1)
		if rng.Intn(2) == 0 {
			mag = -mag
		}
		d := coord.PnDiff{}
		switch axis {
		case 0:
			d.DX = mag
		case 1:
			d.DY = mag
		default:
			d.DZ = mag
		}

		return d
	}
	short := func() coord.PnDiff {
		axis := rng.Intn(3)
		mag := int8(rng.Intn(5) + 1)
		if rng.Intn(2) == 0 {
			mag = -mag
		}
		d := coord.PnDiff{}
		switch axis {
		case 0:
			d.DX = mag
		case 1:
			d.DY = mag
		default:
			d.DZ = mag
		}

		return d
	}
	far := func() coord.PnDiff {
		d := coord.PnDiff{DX: int8(rng.Intn(61) - 30), DY: int8(rng.Intn(61) - 30), DZ: int8(rng.Intn(61) - 30)}
		for !d.IsFar() {
			d = coord.PnDiff{DX: int8(rng.Intn(61) - 30), DY: int8(rng.Intn(61) - 30), DZ: int8(rng.Intn(61) - 30)}
		}

		return d
	}

	const n = 10000
	tr := make(trace.Trace, 0, n)
	for i := 0; i < n; i++ {
		switch rng.Intn(11) {
		case 0:
			tr = append(tr, trace.Wait())
		case 1:
			tr = append(tr, trace.Flip())
		case 2:
			tr = append(tr, trace.SMove(long()))
		case 3:
			tr = append(tr, trace.LMove(short(), short()))
		case 4:
			tr = append(tr, trace.FusionP(near()))
		case 5:
			tr = append(tr, trace.FusionS(near()))
		case 6:
			tr = append(tr, trace.Fission(near(), byte(rng.Intn(39))))
		case 7:
			tr = append(tr, trace.Fill(near()))
		case 8:
			tr = append(tr, trace.Void(near()))
		case 9:
			tr = append(tr, trace.GFill(near(), far()))
		default:
			tr = append(tr, trace.GVoid(near(), far()))
		}
	}
	tr = append(tr, trace.Halt())

	var buf bytes.Buffer
	require.NoError(t, trace.Encode(&buf, tr))
	got, err := trace.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, tr, got)
}

func TestVolatilePointsSMove(t *testing.T) {
	c := trace.SMove(coord.PnDiff{DX: 2})
	pts, err := c.VolatilePoints(coord.Pn{}, 10)
	require.NoError(t, err)
	require.Len(t, pts, 3)
}

func TestVolatilePointsFill(t *testing.T) {
	c := trace.Fill(coord.PnDiff{DY: 1})
	pts, err := c.VolatilePoints(coord.Pn{X: 1}, 10)
	require.NoError(t, err)
	require.ElementsMatch(t, []coord.Pn{{X: 1}, {X: 1, Y: 1}}, pts)
}
