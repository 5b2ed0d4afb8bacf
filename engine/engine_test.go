package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/nanovox/coord"
	"github.com/katalvlaran/nanovox/engine"
	"github.com/katalvlaran/nanovox/trace"
	"github.com/katalvlaran/nanovox/voxel"
)

// EngineSuite covers Execute's validation and application logic against
// the reference end-to-end scenarios.
type EngineSuite struct {
	suite.Suite
}

func stepBaseline(h engine.Harmonics, r byte, n int) uint64 {
	k := uint64(3)
	if h == engine.High {
		k = 30
	}
	rr := uint64(r)

	return k*rr*rr*rr + 20*uint64(n)
}

// TestTrivialHalt: empty models, Flip/Flip/Halt, single bot throughout.
func (s *EngineSuite) TestTrivialHalt() {
	src := voxel.NewModel(3)
	dst := voxel.NewModel(3)
	g, err := engine.NewGame(src, dst)
	require.NoError(s.T(), err)

	expected := stepBaseline(engine.Low, 3, 1) + stepBaseline(engine.High, 3, 1) + stepBaseline(engine.Low, 3, 1)

	require.NoError(s.T(), g.Execute(trace.Trace{trace.Flip()}))
	require.NoError(s.T(), g.Execute(trace.Trace{trace.Flip()}))
	require.NoError(s.T(), g.Execute(trace.Trace{trace.Halt()}))

	require.True(s.T(), g.IsComplete())
	require.Equal(s.T(), expected, g.Energy())
}

// TestSingleFill: fill one voxel, LMove out and back to the origin, then halt.
func (s *EngineSuite) TestSingleFill() {
	src := voxel.NewModel(3)
	m := voxel.NewMatrix(3)
	m.Set(coord.Pn{X: 1, Y: 0, Z: 1})
	dst := voxel.ModelFromMatrix(m)

	g, err := engine.NewGame(src, dst)
	require.NoError(s.T(), err)

	before := g.Energy()
	require.NoError(s.T(), g.Execute(trace.Trace{trace.Fill(coord.PnDiff{DX: 1, DZ: 1})}))
	require.Equal(s.T(), before+stepBaseline(engine.Low, 3, 1)+12, g.Energy())

	require.NoError(s.T(), g.Execute(trace.Trace{trace.LMove(coord.PnDiff{DZ: 1}, coord.PnDiff{DZ: -1})}))
	require.NoError(s.T(), g.Execute(trace.Trace{trace.Halt()}))
	require.True(s.T(), g.IsComplete())
}

// TestFissionThenFusion: bot count returns to 1 and energy nets to the
// baseline sum once the 24-point fission/fusion deltas cancel.
func (s *EngineSuite) TestFissionThenFusion() {
	src := voxel.NewModel(5)
	dst := voxel.NewModel(5)
	g, err := engine.NewGame(src, dst)
	require.NoError(s.T(), err)

	require.NoError(s.T(), g.Execute(trace.Trace{trace.Fission(coord.PnDiff{DX: 1}, 0)}))
	require.Len(s.T(), g.Bots(), 2)

	require.NoError(s.T(), g.Execute(trace.Trace{
		trace.FusionP(coord.PnDiff{DX: 1}),
		trace.FusionS(coord.PnDiff{DX: -1}),
	}))
	require.Len(s.T(), g.Bots(), 1)

	require.NoError(s.T(), g.Execute(trace.Trace{trace.Halt()}))
	require.True(s.T(), g.IsComplete())

	expected := stepBaseline(engine.Low, 5, 1) + 24 +
		stepBaseline(engine.Low, 5, 2) - 24 +
		stepBaseline(engine.Low, 5, 1)
	require.Equal(s.T(), expected, g.Energy())
}

// TestInterferenceRejection: two bots' SMove sweep the same cell.
func (s *EngineSuite) TestInterferenceRejection() {
	src := voxel.NewModel(5)
	dst := voxel.NewModel(5)
	g, err := engine.NewGame(src, dst)
	require.NoError(s.T(), err)

	require.NoError(s.T(), g.Execute(trace.Trace{trace.Fission(coord.PnDiff{DX: 1}, 0)}))
	bots := g.Bots()
	require.Len(s.T(), bots, 2)
	require.NoError(s.T(), g.Execute(trace.Trace{trace.Wait(), trace.SMove(coord.PnDiff{DX: 1})}))

	turnBefore := g.Turn()
	err = g.Execute(trace.Trace{
		trace.SMove(coord.PnDiff{DX: 1}),
		trace.SMove(coord.PnDiff{DX: -1}),
	})
	require.Error(s.T(), err)
	require.True(s.T(), errors.Is(err, engine.ErrInterference))
	require.Equal(s.T(), turnBefore, g.Turn())
}

func fissionAll(t *testing.T, g *engine.Game, d coord.PnDiff, m byte) {
	t.Helper()
	bots := g.Bots()
	cmds := make(trace.Trace, len(bots))
	for i := range bots {
		cmds[i] = trace.Fission(d, m)
	}
	require.NoError(t, g.Execute(cmds))
}

func moveBotAt(t *testing.T, g *engine.Game, from coord.Pn, d coord.PnDiff) {
	t.Helper()
	bots := g.Bots()
	cmds := make(trace.Trace, len(bots))
	found := false
	for i, b := range bots {
		if b.Pos == from {
			cmds[i] = trace.SMove(d)
			found = true
		} else {
			cmds[i] = trace.Wait()
		}
	}
	require.True(t, found, "no live bot at %v", from)
	require.NoError(t, g.Execute(cmds))
}

// TestGVoidBoxClearing drives 8 bots from a single origin bot, via a
// fission tree followed by single-axis routing, to the 8 corners of a 2x2x2
// full cube and issues one coordinated GVoid per bot. Verifies the energy
// delta and that the cube is fully cleared.
func (s *EngineSuite) TestGVoidBoxClearing() {
	const r = 10
	m := voxel.NewMatrix(r)
	for x := byte(2); x < 4; x++ {
		for y := byte(2); y < 4; y++ {
			for z := byte(2); z < 4; z++ {
				m.Set(coord.Pn{X: x, Y: y, Z: z})
			}
		}
	}
	src := voxel.ModelFromMatrix(m)
	dst := voxel.NewModel(r)
	g, err := engine.NewGame(src, dst)
	require.NoError(s.T(), err)
	t := s.T()

	// Grow to 8 bots at the corners of the unit cube via three fission
	// rounds, one axis at a time.
	fissionAll(t, g, coord.PnDiff{DX: 1}, 19)
	fissionAll(t, g, coord.PnDiff{DY: 1}, 5)
	fissionAll(t, g, coord.PnDiff{DZ: 1}, 1)
	require.Len(t, g.Bots(), 8)

	// Phase Z1: the four z=1 bots climb to z=4, clearing the z=1 layer.
	for _, p := range []coord.Pn{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}} {
		moveBotAt(t, g, p, coord.PnDiff{DZ: 3})
	}
	// Phase Z2: the four z=0 bots step up into the now-empty z=1 layer.
	for _, p := range []coord.Pn{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}} {
		moveBotAt(t, g, p, coord.PnDiff{DZ: 1})
	}

	// Phase X: spread x from {0,1} to {2,3}, innermost bot first on each row.
	for _, p := range []coord.Pn{
		{X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
		{X: 1, Y: 0, Z: 4}, {X: 0, Y: 0, Z: 4}, {X: 1, Y: 1, Z: 4}, {X: 0, Y: 1, Z: 4},
	} {
		moveBotAt(t, g, p, coord.PnDiff{DX: 2})
	}

	// Phase Y: spread y from {0,1} to {2,3}, innermost bot first on each
	// column, landing exactly on the 8 target corners.
	for _, p := range []coord.Pn{
		{X: 2, Y: 1, Z: 1}, {X: 2, Y: 0, Z: 1}, {X: 3, Y: 1, Z: 1}, {X: 3, Y: 0, Z: 1},
		{X: 2, Y: 1, Z: 4}, {X: 2, Y: 0, Z: 4}, {X: 3, Y: 1, Z: 4}, {X: 3, Y: 0, Z: 4},
	} {
		moveBotAt(t, g, p, coord.PnDiff{DY: 2})
	}

	bots := g.Bots()
	require.Len(t, bots, 8)
	cmds := make(trace.Trace, len(bots))
	for i, b := range bots {
		// Each bot's near vector reaches its own adjacent cube corner; its
		// far vector spans the full 3-axis diagonal to the opposite
		// corner, so every bot's (lo, hi) box resolves to the same
		// (2,2,2)-(3,3,3) region and the 8 bots group as one GVoid box.
		across := coord.PnDiff{
			DX: int8(5 - 2*int(b.Pos.X)),
			DY: int8(5 - 2*int(b.Pos.Y)),
		}
		switch b.Pos.Z {
		case 1:
			across.DZ = 1
			cmds[i] = trace.GVoid(coord.PnDiff{DZ: 1}, across)
		case 4:
			across.DZ = -1
			cmds[i] = trace.GVoid(coord.PnDiff{DZ: -1}, across)
		default:
			t.Fatalf("bot %d landed off-plane at %v", b.Bid, b.Pos)
		}
	}

	before := g.Energy()
	require.NoError(t, g.Execute(cmds))
	require.Equal(t, before+stepBaseline(engine.Low, r, 8)-12*8, g.Energy())

	diff, err := g.DiffPoints()
	require.NoError(t, err)
	require.Empty(t, diff)
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}
