package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/nanovox/coord"
	"github.com/katalvlaran/nanovox/engine"
	"github.com/katalvlaran/nanovox/solver"
	"github.com/katalvlaran/nanovox/trace"
	"github.com/katalvlaran/nanovox/voxel"
)

// SolverSuite drives Solve end to end and replays the returned trace
// through a fresh engine.Game, one command at a time, to confirm it
// actually reaches a Halt-terminated, completed state.
type SolverSuite struct {
	suite.Suite
}

// replayTrace feeds tr through a fresh engine.Game built from src/dst,
// asserting every step is accepted, and returns the resulting game.
func (s *SolverSuite) replayTrace(src, dst *voxel.Model, tr trace.Trace) *engine.Game {
	t := s.T()
	g, err := engine.NewGame(src, dst)
	require.NoError(t, err)
	for i, cmd := range tr {
		require.NoErrorf(t, g.Execute(trace.Trace{cmd}), "step %d (%v) rejected", i, cmd.Op)
	}

	return g
}

// TestSolveEmptyToEmpty: no work at all, the solver should still reach a
// clean deploy/gather/halt cycle with a single bot.
func (s *SolverSuite) TestSolveEmptyToEmpty() {
	src := voxel.NewModel(3)
	dst := voxel.NewModel(3)
	opts := solver.DefaultOptions()
	opts.Attempts = 3
	opts.MaxStepsPerAttempt = 1000

	tr, err := solver.Solve(src, dst, opts)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), tr)

	g := s.replayTrace(src, dst, tr)
	require.True(s.T(), g.IsComplete())
}

// TestSolveSingleFill: one target voxel, adjacent to the single deployed
// bot's start position, should be reachable without any bot movement.
func (s *SolverSuite) TestSolveSingleFill() {
	src := voxel.NewModel(3)
	m := voxel.NewMatrix(3)
	m.Set(coord.Pn{X: 1, Y: 0, Z: 1})
	dst := voxel.ModelFromMatrix(m)

	opts := solver.DefaultOptions()
	opts.Attempts = 3
	opts.MaxStepsPerAttempt = 1000

	tr, err := solver.Solve(src, dst, opts)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), tr)

	g := s.replayTrace(src, dst, tr)
	require.True(s.T(), g.IsComplete())
	diff, err := g.DiffPoints()
	require.NoError(s.T(), err)
	require.Empty(s.T(), diff)
}

// TestSolveNilModel: Solve rejects nil source/destination models up front.
func (s *SolverSuite) TestSolveNilModel() {
	dst := voxel.NewModel(3)
	_, err := solver.Solve(nil, dst, solver.DefaultOptions())
	require.ErrorIs(s.T(), err, solver.ErrNilModel)
}

// TestSolveResolutionMismatch: Solve rejects src/dst with different R.
func (s *SolverSuite) TestSolveResolutionMismatch() {
	src := voxel.NewModel(3)
	dst := voxel.NewModel(5)
	_, err := solver.Solve(src, dst, solver.DefaultOptions())
	require.ErrorIs(s.T(), err, solver.ErrResolutionMismatch)
}

func TestSolverSuite(t *testing.T) {
	suite.Run(t, new(SolverSuite))
}
