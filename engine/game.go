package engine

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/nanovox/coord"
	"github.com/katalvlaran/nanovox/trace"
	"github.com/katalvlaran/nanovox/voxel"
)

// Game owns a single State and is the sole authority for whether a trace
// step is legal and what it costs. Construct with NewGame; advance with
// Execute; inspect with the read-only query methods.
type Game struct {
	state *State
	dst   *voxel.Model
	opts  options
}

// NewGame builds a Game whose initial State is derived from src (one bot
// at the origin holding all other bids as seeds) and whose Halt
// precondition is checked against dst.
func NewGame(src, dst *voxel.Model, opts ...GameOption) (*Game, error) {
	if src == nil || dst == nil {
		return nil, ErrNilModel
	}
	if src.Resolution() != dst.Resolution() {
		return nil, ErrResolutionMismatch
	}
	o := defaultOptions()
	for _, set := range opts {
		set(&o)
	}

	return &Game{state: newState(src), dst: dst, opts: o}, nil
}

// Bots returns a defensive copy of the live bot set, sorted by bid.
func (g *Game) Bots() []Bot {
	return cloneBots(g.state.bots)
}

// Energy returns the cumulative energy spent so far.
func (g *Game) Energy() uint64 {
	return g.state.energy
}

// Turn returns the number of steps successfully applied.
func (g *Game) Turn() uint64 {
	return g.state.turn
}

// IsComplete reports whether a Halt step has been applied.
func (g *Game) IsComplete() bool {
	return g.state.complete
}

// Resolution returns the grid side length R.
func (g *Game) Resolution() byte {
	return g.state.matrix.Resolution()
}

// DiffPoints returns every point whose full/empty status differs between
// the live matrix and the destination model.
func (g *Game) DiffPoints() ([]coord.Pn, error) {
	return g.dst.DiffPointsMatrix(g.state.matrix)
}

// Execute validates and applies one step: exactly one command per live
// bot, in ascending bid order. On any failure the error is returned and
// the receiver's State is left exactly as it was.
//
// Complexity: O(n + volume of any SMove/LMove/GFill/GVoid footprint).
func (g *Game) Execute(t trace.Trace) error {
	if g.state.complete {
		return ErrAlreadyComplete
	}
	bots := g.state.bots
	if len(t) != len(bots) {
		return fmt.Errorf("%w: have %d bots, trace has %d commands", ErrBotCountMismatch, len(bots), len(t))
	}
	r := g.state.matrix.Resolution()

	for i, bot := range bots {
		if err := legalize(bot, t[i], r, g.state.matrix); err != nil {
			return err
		}
	}
	if err := g.checkHaltPreconditions(bots, t); err != nil {
		return err
	}
	if err := checkInterference(bots, t, r); err != nil {
		return err
	}
	groups, err := buildGroups(bots, t, r)
	if err != nil {
		return err
	}

	scratch := g.state.clone()
	newBots, err := applyGroups(scratch, bots, t, groups, r)
	if err != nil {
		return err
	}
	scratch.energy += baselineEnergy(g.state.harmonics, r, len(bots))
	sort.Slice(newBots, func(i, j int) bool { return newBots[i].Bid < newBots[j].Bid })
	scratch.bots = newBots

	if !scratch.complete {
		if err := checkBotInvariants(scratch.bots, scratch.matrix); err != nil {
			return err
		}
		if g.opts.strictGrounding && scratch.harmonics == Low && !scratch.matrix.IsGrounded() {
			return ErrNotGrounded
		}
	}
	scratch.turn = g.state.turn + 1
	g.state = scratch

	return nil
}

// checkHaltPreconditions enforces the Halt rule: it is only legal when
// exactly one bot is live, that bot sits at the origin, harmonics is Low,
// and the live matrix already equals the destination model.
func (g *Game) checkHaltPreconditions(bots []Bot, t trace.Trace) error {
	for i, c := range t {
		if c.Op != trace.OpHalt {
			continue
		}
		if len(bots) != 1 || bots[i].Pos != coord.Zero() || g.state.harmonics != Low {
			return ErrHaltPrecondition
		}
		if !g.dst.IsComplete(g.state.matrix) {
			return ErrHaltPrecondition
		}
	}

	return nil
}
