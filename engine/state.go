package engine

import (
	"github.com/katalvlaran/nanovox/coord"
	"github.com/katalvlaran/nanovox/voxel"
)

// maxBots is the largest bid the contest allows; bids and seeds always
// partition exactly {1, ..., maxBots}.
const maxBots = 40

// State is the engine's mutable record: the live matrix, harmonics, bot
// set, cumulative energy, and step counter. Only Game mutates it, via
// Execute; everything else in this package reads it.
type State struct {
	matrix    *voxel.Matrix
	harmonics Harmonics
	bots      []Bot
	energy    uint64
	turn      uint64
	complete  bool
}

func newState(src *voxel.Model) *State {
	return &State{
		matrix:    src.Matrix(),
		harmonics: Low,
		bots: []Bot{{
			Bid:   1,
			Pos:   coord.Zero(),
			Seeds: initialSeeds(),
		}},
		energy: 0,
		turn:   0,
	}
}

func initialSeeds() []byte {
	seeds := make([]byte, 0, maxBots-1)
	for b := byte(2); b <= maxBots; b++ {
		seeds = append(seeds, b)
	}

	return seeds
}

func (s *State) clone() *State {
	return &State{
		matrix:    s.matrix.Clone(),
		harmonics: s.harmonics,
		bots:      cloneBots(s.bots),
		energy:    s.energy,
		turn:      s.turn,
		complete:  s.complete,
	}
}
