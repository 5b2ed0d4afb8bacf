package engine

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/nanovox/coord"
	"github.com/katalvlaran/nanovox/trace"
	"github.com/katalvlaran/nanovox/voxel"
)

// baselineEnergy computes the per-step overhead k*r^3 + 20*n, k=3 under Low
// harmonics or 30 under High, n the bot count issuing commands this step.
func baselineEnergy(h Harmonics, r byte, n int) uint64 {
	k := uint64(3)
	if h == High {
		k = 30
	}
	rr := uint64(r)

	return k*rr*rr*rr + 20*uint64(n)
}

// applyGroups applies each group's effect to scratch and returns the
// resulting bot list (unsorted). scratch.matrix/energy/harmonics/complete
// are mutated in place; scratch.bots is not touched here (the caller
// replaces it with the returned list).
func applyGroups(scratch *State, bots []Bot, cmds []trace.Command, groups []group, r byte) ([]Bot, error) {
	newBots := make([]Bot, 0, len(bots))
	for _, grp := range groups {
		switch grp.kind {
		case groupSolo:
			nb, err := applySolo(scratch, bots[grp.members[0]], cmds[grp.members[0]], r)
			if err != nil {
				return nil, err
			}
			newBots = append(newBots, nb...)
		case groupFusion:
			nb, err := applyFusion(scratch, bots[grp.members[0]], bots[grp.members[1]])
			if err != nil {
				return nil, err
			}
			newBots = append(newBots, nb)
		case groupBox:
			applyBox(scratch, grp)
			for _, i := range grp.members {
				newBots = append(newBots, bots[i])
			}
		}
	}

	return newBots, nil
}

func applySolo(scratch *State, bot Bot, c trace.Command, r byte) ([]Bot, error) {
	switch c.Op {
	case trace.OpHalt:
		scratch.complete = true

		return nil, nil
	case trace.OpWait:
		return []Bot{bot}, nil
	case trace.OpFlip:
		if scratch.harmonics == Low {
			scratch.harmonics = High
		} else {
			scratch.harmonics = Low
		}

		return []Bot{bot}, nil
	case trace.OpSMove:
		t, err := bot.Pos.Add(c.D1, r)
		if err != nil {
			return nil, err
		}
		scratch.energy += uint64(2 * c.D1.MLen())

		return []Bot{{Bid: bot.Bid, Pos: t, Seeds: bot.Seeds}}, nil
	case trace.OpLMove:
		mid, err := bot.Pos.Add(c.D1, r)
		if err != nil {
			return nil, err
		}
		t, err := mid.Add(c.D2, r)
		if err != nil {
			return nil, err
		}
		scratch.energy += uint64(2 * (int(c.D1.MLen()) + 2 + int(c.D2.MLen())))

		return []Bot{{Bid: bot.Bid, Pos: t, Seeds: bot.Seeds}}, nil
	case trace.OpFill:
		t, err := bot.Pos.Add(c.D1, r)
		if err != nil {
			return nil, err
		}
		if !scratch.matrix.Get(t) {
			scratch.matrix.Set(t)
			scratch.energy += 12
		} else {
			scratch.energy += 6
		}

		return []Bot{bot}, nil
	case trace.OpVoid:
		t, err := bot.Pos.Add(c.D1, r)
		if err != nil {
			return nil, err
		}
		if scratch.matrix.Get(t) {
			scratch.matrix.Unset(t)
			scratch.energy -= 12
		} else {
			scratch.energy += 3
		}

		return []Bot{bot}, nil
	case trace.OpFission:
		t, err := bot.Pos.Add(c.D1, r)
		if err != nil {
			return nil, err
		}
		m := int(c.M)
		childBid := bot.Seeds[0]
		// Child takes seeds[1..=m+1], parent keeps the rest; clamp to
		// len(Seeds) so an m near the legalized bound never slices out of
		// range. When m+2 exceeds len(Seeds) the parent legitimately retains
		// no seeds at all.
		upper := m + 2
		if upper > len(bot.Seeds) {
			upper = len(bot.Seeds)
		}
		childSeeds := append([]byte(nil), bot.Seeds[1:upper]...)
		parentSeeds := append([]byte(nil), bot.Seeds[upper:]...)
		scratch.energy += 24

		return []Bot{
			{Bid: bot.Bid, Pos: bot.Pos, Seeds: parentSeeds},
			{Bid: childBid, Pos: t, Seeds: childSeeds},
		}, nil
	default:
		return nil, fmt.Errorf("%w: bot %d unexpected solo op %v", ErrIllegalCommand, bot.Bid, c.Op)
	}
}

func applyFusion(scratch *State, primary, secondary Bot) (Bot, error) {
	seeds := make([]byte, 0, len(primary.Seeds)+len(secondary.Seeds)+1)
	seeds = append(seeds, primary.Seeds...)
	seeds = append(seeds, secondary.Bid)
	seeds = append(seeds, secondary.Seeds...)
	sort.Slice(seeds, func(i, j int) bool { return seeds[i] < seeds[j] })
	scratch.energy -= 24

	return Bot{Bid: primary.Bid, Pos: primary.Pos, Seeds: seeds}, nil
}

func applyBox(scratch *State, grp group) {
	pts := grp.lo.Region(grp.hi)
	for _, p := range pts {
		switch grp.op {
		case trace.OpGFill:
			if !scratch.matrix.Get(p) {
				scratch.matrix.Set(p)
				scratch.energy += 12
			} else {
				scratch.energy += 6
			}
		case trace.OpGVoid:
			if scratch.matrix.Get(p) {
				scratch.matrix.Unset(p)
				scratch.energy -= 12
			} else {
				scratch.energy += 3
			}
		}
	}
}

// checkBotInvariants re-validates the bot-set invariants that must hold
// after every step: distinct bids, distinct positions, no bot on a full
// voxel, and {bids} ∪ {seeds} partitions 1..=maxBots exactly once each.
func checkBotInvariants(bots []Bot, matrix *voxel.Matrix) error {
	seen := make(map[byte]bool, maxBots)
	positions := make(map[coord.Pn]bool, len(bots))
	for _, b := range bots {
		if seen[b.Bid] {
			return fmt.Errorf("%w: duplicate bid %d", ErrInvariantViolation, b.Bid)
		}
		seen[b.Bid] = true
		if positions[b.Pos] {
			return fmt.Errorf("%w: duplicate position %v", ErrInvariantViolation, b.Pos)
		}
		positions[b.Pos] = true
		if matrix.Get(b.Pos) {
			return fmt.Errorf("%w: bot %d stands on a full voxel", ErrInvariantViolation, b.Bid)
		}
		for _, s := range b.Seeds {
			if seen[s] {
				return fmt.Errorf("%w: duplicate bid/seed %d", ErrInvariantViolation, s)
			}
			seen[s] = true
		}
	}
	for id := byte(1); id <= maxBots; id++ {
		if !seen[id] {
			return fmt.Errorf("%w: id %d missing from bids/seeds partition", ErrInvariantViolation, id)
		}
	}

	return nil
}
