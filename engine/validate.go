package engine

import (
	"fmt"

	"github.com/katalvlaran/nanovox/coord"
	"github.com/katalvlaran/nanovox/trace"
	"github.com/katalvlaran/nanovox/voxel"
)

// groupKind distinguishes the three shapes a group can take; it drives both
// the consistency checks and the application switch.
type groupKind int

const (
	groupSolo groupKind = iota
	groupFusion
	groupBox
)

// group is one key's worth of bots cooperating on a single effect this
// step: a solo command, a fusion pair, or an 8-member GFill/GVoid box.
type group struct {
	kind    groupKind
	members []int // indices into the step's bots/cmds slices
	lo, hi  coord.Pn
	op      trace.Op
}

func minAxisPn(a, b coord.Pn) coord.Pn {
	return coord.Pn{X: minByte(a.X, b.X), Y: minByte(a.Y, b.Y), Z: minByte(a.Z, b.Z)}
}

func maxAxisPn(a, b coord.Pn) coord.Pn {
	return coord.Pn{X: maxByte(a.X, b.X), Y: maxByte(a.Y, b.Y), Z: maxByte(a.Z, b.Z)}
}

func minByte(a, b byte) byte {
	if a < b {
		return a
	}

	return b
}

func maxByte(a, b byte) byte {
	if a > b {
		return a
	}

	return b
}

// legalize checks a single bot's command against its own preconditions:
// direction predicate, in-range target(s), swept-segment emptiness for
// SMove/LMove, and Fission's seed count. It does not check cross-bot
// conditions (interference, grouping) or Halt (checked separately against
// the whole step's bot set).
func legalize(bot Bot, c trace.Command, r byte, m *voxel.Matrix) error {
	switch c.Op {
	case trace.OpHalt, trace.OpWait, trace.OpFlip:
		return nil
	case trace.OpSMove:
		if !c.D1.IsLongLinear() {
			return fmt.Errorf("%w: bot %d SMove not long-linear", ErrIllegalCommand, bot.Bid)
		}
		t, err := bot.Pos.Add(c.D1, r)
		if err != nil {
			return fmt.Errorf("%w: bot %d SMove out of range: %v", ErrIllegalCommand, bot.Bid, err)
		}

		return requireEmptySwept(bot.Pos.Region(t), bot.Pos, m, bot.Bid)
	case trace.OpLMove:
		if !c.D1.IsShortLinear() || !c.D2.IsShortLinear() {
			return fmt.Errorf("%w: bot %d LMove leg not short-linear", ErrIllegalCommand, bot.Bid)
		}
		mid, err := bot.Pos.Add(c.D1, r)
		if err != nil {
			return fmt.Errorf("%w: bot %d LMove leg1 out of range: %v", ErrIllegalCommand, bot.Bid, err)
		}
		t, err := mid.Add(c.D2, r)
		if err != nil {
			return fmt.Errorf("%w: bot %d LMove leg2 out of range: %v", ErrIllegalCommand, bot.Bid, err)
		}
		if err := requireEmptySwept(bot.Pos.Region(mid), bot.Pos, m, bot.Bid); err != nil {
			return err
		}

		return requireEmptySwept(mid.Region(t), mid, m, bot.Bid)
	case trace.OpFission:
		if !c.D1.IsNear() {
			return fmt.Errorf("%w: bot %d Fission direction not near", ErrIllegalCommand, bot.Bid)
		}
		t, err := bot.Pos.Add(c.D1, r)
		if err != nil {
			return fmt.Errorf("%w: bot %d Fission target out of range: %v", ErrIllegalCommand, bot.Bid, err)
		}
		if m.Get(t) {
			return fmt.Errorf("%w: bot %d Fission target %v already full", ErrIllegalCommand, bot.Bid, t)
		}
		if int(c.M) >= len(bot.Seeds) {
			return fmt.Errorf("%w: bot %d has %d seeds, m=%d", ErrSeedCount, bot.Bid, len(bot.Seeds), c.M)
		}

		return nil
	case trace.OpFill, trace.OpVoid, trace.OpFusionP, trace.OpFusionS:
		if !c.D1.IsNear() {
			return fmt.Errorf("%w: bot %d direction not near", ErrIllegalCommand, bot.Bid)
		}
		if _, err := bot.Pos.Add(c.D1, r); err != nil {
			return fmt.Errorf("%w: bot %d target out of range: %v", ErrIllegalCommand, bot.Bid, err)
		}

		return nil
	case trace.OpGFill, trace.OpGVoid:
		if !c.D1.IsNear() {
			return fmt.Errorf("%w: bot %d near direction invalid", ErrIllegalCommand, bot.Bid)
		}
		if !c.D2.IsFar() {
			return fmt.Errorf("%w: bot %d far direction invalid", ErrIllegalCommand, bot.Bid)
		}
		fp, err := bot.Pos.Add(c.D1, r)
		if err != nil {
			return fmt.Errorf("%w: bot %d near target out of range: %v", ErrIllegalCommand, bot.Bid, err)
		}
		if _, err := fp.Add(c.D2, r); err != nil {
			return fmt.Errorf("%w: bot %d far target out of range: %v", ErrIllegalCommand, bot.Bid, err)
		}

		return nil
	default:
		return fmt.Errorf("%w: bot %d unknown op", ErrIllegalCommand, bot.Bid)
	}
}

func requireEmptySwept(pts []coord.Pn, origin coord.Pn, m *voxel.Matrix, bid byte) error {
	for _, p := range pts {
		if p == origin {
			continue
		}
		if m.Get(p) {
			return fmt.Errorf("%w: bot %d sweeps through full voxel %v", ErrIllegalCommand, bid, p)
		}
	}

	return nil
}

// volatileForInterference returns the footprint used for the duplicate-
// point check, applying the GFill/GVoid negative-far exception: a box
// whose far displacement has any negative axis is reduced to the bot's own
// cell, since its positively-oriented sibling already covers the region.
func volatileForInterference(bot Bot, c trace.Command, r byte) ([]coord.Pn, error) {
	if (c.Op == trace.OpGFill || c.Op == trace.OpGVoid) && (c.D2.DX < 0 || c.D2.DY < 0 || c.D2.DZ < 0) {
		return []coord.Pn{bot.Pos}, nil
	}

	return c.VolatilePoints(bot.Pos, r)
}

// checkInterference reports ErrInterference if any point is touched by more
// than one bot this step.
func checkInterference(bots []Bot, cmds []trace.Command, r byte) error {
	seen := make(map[coord.Pn]byte, len(bots)*2)
	for i, bot := range bots {
		pts, err := volatileForInterference(bot, cmds[i], r)
		if err != nil {
			return err
		}
		for _, p := range pts {
			if owner, ok := seen[p]; ok && owner != bot.Bid {
				return fmt.Errorf("%w: point %v touched by bots %d and %d", ErrInterference, p, owner, bot.Bid)
			}
			seen[p] = bot.Bid
		}
	}

	return nil
}

// buildGroups partitions the step's bots into solo/fusion/box groups by
// their effective position key, and validates fusion pairing and box-group
// consistency (exactly 8 members, same op, same box).
func buildGroups(bots []Bot, cmds []trace.Command, r byte) ([]group, error) {
	keys := make(map[coord.Pn][]int, len(bots))
	for i, bot := range bots {
		key, err := groupKey(bot, cmds[i], r)
		if err != nil {
			return nil, err
		}
		keys[key] = append(keys[key], i)
	}

	groups := make([]group, 0, len(keys))
	for key, members := range keys {
		g, err := resolveGroup(key, members, bots, cmds, r)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return groups, nil
}

func groupKey(bot Bot, c trace.Command, r byte) (coord.Pn, error) {
	switch c.Op {
	case trace.OpFusionS:
		return bot.Pos.Add(c.D1, r)
	case trace.OpGFill, trace.OpGVoid:
		fp, err := bot.Pos.Add(c.D1, r)
		if err != nil {
			return coord.Pn{}, err
		}
		tp, err := fp.Add(c.D2, r)
		if err != nil {
			return coord.Pn{}, err
		}

		return minAxisPn(fp, tp), nil
	default:
		return bot.Pos, nil
	}
}

func resolveGroup(key coord.Pn, members []int, bots []Bot, cmds []trace.Command, r byte) (group, error) {
	switch len(members) {
	case 1:
		i := members[0]
		if cmds[i].Op == trace.OpFusionP || cmds[i].Op == trace.OpFusionS {
			return group{}, fmt.Errorf("%w: unpaired fusion at bot %d", ErrGroupViolation, bots[i].Bid)
		}

		return group{kind: groupSolo, members: members, op: cmds[i].Op}, nil
	case 2:
		return resolveFusionGroup(key, members, bots, cmds, r)
	case 8:
		return resolveBoxGroup(key, members, bots, cmds, r)
	default:
		return group{}, fmt.Errorf("%w: group at %v has %d members", ErrGroupViolation, key, len(members))
	}
}

func resolveFusionGroup(key coord.Pn, members []int, bots []Bot, cmds []trace.Command, r byte) (group, error) {
	i, j := members[0], members[1]
	ci, cj := cmds[i], cmds[j]
	primary, secondary := i, j
	switch {
	case ci.Op == trace.OpFusionP && cj.Op == trace.OpFusionS:
		primary, secondary = i, j
	case ci.Op == trace.OpFusionS && cj.Op == trace.OpFusionP:
		primary, secondary = j, i
	default:
		return group{}, fmt.Errorf("%w: group at %v is not a FusionP/FusionS pair", ErrGroupViolation, key)
	}
	pd, sd := cmds[primary].D1, cmds[secondary].D1
	if pd.DX != -sd.DX || pd.DY != -sd.DY || pd.DZ != -sd.DZ {
		return group{}, fmt.Errorf("%w: fusion directions at %v do not oppose", ErrGroupViolation, key)
	}
	expected, err := bots[primary].Pos.Add(pd, r)
	if err != nil || bots[secondary].Pos != expected {
		return group{}, fmt.Errorf("%w: fusion match point mismatch at %v", ErrGroupViolation, key)
	}

	return group{kind: groupFusion, members: []int{primary, secondary}, op: trace.OpFusionP}, nil
}

func resolveBoxGroup(key coord.Pn, members []int, bots []Bot, cmds []trace.Command, r byte) (group, error) {
	op := cmds[members[0]].Op
	if op != trace.OpGFill && op != trace.OpGVoid {
		return group{}, fmt.Errorf("%w: 8-member group at %v is not GFill/GVoid", ErrGroupViolation, key)
	}

	var lo, hi coord.Pn
	corners := make(map[coord.Pn]bool, 8)
	for n, i := range members {
		c := cmds[i]
		if c.Op != op {
			return group{}, fmt.Errorf("%w: mixed ops in group at %v", ErrGroupViolation, key)
		}
		fp, err := bots[i].Pos.Add(c.D1, r)
		if err != nil {
			return group{}, err
		}
		tp, err := fp.Add(c.D2, r)
		if err != nil {
			return group{}, err
		}
		l, h := minAxisPn(fp, tp), maxAxisPn(fp, tp)
		if n == 0 {
			lo, hi = l, h
		} else if l != lo || h != hi {
			return group{}, fmt.Errorf("%w: inconsistent box at %v", ErrGroupViolation, key)
		}
		if corners[fp] {
			return group{}, fmt.Errorf("%w: duplicate corner %v at %v", ErrGroupViolation, fp, key)
		}
		corners[fp] = true
	}

	return group{kind: groupBox, members: members, lo: lo, hi: hi, op: op}, nil
}
