package solver

import (
	"sort"

	"github.com/katalvlaran/nanovox/coord"
	"github.com/katalvlaran/nanovox/trace"
	"github.com/katalvlaran/nanovox/voxel"
)

// removeBox is one disjoint axis-aligned box, inclusive corners (lo, hi),
// queued for an 8-bot coordinated GVoid.
type removeBox struct {
	lo, hi coord.Pn
}

func (b removeBox) sideLens() (sx, sy, sz int) {
	return int(b.hi.X-b.lo.X) + 1, int(b.hi.Y-b.lo.Y) + 1, int(b.hi.Z-b.lo.Z) + 1
}

func (b removeBox) volume() int {
	sx, sy, sz := b.sideLens()

	return sx * sy * sz
}

// enumerateRemoveBox greedily pre-enumerates a maximal set of disjoint
// axis-aligned boxes fully solid in mirror, each side length > 3, each
// dimension <= 30, each containing more than 10 full voxels — the only
// disassembly-time bulk-clear the planner attempts; remaining solid cells
// fall through to the per-point work queue.
func enumerateRemoveBox(mirror *voxel.Matrix, r byte) []removeBox {
	consumed := make(map[coord.Pn]bool)
	var boxes []removeBox

	for x := byte(0); x < r; x++ {
		for y := byte(0); y < r; y++ {
			for z := byte(0); z < r; z++ {
				origin := coord.Pn{X: x, Y: y, Z: z}
				if consumed[origin] || !mirror.Get(origin) {
					continue
				}
				b, ok := growBox(mirror, consumed, origin, r)
				if !ok {
					continue
				}
				for _, q := range b.lo.Region(b.hi) {
					consumed[q] = true
				}
				boxes = append(boxes, b)
			}
		}
	}

	return boxes
}

func growBox(mirror *voxel.Matrix, consumed map[coord.Pn]bool, origin coord.Pn, r byte) (removeBox, bool) {
	const maxSide = 30
	full := func(p coord.Pn) bool { return mirror.Get(p) && !consumed[p] }

	maxX := origin.X
	for int(maxX-origin.X) < maxSide-1 && maxX+1 < r && full(coord.Pn{X: maxX + 1, Y: origin.Y, Z: origin.Z}) {
		maxX++
	}
	maxY := origin.Y
	for int(maxY-origin.Y) < maxSide-1 && maxY+1 < r && columnFull(mirror, consumed, origin.X, maxX, maxY+1, origin.Z) {
		maxY++
	}
	maxZ := origin.Z
	for int(maxZ-origin.Z) < maxSide-1 && maxZ+1 < r && sliceFull(mirror, consumed, origin.X, maxX, origin.Y, maxY, maxZ+1) {
		maxZ++
	}

	b := removeBox{lo: origin, hi: coord.Pn{X: maxX, Y: maxY, Z: maxZ}}
	sx, sy, sz := b.sideLens()

	return b, sx > 3 && sy > 3 && sz > 3 && b.volume() > 10
}

func columnFull(mirror *voxel.Matrix, consumed map[coord.Pn]bool, x0, x1, y, z byte) bool {
	for x := x0; x <= x1; x++ {
		p := coord.Pn{X: x, Y: y, Z: z}
		if !mirror.Get(p) || consumed[p] {
			return false
		}
	}

	return true
}

func sliceFull(mirror *voxel.Matrix, consumed map[coord.Pn]bool, x0, x1, y0, y1, z byte) bool {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			p := coord.Pn{X: x, Y: y, Z: z}
			if !mirror.Get(p) || consumed[p] {
				return false
			}
		}
	}

	return true
}

// cornerGVoid returns the (near, far) vectors a bot stationed adjacent to
// one corner of box must issue for the box's 8-bot group: near reaches the
// box corner itself, far spans the full 3-axis diagonal to the opposite
// corner, so every one of the 8 bots' derived (lo, hi) resolves to box
// itself and the engine groups them as a single GVoid.
func cornerGVoid(box removeBox, corner coord.Pn, approachFromBelow bool) (near, far coord.PnDiff) {
	opposite := coord.Pn{
		X: box.lo.X + box.hi.X - corner.X,
		Y: box.lo.Y + box.hi.Y - corner.Y,
		Z: box.lo.Z + box.hi.Z - corner.Z,
	}
	far = diffBetween(corner, opposite)
	if approachFromBelow {
		near = coord.PnDiff{DZ: 1}
	} else {
		near = coord.PnDiff{DZ: -1}
	}

	return near, far
}

// boxCorners returns the box's 8 corners paired with the bot position
// adjacent to each one, one unit outside the box along z.
func boxCorners(box removeBox) ([8]coord.Pn, [8]coord.Pn, [8]bool) {
	var corners, approach [8]coord.Pn
	var below [8]bool
	idx := 0
	for _, x := range [2]byte{box.lo.X, box.hi.X} {
		for _, y := range [2]byte{box.lo.Y, box.hi.Y} {
			for _, z := range [2]byte{box.lo.Z, box.hi.Z} {
				corners[idx] = coord.Pn{X: x, Y: y, Z: z}
				if z == box.lo.Z {
					approach[idx] = coord.Pn{X: x, Y: y, Z: z - 1}
					below[idx] = true
				} else {
					approach[idx] = coord.Pn{X: x, Y: y, Z: z + 1}
					below[idx] = false
				}
				idx++
			}
		}
	}

	return corners, approach, below
}

// removeBoxes routes 8 idle bots to each box's adjacent-corner positions and
// issues the coordinated GVoid once all 8 have arrived, for every box
// enumerateRemoveBox found. Boxes that cannot be staffed (fewer than 8 live
// bots) are left for the per-point work queue.
func removeBoxes(p *planner, boxes []removeBox) error {
	for _, box := range boxes {
		if err := removeOneBox(p, box); err != nil {
			return err
		}
	}

	return nil
}

func removeOneBox(p *planner, box removeBox) error {
	bots := p.game.Bots()
	if len(bots) < 8 {
		return nil
	}
	sort.Slice(bots, func(i, j int) bool { return bots[i].Bid < bots[j].Bid })
	crew := bots[:8]

	corners, approach, below := boxCorners(box)
	targets := make(map[byte]coord.Pn, 8)
	for i, b := range crew {
		targets[b.Bid] = approach[i]
	}

	for {
		bots = p.game.Bots()
		allArrived := true
		occupied := make(map[coord.Pn]bool, len(bots))
		for _, b := range bots {
			occupied[b.Pos] = true
		}
		cmds := make(trace.Trace, len(bots))
		for i, b := range bots {
			h, has := targets[b.Bid]
			if !has {
				cmds[i] = trace.Wait()
				continue
			}
			if b.Pos == h {
				cmds[i] = trace.Wait()
				continue
			}
			allArrived = false
			cmds[i] = p.drain(b.Bid, func() []trace.Command {
				return moveSingle(b.Pos, h, occupied, p.mirror, nil, p.r, p.rng, p.prob)
			})
		}
		if allArrived {
			break
		}
		calcNextCommands(bots, cmds, p.r)
		if err := p.step(cmds); err != nil {
			return err
		}
	}

	bots = p.game.Bots()
	cmds := make(trace.Trace, len(bots))
	for i, b := range bots {
		_, ok := targets[b.Bid]
		if !ok {
			cmds[i] = trace.Wait()
			continue
		}
		var corner coord.Pn
		var isBelow bool
		for k, a := range approach {
			if a == b.Pos {
				corner, isBelow = corners[k], below[k]

				break
			}
		}
		near, far := cornerGVoid(box, corner, isBelow)
		cmds[i] = trace.GVoid(near, far)
	}
	if err := p.step(cmds); err != nil {
		return err
	}
	for _, p2 := range box.lo.Region(box.hi) {
		voidFromMirror(p, p2)
	}

	return nil
}

func voidFromMirror(p *planner, pt coord.Pn) {
	if p.mirror.Get(pt) {
		p.mirror.Unset(pt)
	}
}
