package solver

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/nanovox/coord"
	"github.com/katalvlaran/nanovox/engine"
	"github.com/katalvlaran/nanovox/trace"
	"github.com/katalvlaran/nanovox/voxel"
)

// Solve plans and executes a full deploy/work/gather/halt trace turning
// modelSrc into modelDst. It retries up to opts.Attempts times with an
// independently-derived RNG stream and per-attempt "prob" draw, keeping the
// lowest-energy trace among the first opts.MaxSuccesses successful attempts.
func Solve(modelSrc, modelDst *voxel.Model, opts Options) (trace.Trace, error) {
	if modelSrc == nil || modelDst == nil {
		return nil, ErrNilModel
	}
	if modelSrc.Resolution() != modelDst.Resolution() {
		return nil, ErrResolutionMismatch
	}

	base := rngFromSeed(opts.Seed)
	var best trace.Trace
	var bestEnergy uint64
	successes := 0

	for attempt := 0; attempt < opts.Attempts && successes < opts.MaxSuccesses; attempt++ {
		rng := deriveRNG(base, uint64(attempt))
		prob := opts.ProbMin
		if opts.ProbMax > opts.ProbMin {
			prob = opts.ProbMin + rng.Intn(opts.ProbMax-opts.ProbMin)
		}

		tr, energy, err := attemptSolve(modelSrc, modelDst, rng, prob, opts.MaxStepsPerAttempt)
		if err != nil {
			continue
		}
		successes++
		if best == nil || energy < bestEnergy {
			best, bestEnergy = tr, energy
		}
	}

	if best == nil {
		return nil, ErrStarvation
	}

	return best, nil
}

// task is one outstanding work item: make target agree with the
// destination model, either by filling or voiding it.
type task struct {
	target coord.Pn
	fill   bool
}

// planner drives one engine.Game through deploy/work/gather/halt, recording
// every command it issues. mirror tracks the live matrix exactly as the
// planner expects the engine to evolve it, so the planner can reason about
// occupancy without the engine exposing its matrix directly.
type planner struct {
	game      *engine.Game
	mirror    *voxel.Matrix
	dst       *voxel.Model
	r         byte
	rng       *rand.Rand
	prob      int
	steps     int
	maxSteps  int
	trace     trace.Trace
	high      bool                     // tracks harmonics; the planner is the only source of commands, so it knows
	moveQueue map[byte][]trace.Command // per-bot commands queued by moveSingle, drained one per step
}

// drain returns bid's next queued command if one is pending, otherwise calls
// compute and queues any commands beyond the first.
func (p *planner) drain(bid byte, compute func() []trace.Command) trace.Command {
	if q := p.moveQueue[bid]; len(q) > 0 {
		p.moveQueue[bid] = q[1:]

		return q[0]
	}
	cmds := compute()
	if len(cmds) == 0 {
		return trace.Wait()
	}
	if len(cmds) > 1 {
		p.moveQueue[bid] = cmds[1:]
	}

	return cmds[0]
}

func (p *planner) step(cmds trace.Trace) error {
	p.steps++
	if p.steps > p.maxSteps {
		return ErrStarvation
	}
	if err := p.game.Execute(cmds); err != nil {
		return err
	}
	p.trace = append(p.trace, cmds...)

	return nil
}

// attemptSolve runs one full plan/execute pass and returns the recorded
// trace and the engine's final reported energy.
func attemptSolve(src, dst *voxel.Model, rng *rand.Rand, prob, maxSteps int) (trace.Trace, uint64, error) {
	game, err := engine.NewGame(src, dst)
	if err != nil {
		return nil, 0, err
	}
	p := &planner{
		game:      game,
		mirror:    src.Matrix(),
		dst:       dst,
		r:         src.Resolution(),
		rng:       rng,
		prob:      prob,
		maxSteps:  maxSteps,
		moveQueue: make(map[byte][]trace.Command),
	}

	numBots := estimateBotCount(p)
	if err := deploy(p, numBots); err != nil {
		return nil, 0, err
	}
	boxes := enumerateRemoveBox(p.mirror, p.r)
	if err := removeBoxes(p, boxes); err != nil {
		return nil, 0, err
	}
	if err := work(p); err != nil {
		return nil, 0, err
	}
	if err := gather(p); err != nil {
		return nil, 0, err
	}
	if err := terminate(p); err != nil {
		return nil, 0, err
	}

	return p.trace, p.game.Energy(), nil
}

// estimateBotCount picks a deploy size proportional to the work remaining,
// bounded by the home-sequence capacity (2R-1 distinct points) and the
// 40-bot hard cap.
func estimateBotCount(p *planner) int {
	diff, err := p.dst.DiffPoints(voxel.ModelFromMatrix(p.mirror))
	n := 1
	if err == nil && len(diff) > 0 {
		n = len(diff)
		if n > 40 {
			n = 40
		}
	}
	if cap := 2*int(p.r) - 1; n > cap {
		n = cap
	}
	if n < 1 {
		n = 1
	}

	return n
}

// home returns the i'th deploy point: a diagonal climb from (0,0,0) to
// (R-1,R-1,0), then an extension back along the y=R-1 edge so homes stay
// distinct and each is a near step from the previous one.
func home(i int, r byte) coord.Pn {
	ri := int(r)
	if i < ri {
		return coord.Pn{X: byte(i), Y: byte(i)}
	}
	x := ri - 2 - (i - ri)

	return coord.Pn{X: byte(x), Y: byte(ri - 1)}
}

func diffBetween(from, to coord.Pn) coord.PnDiff {
	dx, dy, dz := to.Diff(from)

	return coord.FromI16(dx, dy, dz)
}

// deploy brings harmonics to High (so groundedness is not enforced while
// under construction) then iteratively Fissions a single growing chain of
// bots along the home sequence until numBots bots exist.
func deploy(p *planner, numBots int) error {
	if err := p.step(trace.Trace{trace.Flip()}); err != nil {
		return err
	}
	p.high = true

	for i := 1; i < numBots; i++ {
		bots := p.game.Bots()
		frontier := bots[len(bots)-1]
		d := diffBetween(frontier.Pos, home(i, p.r))
		m := len(frontier.Seeds) - 2
		if m < 0 {
			m = 0
		}

		cmds := make(trace.Trace, len(bots))
		for j, b := range bots {
			if b.Bid == frontier.Bid {
				cmds[j] = trace.Fission(d, byte(m))
			} else {
				cmds[j] = trace.Wait()
			}
		}
		if err := p.step(cmds); err != nil {
			return err
		}
	}

	return nil
}

// buildTaskQueues diffs the mirror against dst, sorts the resulting points
// by (y, x, z), and splits them evenly across the live bots (sorted by bid).
func buildTaskQueues(p *planner, bots []engine.Bot) map[byte][]task {
	queues := make(map[byte][]task, len(bots))
	for _, b := range bots {
		queues[b.Bid] = nil
	}
	if len(bots) == 0 {
		return queues
	}

	diff, err := p.dst.DiffPointsMatrix(p.mirror)
	if err != nil || len(diff) == 0 {
		return queues
	}
	sort.Slice(diff, func(i, j int) bool {
		a, b := diff[i], diff[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}

		return a.Z < b.Z
	})

	n := len(bots)
	for idx, pt := range diff {
		b := bots[idx%n]
		queues[b.Bid] = append(queues[b.Bid], task{target: pt, fill: p.dst.Get(pt)})
	}

	return queues
}

// work steps the system until every bot's task queue is empty, computing
// one single-axis sub-move per bot toward its current target each step.
func work(p *planner) error {
	bots := p.game.Bots()
	queues := buildTaskQueues(p, bots)

	for {
		bots = p.game.Bots()
		pending := false
		occupied := make(map[coord.Pn]bool, len(bots))
		for _, b := range bots {
			occupied[b.Pos] = true
		}

		cmds := make(trace.Trace, len(bots))
		for i, b := range bots {
			q := queues[b.Bid]
			if len(q) == 0 {
				cmds[i] = trace.Wait()
				continue
			}
			pending = true
			cmds[i] = nextWorkCommand(p, b, q[0], occupied)
		}
		if !pending {
			return nil
		}

		calcNextCommands(bots, cmds, p.r)
		if err := p.step(cmds); err != nil {
			return err
		}
		advanceQueues(p, bots, cmds, queues)
	}
}

// nextWorkCommand drains any command moveSingle queued on a previous call;
// otherwise it issues Fill/Void once the bot is adjacent to its target, or a
// move-toward-target command from the single-bot generator.
func nextWorkCommand(p *planner, b engine.Bot, t task, occupied map[coord.Pn]bool) trace.Command {
	return p.drain(b.Bid, func() []trace.Command {
		d := diffBetween(b.Pos, t.target)
		if d.IsNear() {
			if t.fill {
				return []trace.Command{trace.Fill(d)}
			}

			return []trace.Command{trace.Void(d)}
		}

		return moveSingle(b.Pos, t.target, occupied, p.mirror, p.dst, p.r, p.rng, p.prob)
	})
}

// advanceQueues updates the mirror and pops completed tasks after a step has
// been committed to the engine.
func advanceQueues(p *planner, bots []engine.Bot, cmds trace.Trace, queues map[byte][]task) {
	for i, b := range bots {
		c := cmds[i]
		q := queues[b.Bid]
		if len(q) == 0 {
			continue
		}
		switch c.Op {
		case trace.OpFill:
			tgt, err := b.Pos.Add(c.D1, p.r)
			if err == nil {
				p.mirror.Set(tgt)
				if tgt == q[0].target {
					queues[b.Bid] = q[1:]
				}
			}
		case trace.OpVoid:
			tgt, err := b.Pos.Add(c.D1, p.r)
			if err == nil {
				p.mirror.Unset(tgt)
				if tgt == q[0].target {
					queues[b.Bid] = q[1:]
				}
			}
		}
	}
}

// moveSingle is the single-bot move generator: build a candidate unit-
// direction set (progress directions, plus a random perturbation with
// probability 1/prob), filter
// out directions occupied by another bot, pick one at random, then either
// take a single step — prepending a Void if the hop is blocked by a full
// voxel, and appending a trailing Fill of the vacated cell if dst requires
// cur to stay full — or, when neither applies, extend the step into a
// multi-cell SMove while the next cell keeps reducing distance along that
// axis and is neither occupied nor full. dst may be nil (deploy/gather/box
// routing, where no cell has a must-stay-full obligation).
func moveSingle(cur, target coord.Pn, occupied map[coord.Pn]bool, mirror *voxel.Matrix, dst *voxel.Model, r byte, rng *rand.Rand, prob int) []trace.Command {
	units := [6]coord.PnDiff{{DX: 1}, {DX: -1}, {DY: 1}, {DY: -1}, {DZ: 1}, {DZ: -1}}
	dx, dy, dz := target.Diff(cur)

	progresses := func(d coord.PnDiff) bool {
		switch {
		case d.DX != 0:
			return dx != 0 && (d.DX > 0) == (dx > 0)
		case d.DY != 0:
			return dy != 0 && (d.DY > 0) == (dy > 0)
		default:
			return dz != 0 && (d.DZ > 0) == (dz > 0)
		}
	}

	candidates := make([]coord.PnDiff, 0, 6)
	for _, u := range units {
		np, err := cur.Add(u, r)
		if err != nil || occupied[np] {
			continue
		}
		if progresses(u) || (prob > 0 && rng.Intn(prob) == 0) {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	chosen := candidates[rng.Intn(len(candidates))]

	firstHop, _ := cur.Add(chosen, r)
	blocked := mirror.Get(firstHop)
	mustFull := dst != nil && dst.Get(cur)

	if blocked || mustFull {
		var cmds []trace.Command
		if blocked {
			cmds = append(cmds, trace.Void(chosen))
		}
		cmds = append(cmds, trace.SMove(chosen))
		if mustFull {
			inv := coord.PnDiff{DX: -chosen.DX, DY: -chosen.DY, DZ: -chosen.DZ}
			cmds = append(cmds, trace.Fill(inv))
		}

		return cmds
	}

	axis, sign := axisOf(chosen)
	tVal := axisValue(target, axis)
	prevDist := absInt(tVal - axisValue(cur, axis))
	count := int8(1)
	for count < 15 {
		nd := scaleAxis(axis, sign*(int(count)+1))
		np, err := cur.Add(nd, r)
		if err != nil {
			break
		}
		newDist := absInt(tVal - axisValue(np, axis))
		if newDist >= prevDist || occupied[np] || mirror.Get(np) {
			break
		}
		prevDist = newDist
		count++
	}

	return []trace.Command{trace.SMove(scaleAxis(axis, sign*int(count)))}
}

func axisOf(d coord.PnDiff) (axis byte, sign int) {
	switch {
	case d.DX != 0:
		return coord.AxisX, sign8(d.DX)
	case d.DY != 0:
		return coord.AxisY, sign8(d.DY)
	default:
		return coord.AxisZ, sign8(d.DZ)
	}
}

func sign8(v int8) int {
	if v < 0 {
		return -1
	}

	return 1
}

func scaleAxis(axis byte, mag int) coord.PnDiff {
	switch axis {
	case coord.AxisX:
		return coord.PnDiff{DX: int8(mag)}
	case coord.AxisY:
		return coord.PnDiff{DY: int8(mag)}
	default:
		return coord.PnDiff{DZ: int8(mag)}
	}
}

func axisValue(p coord.Pn, axis byte) int {
	switch axis {
	case coord.AxisX:
		return int(p.X)
	case coord.AxisY:
		return int(p.Y)
	default:
		return int(p.Z)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// calcNextCommands resolves cross-bot volatile-point conflicts by
// preempting every later-scheduled colliding command to Wait, in ascending
// bid order.
func calcNextCommands(bots []engine.Bot, cmds trace.Trace, r byte) {
	claimed := make(map[coord.Pn]bool, len(bots)*2)
	for i, b := range bots {
		pts, err := cmds[i].VolatilePoints(b.Pos, r)
		if err != nil {
			cmds[i] = trace.Wait()
			pts = []coord.Pn{b.Pos}
		}
		conflict := false
		for _, pt := range pts {
			if claimed[pt] {
				conflict = true

				break
			}
		}
		if conflict {
			cmds[i] = trace.Wait()
			pts = []coord.Pn{b.Pos}
		}
		for _, pt := range pts {
			claimed[pt] = true
		}
	}
}

// gather routes every live bot back to its deploy-time home, then collapses
// adjacent bots in descending-bid pairs via FusionP/FusionS until a single
// bot remains at the origin.
func gather(p *planner) error {
	bots := p.game.Bots()
	if len(bots) == 0 {
		return ErrStarvation
	}
	homes := make(map[byte]coord.Pn, len(bots))
	for _, b := range bots {
		homes[b.Bid] = home(int(b.Bid)-1, p.r)
	}

	for {
		bots = p.game.Bots()
		allHome := true
		occupied := make(map[coord.Pn]bool, len(bots))
		for _, b := range bots {
			occupied[b.Pos] = true
		}
		cmds := make(trace.Trace, len(bots))
		for i, b := range bots {
			h := homes[b.Bid]
			if b.Pos == h {
				cmds[i] = trace.Wait()
				continue
			}
			allHome = false
			cmds[i] = p.drain(b.Bid, func() []trace.Command {
				return moveSingle(b.Pos, h, occupied, p.mirror, nil, p.r, p.rng, p.prob)
			})
		}
		if allHome {
			break
		}
		calcNextCommands(bots, cmds, p.r)
		if err := p.step(cmds); err != nil {
			return err
		}
	}

	for {
		bots = p.game.Bots()
		if len(bots) <= 1 {
			return nil
		}
		sort.Slice(bots, func(i, j int) bool { return bots[i].Bid > bots[j].Bid })
		secondary, primary := bots[0], bots[1]
		d := diffBetween(primary.Pos, secondary.Pos)
		if !d.IsNear() {
			return ErrStarvation
		}

		live := p.game.Bots()
		cmds := make(trace.Trace, len(live))
		for i, b := range live {
			switch b.Bid {
			case primary.Bid:
				cmds[i] = trace.FusionP(d)
			case secondary.Bid:
				cmds[i] = trace.FusionS(coord.PnDiff{DX: -d.DX, DY: -d.DY, DZ: -d.DZ})
			default:
				cmds[i] = trace.Wait()
			}
		}
		if err := p.step(cmds); err != nil {
			return err
		}
	}
}

// terminate flips back to Low harmonics (if deploy flipped to High) then
// Halts; gather is expected to have already left a single bot at the origin.
func terminate(p *planner) error {
	bots := p.game.Bots()
	if len(bots) != 1 || bots[0].Pos != coord.Zero() {
		return ErrStarvation
	}
	if p.high {
		if err := p.step(trace.Trace{trace.Flip()}); err != nil {
			return err
		}
		p.high = false
	}

	return p.step(trace.Trace{trace.Halt()})
}
