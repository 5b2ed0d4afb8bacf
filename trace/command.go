package trace

import (
	"fmt"

	"github.com/katalvlaran/nanovox/coord"
)

// Op identifies a Command's variant.
type Op byte

// The twelve command variants the engine understands.
const (
	OpHalt Op = iota
	OpWait
	OpFlip
	OpSMove
	OpLMove
	OpFission
	OpFill
	OpVoid
	OpFusionP
	OpFusionS
	OpGFill
	OpGVoid
)

func (op Op) String() string {
	switch op {
	case OpHalt:
		return "Halt"
	case OpWait:
		return "Wait"
	case OpFlip:
		return "Flip"
	case OpSMove:
		return "SMove"
	case OpLMove:
		return "LMove"
	case OpFission:
		return "Fission"
	case OpFill:
		return "Fill"
	case OpVoid:
		return "Void"
	case OpFusionP:
		return "FusionP"
	case OpFusionS:
		return "FusionS"
	case OpGFill:
		return "GFill"
	case OpGVoid:
		return "GVoid"
	default:
		return "Unknown"
	}
}

// Command is a single nanobot instruction. Go has no payload-carrying enum
// variants, so Command is a tagged struct: D1/D2 hold whichever
// displacement(s) the Op needs (D1 alone for SMove/Fission/Fill/Void/
// FusionP/FusionS, D1=near+D2=far for GFill/GVoid, D1+D2 both short-linear
// for LMove), and M holds Fission's seed-split parameter.
type Command struct {
	Op Op
	D1 coord.PnDiff
	D2 coord.PnDiff
	M  byte
}

// Halt builds a Halt command.
func Halt() Command { return Command{Op: OpHalt} }

// Wait builds a Wait command.
func Wait() Command { return Command{Op: OpWait} }

// Flip builds a Flip command.
func Flip() Command { return Command{Op: OpFlip} }

// SMove builds an SMove(d) command.
func SMove(d coord.PnDiff) Command { return Command{Op: OpSMove, D1: d} }

// LMove builds an LMove(d1,d2) command.
func LMove(d1, d2 coord.PnDiff) Command { return Command{Op: OpLMove, D1: d1, D2: d2} }

// Fission builds a Fission(d,m) command.
func Fission(d coord.PnDiff, m byte) Command { return Command{Op: OpFission, D1: d, M: m} }

// Fill builds a Fill(d) command.
func Fill(d coord.PnDiff) Command { return Command{Op: OpFill, D1: d} }

// Void builds a Void(d) command.
func Void(d coord.PnDiff) Command { return Command{Op: OpVoid, D1: d} }

// FusionP builds a FusionP(d) command.
func FusionP(d coord.PnDiff) Command { return Command{Op: OpFusionP, D1: d} }

// FusionS builds a FusionS(d) command.
func FusionS(d coord.PnDiff) Command { return Command{Op: OpFusionS, D1: d} }

// GFill builds a GFill(near,far) command.
func GFill(near, far coord.PnDiff) Command { return Command{Op: OpGFill, D1: near, D2: far} }

// GVoid builds a GVoid(near,far) command.
func GVoid(near, far coord.PnDiff) Command { return Command{Op: OpGVoid, D1: near, D2: far} }

func invalidCoordErr(c coord.Pn, d coord.PnDiff) error {
	return fmt.Errorf("%w: %v + %v", ErrInvalidCoordinate, c, d)
}

// VolatilePoints returns the grid cells c's command touches this step, given
// the issuing bot's current position c and grid resolution r.
//
// Complexity: O(1) for point-like commands, O(volume) for SMove/LMove/
// GFill/GVoid.
func (c Command) VolatilePoints(pos coord.Pn, r byte) ([]coord.Pn, error) {
	switch c.Op {
	case OpHalt, OpWait, OpFlip:
		return []coord.Pn{pos}, nil
	case OpSMove:
		t, err := pos.Add(c.D1, r)
		if err != nil {
			return nil, invalidCoordErr(pos, c.D1)
		}

		return pos.Region(t), nil
	case OpLMove:
		mid, err := pos.Add(c.D1, r)
		if err != nil {
			return nil, invalidCoordErr(pos, c.D1)
		}
		t, err := mid.Add(c.D2, r)
		if err != nil {
			return nil, invalidCoordErr(mid, c.D2)
		}
		res := pos.Region(mid)
		res = append(res, mid.Region(t)...)

		return res, nil
	case OpFission, OpFill, OpVoid:
		t, err := pos.Add(c.D1, r)
		if err != nil {
			return nil, invalidCoordErr(pos, c.D1)
		}

		return []coord.Pn{pos, t}, nil
	case OpFusionP, OpFusionS:
		if _, err := pos.Add(c.D1, r); err != nil {
			return nil, invalidCoordErr(pos, c.D1)
		}

		return []coord.Pn{pos}, nil
	case OpGFill, OpGVoid:
		fp, err := pos.Add(c.D1, r)
		if err != nil {
			return nil, invalidCoordErr(pos, c.D1)
		}
		tp, err := fp.Add(c.D2, r)
		if err != nil {
			return nil, invalidCoordErr(fp, c.D2)
		}
		res := append([]coord.Pn{pos}, fp.Region(tp)...)

		return res, nil
	default:
		return nil, fmt.Errorf("%w: unknown op %v", ErrMalformed, c.Op)
	}
}
