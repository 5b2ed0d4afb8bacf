package coord

// PnDiff is a signed displacement between two Pn values.
type PnDiff struct {
	DX, DY, DZ int8
}

// Axis field values used by the short/long-linear wire encoding.
const (
	AxisX byte = 0b01
	AxisY byte = 0b10
	AxisZ byte = 0b11
)

const (
	longLinearSize  = 15
	shortLinearSize = 5
)

func abs8(v int8) byte {
	if v < 0 {
		return byte(-v)
	}

	return byte(v)
}

// MLen returns the Manhattan length |dx|+|dy|+|dz|.
func (d PnDiff) MLen() byte {
	return abs8(d.DX) + abs8(d.DY) + abs8(d.DZ)
}

// CLen returns the Chebyshev length max(|dx|,|dy|,|dz|).
func (d PnDiff) CLen() byte {
	m := abs8(d.DX)
	if v := abs8(d.DY); v > m {
		m = v
	}
	if v := abs8(d.DZ); v > m {
		m = v
	}

	return m
}

// IsNear reports whether d has Manhattan length 1 or 2 and Chebyshev
// length exactly 1 — the displacement class used by Fill/Void/Fusion/
// Fission/GFill/GVoid near-anchors.
func (d PnDiff) IsNear() bool {
	m := d.MLen()

	return m > 0 && m <= 2 && d.CLen() == 1
}

// IsFar reports whether d has Chebyshev length 1..=30 — the class used for
// the GFill/GVoid box extent.
func (d PnDiff) IsFar() bool {
	c := d.CLen()

	return c > 0 && c <= 30
}

// isLinear reports whether d touches exactly one axis with magnitude in
// [1, size].
func (d PnDiff) isLinear(size int8) bool {
	switch {
	case d.DX != 0:
		return d.DY == 0 && d.DZ == 0 && abs8(d.DX) <= byte(size)
	case d.DY != 0:
		return d.DX == 0 && d.DZ == 0 && abs8(d.DY) <= byte(size)
	case d.DZ != 0:
		return d.DX == 0 && d.DY == 0 && abs8(d.DZ) <= byte(size)
	default:
		return false
	}
}

// IsLongLinear reports whether d is single-axis with magnitude 1..=15 — the
// class used by SMove.
func (d PnDiff) IsLongLinear() bool {
	return d.isLinear(longLinearSize)
}

// IsShortLinear reports whether d is single-axis with magnitude 1..=5 — the
// class used by each leg of LMove. Every short-linear displacement is also
// long-linear; the converse holds only for magnitudes up to 5.
func (d PnDiff) IsShortLinear() bool {
	return d.isLinear(shortLinearSize)
}

// DecodeLinear decodes an axis field a (AxisX/AxisY/AxisZ) and a biased
// magnitude i into a single-axis displacement of the given size
// (5 for short-linear, 15 for long-linear).
func DecodeLinear(a, i byte, size int8) PnDiff {
	v := int8(i) - size
	switch a {
	case AxisX:
		return PnDiff{DX: v}
	case AxisY:
		return PnDiff{DY: v}
	default:
		return PnDiff{DZ: v}
	}
}

// DecodeShortLinear decodes a short-linear (size=5) displacement.
func DecodeShortLinear(a, i byte) PnDiff {
	return DecodeLinear(a, i, shortLinearSize)
}

// DecodeLongLinear decodes a long-linear (size=15) displacement.
func DecodeLongLinear(a, i byte) PnDiff {
	return DecodeLinear(a, i, longLinearSize)
}

// DecodeNear decodes a 5-bit near code nd = (dx+1)*9+(dy+1)*3+(dz+1).
func DecodeNear(nd byte) PnDiff {
	dz := int8(nd%3) - 1
	dy := int8((nd/3)%3) - 1
	dx := int8(nd/9) - 1

	return PnDiff{DX: dx, DY: dy, DZ: dz}
}

// DecodeFar decodes a far displacement from three bias-30 bytes.
func DecodeFar(a, b, c byte) PnDiff {
	return PnDiff{DX: int8(a) - 30, DY: int8(b) - 30, DZ: int8(c) - 30}
}

// encodeLinear encodes a single-axis displacement of the given size into
// (axis, biased magnitude). Returns false if d is not linear at that size.
func (d PnDiff) encodeLinear(size int8) (a, i byte, ok bool) {
	if !d.isLinear(size) {
		return 0, 0, false
	}
	switch {
	case d.DX != 0:
		return AxisX, byte(d.DX + size), true
	case d.DY != 0:
		return AxisY, byte(d.DY + size), true
	default:
		return AxisZ, byte(d.DZ + size), true
	}
}

// EncodeShortLinear encodes d as (axis, biased magnitude) for the
// size=5 short-linear class, or ErrNotShortLinear if d does not qualify.
func (d PnDiff) EncodeShortLinear() (a, i byte, err error) {
	a, i, ok := d.encodeLinear(shortLinearSize)
	if !ok {
		return 0, 0, ErrNotShortLinear
	}

	return a, i, nil
}

// EncodeLongLinear encodes d as (axis, biased magnitude) for the
// size=15 long-linear class, or ErrNotLongLinear if d does not qualify.
func (d PnDiff) EncodeLongLinear() (a, i byte, err error) {
	a, i, ok := d.encodeLinear(longLinearSize)
	if !ok {
		return 0, 0, ErrNotLongLinear
	}

	return a, i, nil
}

// EncodeNear encodes d as a 5-bit near code, or ErrNotNear if d is not near.
func (d PnDiff) EncodeNear() (byte, error) {
	if !d.IsNear() {
		return 0, ErrNotNear
	}

	return byte((d.DX+1)*9 + (d.DY+1)*3 + (d.DZ + 1)), nil
}

// EncodeFar encodes d as three bias-30 bytes, or ErrNotFar if d is not far.
func (d PnDiff) EncodeFar() (x, y, z byte, err error) {
	if !d.IsFar() {
		return 0, 0, 0, ErrNotFar
	}

	return byte(d.DX + 30), byte(d.DY + 30), byte(d.DZ + 30), nil
}

// FromI16 narrows a component-wise difference (as returned by Pn.Diff) into
// a PnDiff, truncating each component to int8.
func FromI16(dx, dy, dz int16) PnDiff {
	return PnDiff{DX: int8(dx), DY: int8(dy), DZ: int8(dz)}
}
