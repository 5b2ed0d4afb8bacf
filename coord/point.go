package coord

// Pn is a grid point with coordinates in [0, R) for whatever resolution R
// the caller is working against. The origin is (0,0,0).
type Pn struct {
	X, Y, Z byte
}

// Zero returns the origin point (0,0,0).
func Zero() Pn {
	return Pn{}
}

// adjacentUnits are the six axis-aligned unit displacements, in the fixed
// order the groundedness BFS and Adjacents iterate them.
var adjacentUnits = [6]PnDiff{
	{DX: 1},
	{DX: -1},
	{DY: 1},
	{DY: -1},
	{DZ: 1},
	{DZ: -1},
}

// Add translates p by d within a cube of side r, returning ErrOutOfRange if
// any resulting coordinate leaves [0, r).
//
// Complexity: O(1).
func (p Pn) Add(d PnDiff, r byte) (Pn, error) {
	ri := int16(r)
	x := int16(p.X) + int16(d.DX)
	y := int16(p.Y) + int16(d.DY)
	z := int16(p.Z) + int16(d.DZ)
	if x < 0 || x >= ri || y < 0 || y >= ri || z < 0 || z >= ri {
		return Pn{}, ErrOutOfRange
	}

	return Pn{X: byte(x), Y: byte(y), Z: byte(z)}, nil
}

// Diff returns the signed component-wise difference p - rhs, widened to
// int16 because two in-range points can differ by more than an int8 can
// hold (callers that know the result is near/far narrow it themselves via
// FromI16).
//
// Complexity: O(1).
func (p Pn) Diff(rhs Pn) (dx, dy, dz int16) {
	dx = int16(p.X) - int16(rhs.X)
	dy = int16(p.Y) - int16(rhs.Y)
	dz = int16(p.Z) - int16(rhs.Z)

	return dx, dy, dz
}

// Region enumerates every point in the axis-aligned inclusive box between p
// and q, in ascending (x,y,z) order. The box contains between 1 and 8^3
// points.
//
// Complexity: O(volume of the box).
func (p Pn) Region(q Pn) []Pn {
	lx, rx := minMaxByte(p.X, q.X)
	ly, ry := minMaxByte(p.Y, q.Y)
	lz, rz := minMaxByte(p.Z, q.Z)

	res := make([]Pn, 0, int(rx-lx+1)*int(ry-ly+1)*int(rz-lz+1))
	for x := int(lx); x <= int(rx); x++ {
		for y := int(ly); y <= int(ry); y++ {
			for z := int(lz); z <= int(rz); z++ {
				res = append(res, Pn{X: byte(x), Y: byte(y), Z: byte(z)})
			}
		}
	}

	return res
}

// Adjacents returns the full-length 6-neighbors of p that remain within a
// cube of side r, used by the groundedness BFS.
//
// Complexity: O(1).
func (p Pn) Adjacents(r byte) []Pn {
	res := make([]Pn, 0, 6)
	for _, d := range adjacentUnits {
		if np, err := p.Add(d, r); err == nil {
			res = append(res, np)
		}
	}

	return res
}

func minMaxByte(a, b byte) (lo, hi byte) {
	if a < b {
		return a, b
	}

	return b, a
}
