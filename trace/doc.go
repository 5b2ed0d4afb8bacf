// Package trace implements the contest's Command set and its bit-packed,
// little-endian streaming binary codec (*.nbt files), plus the per-command
// volatile-footprint query the engine uses for interference checking.
//
// # Wire format
//
// Each command is one leading byte whose low bits select the variant,
// optionally followed by 1-3 more bytes:
//
//	11111111                  Halt
//	11111110                  Wait
//	11111101                  Flip
//	00aa0100, 000iiiii        SMove(long-linear)
//	ccaa1100, kkkkllll        LMove(short-linear, short-linear)
//	nnnnn111                  FusionP(near)
//	nnnnn110                  FusionS(near)
//	nnnnn101, mmmmmmmm        Fission(near, m)
//	nnnnn011                  Fill(near)
//	nnnnn010                  Void(near)
//	nnnnn001, x y z           GFill(near, far)
//	nnnnn000, x y z           GVoid(near, far)
//
// Axis field aa: 01=x, 10=y, 11=z. A Trace is the concatenation of these,
// terminated by end of stream (which must land exactly after a Halt).
package trace
