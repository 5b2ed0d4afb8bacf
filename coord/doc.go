// Package coord implements the point/displacement algebra shared by the
// voxel, trace, engine, and solver packages: grid points Pn, signed
// displacements PnDiff, and the near/far/short-linear/long-linear
// predicates and codecs the wire format is built on.
package coord
