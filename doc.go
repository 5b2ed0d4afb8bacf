// Package nanovox is a nanobot voxel-assembly solver and simulator: it
// builds, tears down, or reassembles a 3D voxel model by directing up to 40
// cooperating nanobots through a trace of per-step commands, exactly as
// specified for the ICFPC 2018 contest.
//
// Under the hood, everything is organized under five subpackages:
//
//	coord/  — grid points and their signed displacements, near/far/linear
//	          classification, and the binary encodings trace commands use
//	voxel/  — the 3D bit-packed matrix and model, plus the *.mdl codec
//	trace/  — the twelve nanobot commands and the *.nbt binary codec
//	engine/ — the sole authority on step legality, grouping, and energy
//	solver/ — plans a deploy/work/gather/halt trace driving one engine.Game
//
// cmd/nanovox is the CLI driver: it walks the fixed FA/FD/FR problem ranges,
// loads models, calls solver.Solve, and writes one trace file per problem.
package nanovox
