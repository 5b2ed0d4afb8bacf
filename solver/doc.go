// Package solver plans a nanobot trace that turns a source model into a
// destination model, driving an engine.Game step by step rather than
// precomputing one: the engine remains the sole authority on legality and
// energy.
//
// Solve runs a bounded multi-restart search (see Options): each attempt
// deploys bots across the work region, routes them through deploy/work/
// gather/halt phases, and is scored by the engine's own reported energy.
// The lowest-energy successful attempt, among up to MaxSuccesses, wins.
package solver
