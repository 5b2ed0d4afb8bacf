// Package engine implements the contest's synchronous multi-bot state
// machine: one Game owns a mutable State (matrix, harmonics, bot set,
// cumulative energy, step counter) and exposes a single mutator, Execute,
// that consumes exactly one Command per live bot, in ascending bid order.
//
// Execute never leaves State partially applied: a step is validated against
// a scratch copy of the state, and only committed once every per-bot
// legality check, interference check, group-consistency check, and
// post-step invariant holds. Any failure returns an error and the receiver
// is left exactly as it was before the call.
package engine
