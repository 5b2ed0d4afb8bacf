// Command nanovox runs the solver over a fixed ICFPC problem range (FA/FD/FR)
// and writes one trace file per problem into the given traces directory.
//
// Usage:
//
//	nanovox <traces-dir>
//
// Model files are read from a sibling "problems" directory (derived from
// traces-dir's name by replacing "traces" with "problems", or literally
// "problems" next to it if the name carries no such substring) and reference
// energies, if present, from a sibling "bases" directory the same way. This
// is the one package in the module allowed to fmt.Println: every other
// package reports failure via an error return.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/nanovox/engine"
	"github.com/katalvlaran/nanovox/solver"
	"github.com/katalvlaran/nanovox/trace"
	"github.com/katalvlaran/nanovox/voxel"
)

// kind is one of the three ICFPC problem families, each with its own
// src/dst model convention and id range.
type kind struct {
	prefix string
	lo, hi int
	hasSrc bool
	hasDst bool
}

var kinds = []kind{
	{prefix: "FA", lo: 1, hi: 186, hasSrc: false, hasDst: true}, // assembly: build dst from empty
	{prefix: "FD", lo: 1, hi: 186, hasSrc: true, hasDst: false}, // disassembly: clear src to empty
	{prefix: "FR", lo: 1, hi: 115, hasSrc: true, hasDst: true},  // reassembly: src into dst
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: nanovox <traces-dir>")
		os.Exit(2)
	}
	tracesDir := os.Args[1]
	problemsDir := siblingDir(tracesDir, "problems")
	basesDir := siblingDir(tracesDir, "bases")

	if err := os.MkdirAll(tracesDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "nanovox:", err)
		os.Exit(1)
	}

	var total uint64
	failures := 0
	solved := 0

	for _, k := range kinds {
		for id := k.lo; id <= k.hi; id++ {
			name := fmt.Sprintf("%s%03d", k.prefix, id)
			energy, err := runProblem(problemsDir, tracesDir, name, k)
			if err != nil {
				if os.IsNotExist(err) {
					continue // problem not present in this pack; skip silently
				}
				fmt.Printf("%s: FAILED: %v\n", name, err)
				failures++
				continue
			}
			solved++
			total += energy
			if base, ok := readBase(basesDir, name); ok {
				fmt.Printf("%s: energy=%d base=%d ratio=%.4f\n", name, energy, base, float64(energy)/float64(base))
			} else {
				fmt.Printf("%s: energy=%d\n", name, energy)
			}
		}
	}

	fmt.Printf("solved=%d failed=%d total_energy=%d\n", solved, failures, total)
	if failures > 0 {
		os.Exit(1)
	}
}

// runProblem loads the named problem's models, solves it, writes the
// resulting trace into tracesDir, and returns the engine-reported energy of
// the replayed trace (the solver's own Game.Energy is authoritative, so the
// trace is replayed once more here purely to report a value independent of
// solver bookkeeping bugs).
func runProblem(problemsDir, tracesDir, name string, k kind) (uint64, error) {
	src, err := loadModel(problemsDir, name+"_src.mdl", k.hasSrc)
	if err != nil {
		return 0, err
	}
	dst, err := loadModel(problemsDir, name+"_tgt.mdl", k.hasDst)
	if err != nil {
		return 0, err
	}
	switch {
	case src == nil && dst == nil:
		return 0, os.ErrNotExist
	case src == nil:
		src = voxel.NewModel(dst.Resolution())
	case dst == nil:
		dst = voxel.NewModel(src.Resolution())
	}

	tr, err := solver.Solve(src, dst, solver.DefaultOptions())
	if err != nil {
		return 0, fmt.Errorf("%s: solve: %w", name, err)
	}

	if err := writeTrace(tracesDir, name, tr); err != nil {
		return 0, fmt.Errorf("%s: write trace: %w", name, err)
	}

	g, err := engine.NewGame(src, dst)
	if err != nil {
		return 0, fmt.Errorf("%s: replay: %w", name, err)
	}
	if err := g.Execute(tr); err != nil {
		return 0, fmt.Errorf("%s: replay rejected: %w", name, err)
	}
	if !g.IsComplete() {
		return 0, fmt.Errorf("%s: replay did not halt", name)
	}

	return g.Energy(), nil
}

// loadModel reads dir/filename. If the file is absent and required is
// false it returns (nil, nil); runProblem then substitutes an empty model
// of the other model's resolution.
func loadModel(dir, filename string, required bool) (*voxel.Model, error) {
	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	return voxel.ReadModel(f)
}

// writeTrace encodes tr to <tracesDir>/<name>.nbt.
func writeTrace(tracesDir, name string, tr trace.Trace) error {
	path := filepath.Join(tracesDir, name+".nbt")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return trace.Encode(f, tr)
}

// readBase reads <basesDir>/<name>.base, an ASCII decimal u64, if present.
func readBase(basesDir, name string) (uint64, bool) {
	path := filepath.Join(basesDir, name+".base")
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	var v uint64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(raw)), "%d", &v); err != nil {
		return 0, false
	}

	return v, true
}

// siblingDir derives a directory next to tracesDir: replace "traces" in its
// base name with want, or fall back to a literal want-named sibling.
func siblingDir(tracesDir, want string) string {
	parent := filepath.Dir(tracesDir)
	base := filepath.Base(tracesDir)
	if strings.Contains(base, "traces") {
		return filepath.Join(parent, strings.Replace(base, "traces", want, 1))
	}

	return filepath.Join(parent, want)
}
