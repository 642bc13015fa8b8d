// Package batch compiles many source files concurrently, one call per
// process, bounded by a weighted semaphore the way
// bufbuild/protocompile's Compiler bounds its own parallelism. It is a
// library helper, not the command-line driver (spec §1 places the driver
// out of scope): nothing here touches argv or locates files on disk.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/redgush/flycatcher/ast"
	"github.com/redgush/flycatcher/backend"
	"github.com/redgush/flycatcher/lower"
	"github.com/redgush/flycatcher/parser"
	"github.com/redgush/flycatcher/report"
	"github.com/redgush/flycatcher/source"
)

// Input is one file to compile: a path (for diagnostics and the handoff's
// Filename) plus its already-read source text. Reading the file is the
// driver's job (spec §1); batch only ever sees text already in memory.
type Input struct {
	Path string
	Text string
}

// Result pairs one Input's backend.Handoff with the Renderer-ready Report
// that produced it.
type Result struct {
	Handoff backend.Handoff
	Report  *report.Report
}

// Options configures Compile.
type Options struct {
	// MaxParallelism bounds how many files compile at once. Zero or
	// negative means min(runtime.NumCPU(), runtime.GOMAXPROCS(-1)), the
	// same default bufbuild/protocompile's Compiler.MaxParallelism uses.
	MaxParallelism int

	// Renderer is attached to every per-file Report so a caller can render
	// immediately from Result.Report without building its own Renderer.
	Renderer report.Renderer
}

// Compile runs the full front-end pipeline (lex, parse, lower) over every
// input concurrently, bounded by opts.MaxParallelism, and returns one
// Result per input in argument order — not completion order — so output is
// deterministic regardless of how the goroutines finish (spec §5: "diagnostics
// are emitted in the order they are discovered" extended here to mean "per
// file, in the order the files were given").
//
// Each file gets its own *report.Report; Compile never shares a Report
// across goroutines (spec §5: "the Diagnostic Reporter ... is owned
// exclusively by the active pipeline").
func Compile(ctx context.Context, inputs []Input, opts Options) ([]Result, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	par := opts.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}

	sem := semaphore.NewWeighted(int64(par))
	results := make([]Result, len(inputs))
	errs := make([]error, len(inputs))

	done := make(chan int, len(inputs))
	for i, in := range inputs {
		i, in := i, in
		if err := sem.Acquire(ctx, 1); err != nil {
			errs[i] = err
			done <- i
			continue
		}
		go func() {
			defer sem.Release(1)
			defer func() { done <- i }()
			results[i], errs[i] = compileOne(in, opts.Renderer)
		}()
	}

	for range inputs {
		select {
		case <-done:
		case <-ctx.Done():
			return results, ctx.Err()
		}
	}

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// compileOne runs one file through Lexer (implicitly, via Parser) -> Parser
// -> Frontend -> backend.Handoff, per spec §2's data flow diagram.
func compileOne(in Input, renderer report.Renderer) (Result, error) {
	file := source.NewFile(in.Path, in.Text)
	r := report.New(renderer)

	var items []ast.Meta
	func() {
		defer r.CatchICE(in.Path)
		p := parser.New(file, r)
		items = p.Parse()
	}()

	var handoff backend.Handoff
	if r.HasErrors() {
		handoff = backend.New(in.Path, in.Text, nil, nil, r)
		return Result{Handoff: handoff, Report: r}, nil
	}

	front := lower.New(file, r)
	lowered, _ := front.Lower(items)
	handoff = backend.New(in.Path, in.Text, lowered, front.Symbols(), r)

	return Result{Handoff: handoff, Report: r}, nil
}
