package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"braces.dev/errtrace"
	"go.abhg.dev/linehl/internal/dom"
	"go.abhg.dev/linehl/internal/errdefer"
	"go.abhg.dev/linehl/internal/flagvalue"
	"go.abhg.dev/linehl/internal/highlight"
)

// Processor rewrites HTML with highlighted lines.
type Processor interface {
	Rewrite(src []byte) ([]byte, *dom.Result, error)
	RewriteFragment(src []byte) ([]byte, *dom.Result, error)
}

var _ Processor = (*dom.Processor)(nil)

// Renderer renders raw source code into HTML.
type Renderer interface {
	Render(*highlight.Snippet) (string, error)
}

var _ Renderer = (*highlight.Renderer)(nil)

// Runner highlights lines in a list of input files.
//
// In terms of code organization,
// Runner's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Runner struct {
	Log       *log.Logger
	Stdin     io.Reader
	Stdout    io.Writer
	Processor Processor
	Renderer  Renderer
	Encoding  *flagvalue.Encoding

	// Lang is the language of raw source code inputs.
	// If empty, inputs are HTML.
	Lang string

	// Lines is the line selection for raw source code inputs.
	Lines string

	// Snippet reports whether HTML inputs are snippets
	// rather than full documents.
	Snippet bool

	// InPlace rewrites input files instead of writing to Stdout.
	InPlace bool

	// OutDir is the directory to write output files to.
	// If empty, output goes to Stdout.
	OutDir string
}

// Run processes each input in order.
// The input "-" refers to Stdin.
func (r *Runner) Run(inputs []string) error {
	if r.OutDir != "" {
		if err := os.MkdirAll(r.OutDir, 0o1755); err != nil {
			return errtrace.Wrap(err)
		}
	}

	for i, input := range inputs {
		if err := r.runFile(i, input); err != nil {
			return errtrace.Wrap(fmt.Errorf("%v: %w", displayName(input), err))
		}
	}
	return nil
}

func (r *Runner) runFile(idx int, input string) error {
	src, err := r.read(input)
	if err != nil {
		return err
	}

	snippet := r.Snippet
	if r.Lang != "" {
		rendered, err := r.Renderer.Render(&highlight.Snippet{
			ID:     fmt.Sprintf("cb%d", idx+1),
			Lang:   r.Lang,
			Lines:  r.Lines,
			Source: src,
		})
		if err != nil {
			return errtrace.Wrap(fmt.Errorf("render: %w", err))
		}
		src = []byte(rendered)
		snippet = true
	}

	rewrite := r.Processor.Rewrite
	if snippet {
		rewrite = r.Processor.RewriteFragment
	}
	out, res, err := rewrite(src)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("process: %w", err))
	}
	r.Log.Printf("%v: %d containers, %d highlighted, %d skipped",
		displayName(input), res.Containers, len(res.Blocks), res.Skipped)

	if r.InPlace && !res.Changed() {
		return nil
	}

	if out, err = r.Encoding.Encode(out); err != nil {
		return errtrace.Wrap(fmt.Errorf("encode: %w", err))
	}
	return r.write(input, out)
}

func (r *Runner) read(input string) (_ []byte, err error) {
	var src io.Reader = r.Stdin
	if input != "-" {
		var f *os.File
		f, err = os.Open(input)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		defer errdefer.Close(&err, f)
		src = f
	}

	return errtrace.Wrap2(io.ReadAll(r.Encoding.Decode(src)))
}

func (r *Runner) write(input string, out []byte) error {
	switch {
	case r.InPlace:
		return replaceFile(input, out)

	case r.OutDir != "":
		name := "stdin.html"
		if input != "-" {
			name = filepath.Base(input)
		}
		if r.Lang != "" && filepath.Ext(name) != ".html" {
			name += ".html"
		}
		path := filepath.Join(r.OutDir, name)
		r.Log.Printf("Writing %v", path)
		return errtrace.Wrap(os.WriteFile(path, out, 0o644))

	default:
		_, err := r.Stdout.Write(out)
		return errtrace.Wrap(err)
	}
}

// replaceFile atomically replaces the contents of the file at path,
// keeping its permissions.
func replaceFile(path string, body []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return errtrace.Wrap(err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.RemoveOnError(&err, f.Name())

	if _, err := f.Write(body); err != nil {
		_ = f.Close()
		return errtrace.Wrap(err)
	}
	if err := f.Chmod(info.Mode().Perm()); err != nil {
		_ = f.Close()
		return errtrace.Wrap(err)
	}
	if err := f.Close(); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(os.Rename(f.Name(), path))
}

func displayName(input string) string {
	if input == "-" {
		return "<stdin>"
	}
	return input
}
