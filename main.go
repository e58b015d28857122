// linehl highlights selected lines of code in rendered slide HTML.
//
// It looks for source code containers (div.sourceCode)
// annotated with a data-code-line-numbers attribute like "1|3,6|8-11",
// and marks the lines selected by the attribute
// so that the presentation's stylesheet can emphasize them.
//
// See 'linehl -help' for usage.
package main

import (
	"errors"
	"io"
	"log"
	"os"

	"go.abhg.dev/linehl/internal/dom"
	"go.abhg.dev/linehl/internal/errdefer"
	"go.abhg.dev/linehl/internal/highlight"
)

func main() {
	cmd := mainCmd{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdin  io.Reader // == os.Stdin
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, errHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("linehl: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) (err error) {
	debugw, closeDebug, err := opts.Debug.Create(cmd.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeDebug())
	}()
	debugLog := log.New(debugw, "", 0)

	renderer := highlight.Renderer{
		Style:      highlight.StyleFor(opts.Style),
		UseClasses: opts.CSS != "",
	}
	if opts.CSS != "" {
		if err := writeCSS(opts.CSS, &renderer); err != nil {
			return err
		}
	}

	runner := Runner{
		Log:    debugLog,
		Stdin:  cmd.Stdin,
		Stdout: cmd.Stdout,
		Processor: &dom.Processor{
			Fragments: opts.Fragments,
			Layout:    highlight.FixedLayout{LineHeight: opts.LineHeight},
			Log:       debugLog,
		},
		Renderer: &renderer,
		Lang:     opts.Lang,
		Lines:    opts.Lines,
		Snippet:  opts.Snippet,
		Encoding: &opts.Encoding,
		InPlace:  opts.Write,
		OutDir:   opts.OutputDir,
	}
	return runner.Run(opts.Inputs)
}

func writeCSS(path string, r *highlight.Renderer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer errdefer.Close(&err, f)

	return r.WriteCSS(f)
}
