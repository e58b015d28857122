package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3"
	"go.abhg.dev/linehl/internal/flagvalue"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// params holds all arguments for linehl.
type params struct {
	version bool
	help    Help
	config  string

	Debug flagvalue.FileSwitch

	// Output:
	Write     bool
	OutputDir string

	// Processing:
	Fragments  bool
	Snippet    bool
	Encoding   flagvalue.Encoding
	LineHeight float64

	// Source code input:
	Lang  string
	Lines string
	Style string
	CSS   string

	Inputs []string
}

// cliParser parses the command line arguments for linehl.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("linehl", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		DefaultHelp.Write(cmd.Stderr)
	}

	p := params{LineHeight: 1}

	// Output:
	flag.BoolVar(&p.Write, "w", false, "")
	flag.StringVar(&p.OutputDir, "out", "", "")

	// Processing:
	flag.BoolVar(&p.Fragments, "fragments", false, "")
	flag.BoolVar(&p.Snippet, "snippet", false, "")
	flag.Var(&p.Encoding, "encoding", "")
	flag.Float64Var(&p.LineHeight, "line-height", 1, "")

	// Source code input:
	flag.StringVar(&p.Lang, "lang", "", "")
	flag.StringVar(&p.Lines, "lines", "", "")
	flag.StringVar(&p.Style, "style", "", "")
	flag.StringVar(&p.CSS, "css", "", "")

	// Program-level:
	flag.StringVar(&p.config, "config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	err := ff.Parse(flag, args,
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		// The flag package reports its own errors,
		// but ff doesn't for configuration files.
		if p.config != "" && !errors.Is(err, errHelp) {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, err
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "linehl", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil {
			if _, ok := _helpTopics[h]; ok {
				p.help = h
			}
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	p.Inputs = args
	if len(p.Inputs) == 0 {
		p.Inputs = []string{"-"}
	}

	if err := p.validate(); err != nil {
		fmt.Fprintln(cmd.Stderr, err)
		UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}

func (p *params) validate() error {
	if p.Write && p.OutputDir != "" {
		return errors.New("-w and -out cannot be used together")
	}
	if p.Write {
		for _, in := range p.Inputs {
			if in == "-" {
				return errors.New("-w cannot be used with standard input")
			}
		}
		if p.Lang != "" {
			return errors.New("-w cannot be used with -lang: it would overwrite the source code")
		}
	}
	if p.Lines != "" && p.Lang == "" {
		return errors.New("-lines requires -lang")
	}
	if p.LineHeight <= 0 {
		return fmt.Errorf("-line-height must be positive, got %v", p.LineHeight)
	}
	return nil
}
