package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akrennmair/jack/parser"
	"github.com/akrennmair/jack/render"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "jackparse: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "jackparse",
		Usage:                  "Parse Jack source files and print their parse trees",
		ArgsUsage:              "file.jack|directory ...",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   string(render.FormatXML),
				Usage:   "Output format: xml, yaml or dump",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write one file per class into this directory instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "tokens",
				Aliases: []string{"t"},
				Usage:   "Only tokenize and print the token stream",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Trace the parser rules on stderr",
			},
		},
		Action: run,
	}
}

type options struct {
	format     render.Format
	outputDir  string
	tokensOnly bool
	trace      io.Writer
}

func run(c *cli.Context) error {
	format, err := render.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	opts := options{
		format:     format,
		outputDir:  c.String("output"),
		tokensOnly: c.Bool("tokens"),
	}
	if c.Bool("verbose") {
		opts.trace = os.Stderr
	}

	if c.NArg() == 0 {
		return errors.New("no input files; see jackparse --help")
	}

	files, err := collectFiles(c.Args().Slice())
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := processFile(os.Stdout, file, opts); err != nil {
			return err
		}
	}

	return nil
}

// collectFiles expands directories into the .jack files they contain.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", arg)
		}

		if !fi.IsDir() {
			files = append(files, arg)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(arg, "*.jack"))
		if err != nil {
			return nil, errors.Wrapf(err, "listing %s", arg)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no .jack files in directory %s", arg)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}

	return files, nil
}

func processFile(stdout io.Writer, file string, opts options) error {
	source, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "reading %s", file)
	}

	tokens, err := parser.Tokenize(file, string(source))
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	if opts.tokensOnly {
		writeTokens(&buf, tokens)
	} else {
		p := parser.NewParser(file, tokens)
		if opts.trace != nil {
			p.SetLogOutput(opts.trace)
		}

		class, err := p.Parse()
		if err != nil {
			return err
		}

		if err := render.Write(&buf, opts.format, class); err != nil {
			return errors.Wrapf(err, "rendering %s", file)
		}
	}

	if opts.outputDir == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	outputFile := filepath.Join(opts.outputDir, outputName(file, opts))
	if err := os.WriteFile(outputFile, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", outputFile)
	}
	color.New(color.FgGreen).Fprintf(os.Stderr, "%s -> %s\n", file, outputFile)

	return nil
}

func outputName(file string, opts options) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if opts.tokensOnly {
		return base + ".tokens"
	}
	return base + opts.format.Ext()
}

func writeTokens(w io.Writer, tokens []parser.Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d:%d\t%s\t%s\n", tok.Line, tok.Column, tok.Kind, tok.Value)
	}
}
