// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/optable/bytesize/cli"
	"github.com/optable/bytesize/errors"
	sizeio "github.com/optable/bytesize/io"
	"github.com/optable/bytesize/locale"
	"github.com/optable/bytesize/size"
	"github.com/optable/bytesize/unit"
)

type ParseCmd struct {
	Sizes  []string `arg:"" help:"Sizes to parse, e.g. '1.5 GiB'."`
	Unit   string   `help:"Unit of numerals written without one." placeholder:"UNIT"`
	Binary bool     `help:"Write varlen framed binary sizes instead of text lines."`
}

func (cmd *ParseCmd) Run(g *Globals) error {
	profile, err := g.profile()
	if err != nil {
		return err
	}
	if cmd.Unit != "" {
		p, err := unit.Lookup(cmd.Unit)
		if err != nil {
			return err
		}
		profile.DefaultUnit = &p
	}

	reader := sizeio.NewSizeReader(sizeio.StringFrameReader(cmd.Sizes...), sizeio.Text, profile.Parser())
	sizes, parseErr := sizeio.ReadAllSizes(reader)

	writer := g.sizeWriter(cmd.Binary)
	for _, s := range sizes {
		if err := writer.Write(s); err != nil {
			return err
		}
	}
	return parseErr
}

type FormatCmd struct {
	Sizes  []string `arg:"" optional:"" help:"Byte counts or sizes to display. Read from stdin when none."`
	Binary bool     `help:"Read varlen framed binary sizes from stdin."`

	cli.FormatFlags `embed:""`
}

func (cmd *FormatCmd) Run(g *Globals) error {
	profile, err := g.profile()
	if err != nil {
		return err
	}
	c := profile.Format
	if err := cmd.Apply(&c); err != nil {
		return err
	}
	locale.Localize(&c)

	var reader *sizeio.SizeReader
	switch {
	case len(cmd.Sizes) > 0:
		reader = sizeio.NewSizeReader(sizeio.StringFrameReader(cmd.Sizes...), sizeio.Text, profile.Parser())
	case cmd.Binary:
		reader = sizeio.NewSizeReader(sizeio.NewVarLenFrameReader(os.Stdin), sizeio.Binary, nil)
	default:
		reader = sizeio.NewSizeReader(sizeio.NewNewlineDelimitedFrameReader(os.Stdin, false), sizeio.Text, profile.Parser())
	}

	sizes, readErr := sizeio.ReadAllSizes(reader)
	for _, s := range sizes {
		text, err := s.Format(c)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(g.out, text); err != nil {
			return err
		}
	}
	return readErr
}

type SumCmd struct {
	Files     []string `arg:"" optional:"" help:"Files holding one size per line. Stdin when none."`
	Workers   int      `help:"Parsing goroutines, GOMAXPROCS when 0." default:"0"`
	ChunkSize int      `help:"Bytes read per chunk." default:"1048576"`
	Binary    bool     `help:"Read varlen framed binary sizes."`

	cli.FormatFlags `embed:""`
}

func (cmd *SumCmd) Run(g *Globals) error {
	profile, err := g.profile()
	if err != nil {
		return err
	}
	c := profile.Format
	if err := cmd.Apply(&c); err != nil {
		return err
	}
	locale.Localize(&c)

	inputs, err := cmd.open()
	if err != nil {
		return err
	}
	defer func() {
		for _, in := range inputs {
			sizeio.MaybeClose(in.reader)
		}
	}()

	var (
		total   size.Size
		invalid int
	)
	if cmd.Binary {
		readers := make([]sizeio.FrameReader, 0, len(inputs))
		for _, in := range inputs {
			readers = append(readers, sizeio.NewVarLenFrameReader(in.reader))
		}
		sum, err := sizeio.Sum(sizeio.NewSizeReader(sizeio.MultiFrameReader(readers...), sizeio.Binary, nil))
		if invalid, err = reportInvalid(g, "", err); err != nil {
			return err
		}
		total = sum
	} else {
		parser := profile.Parser()
		for _, in := range inputs {
			chunker, err := sizeio.NewNewlineDelimitedChunkReader(in.reader, cmd.ChunkSize)
			if err != nil {
				return err
			}
			sum, err := sizeio.SumChunks(g.ctx, chunker, parser, cmd.Workers)
			n, err := reportInvalid(g, in.name, err)
			if err != nil {
				return fmt.Errorf("failed summing %s: %w", in.name, err)
			}
			invalid += n
			total = total.Add(sum)
		}
	}

	text, err := total.Format(c)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(g.out, text); err != nil {
		return err
	}
	if invalid > 0 {
		return fmt.Errorf("skipped %d invalid sizes", invalid)
	}
	return nil
}

type input struct {
	name   string
	reader io.Reader
}

func (cmd *SumCmd) open() ([]input, error) {
	if len(cmd.Files) == 0 {
		return []input{{"stdin", struct{ io.Reader }{os.Stdin}}}, nil
	}

	inputs := make([]input, 0, len(cmd.Files))
	for _, name := range cmd.Files {
		f, err := os.Open(name)
		if err != nil {
			for _, in := range inputs {
				sizeio.MaybeClose(in.reader)
			}
			return nil, err
		}
		inputs = append(inputs, input{name, f})
	}
	return inputs, nil
}

// reportInvalid logs the positional errors of err and returns how many there
// were. Any other error is returned as is.
func reportInvalid(g *Globals, name string, err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	errs := []error{err}
	var many *errors.Errors
	if errors.As(err, &many) {
		errs = many.Errors()
	}

	logger := zerolog.Ctx(g.ctx)
	for _, e := range errs {
		var posErr *errors.PositionalError
		if !errors.As(e, &posErr) {
			return 0, e
		}
		event := logger.Warn().Int("position", posErr.Position()).Err(posErr.Unwrap())
		if name != "" {
			event = event.Str("file", name)
		}
		if posErr.Input() != "" {
			event = event.Str("input", posErr.Input())
		}
		event.Msg("Skipped invalid size")
	}
	return len(errs), nil
}

type ConvertCmd struct {
	Size string `arg:"" help:"Size to convert, e.g. '1.5 GiB'."`
	To   string `required:"" help:"Target unit, e.g. MB." placeholder:"UNIT"`
	Long bool   `help:"Display the long unit name."`
}

func (cmd *ConvertCmd) Run(g *Globals) error {
	profile, err := g.profile()
	if err != nil {
		return err
	}
	to, err := unit.Lookup(cmd.To)
	if err != nil {
		return err
	}
	s, err := profile.Parser().Parse(cmd.Size)
	if err != nil {
		return err
	}

	// Every unit factor is a product of 2 and 5, so the quotient of whole
	// bytes always has a finite decimal expansion.
	c := profile.FormatConfig()
	c.Unit = &to
	c.MaxPlaces = size.Unlimited
	c.MinValue = nil
	c.ShowApprox = false
	c.LongName = c.LongName || cmd.Long

	text, err := s.Format(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.out, text)
	return err
}

func (g *Globals) sizeWriter(binary bool) *sizeio.SizeWriter {
	if binary {
		return sizeio.NewSizeWriter(sizeio.NewVarLenFrameWriter(g.out), sizeio.Binary)
	}
	return sizeio.NewSizeWriter(sizeio.NewNewlineDelimitedFrameWriter(g.out), sizeio.Text)
}
