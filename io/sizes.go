// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package io

import (
	"bytes"
	"fmt"
	"io"

	"github.com/optable/bytesize/errors"
	"github.com/optable/bytesize/size"
)

// Encoding selects how a Size is stored in a frame.
type Encoding uint8

const (
	// Text stores the exact byte count in base 10. Readers accept anything
	// the parser does, e.g. "1.5 KiB".
	Text Encoding = iota
	// Binary stores size.MarshalBinary output.
	Binary
)

func (e Encoding) String() string {
	switch e {
	case Text:
		return "text"
	case Binary:
		return "binary"
	}
	return fmt.Sprintf("Encoding(%d)", uint8(e))
}

// SizeWriter writes one size per frame.
type SizeWriter struct {
	frames   FrameWriter
	encoding Encoding
}

func NewSizeWriter(w FrameWriter, encoding Encoding) *SizeWriter {
	return &SizeWriter{frames: w, encoding: encoding}
}

func (w *SizeWriter) Write(s size.Size) error {
	var (
		payload []byte
		err     error
	)
	if w.encoding == Binary {
		payload, err = s.MarshalBinary()
	} else {
		payload, err = s.MarshalText()
	}
	if err != nil {
		return err
	}
	_, err = w.frames.Write(payload)
	return err
}

// SizeReader reads one size per frame. Blank text frames are skipped but
// still counted, so positions match line numbers.
type SizeReader struct {
	frames   FrameReader
	encoding Encoding
	parser   *size.Parser
	pos      int
}

// NewSizeReader reads sizes from r. A nil parser uses the default one.
func NewSizeReader(r FrameReader, encoding Encoding, parser *size.Parser) *SizeReader {
	if parser == nil {
		parser = size.NewParser()
	}
	return &SizeReader{frames: r, encoding: encoding, parser: parser}
}

// Read returns the next size, or io.EOF. A frame that does not decode yields
// an *errors.PositionalError holding its 1-based position; reading may
// continue after it. Any other error comes from the underlying stream.
func (r *SizeReader) Read() (size.Size, error) {
	for {
		frame, err := r.frames.Read()
		if err != nil {
			return size.Size{}, err
		}
		r.pos++

		if r.encoding == Binary {
			var s size.Size
			if err := s.UnmarshalBinary(frame); err != nil {
				return size.Size{}, errors.NewPositionalError(r.pos, err)
			}
			return s, nil
		}

		text := string(bytes.TrimSpace(frame))
		if text == "" {
			continue
		}
		s, err := r.parser.Parse(text)
		if err != nil {
			return size.Size{}, errors.NewInputError(r.pos, text, err)
		}
		return s, nil
	}
}

// ReadAllSizes reads every size. Malformed frames are collected and returned
// together, after the stream is exhausted, as an error built by
// errors.NewErrors.
func ReadAllSizes(r *SizeReader) ([]size.Size, error) {
	var (
		sizes []size.Size
		errs  []error
	)
	err := r.each(func(s size.Size) {
		sizes = append(sizes, s)
	}, &errs)
	if err != nil {
		return nil, err
	}
	return sizes, errors.NewErrors(errs...)
}

// Sum adds every size of the stream. The sum of the well formed frames is
// returned even when some frames are malformed.
func Sum(r *SizeReader) (size.Size, error) {
	var (
		total size.Size
		errs  []error
	)
	if err := r.each(func(s size.Size) { total = total.Add(s) }, &errs); err != nil {
		return size.Size{}, err
	}
	return total, errors.NewErrors(errs...)
}

func (r *SizeReader) each(fn func(size.Size), errs *[]error) error {
	for {
		s, err := r.Read()
		var posErr *errors.PositionalError
		switch {
		case err == nil:
			fn(s)
		case errors.Is(err, io.EOF):
			return nil
		case errors.As(err, &posErr):
			*errs = append(*errs, err)
		default:
			return err
		}
	}
}
