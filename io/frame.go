// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.

// Package io streams sizes. Sizes travel as frames: newline terminated text
// for humans and tools, or varlen prefixed binary for compact pipelines.
package io

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/optable/bytesize/unit"
)

// MaxFrameSize bounds a single frame. A size frame is a few dozen bytes, a
// larger frame means the stream is not what the reader expects.
const MaxFrameSize = unit.Mebibyte

// ErrFrameTooLarge is returned by readers when a frame exceeds MaxFrameSize.
var ErrFrameTooLarge = fmt.Errorf("frame exceeds %d bytes", MaxFrameSize)

type (
	// FrameWriter writes one message (payload) per call and takes care of
	// delimiting it in the underlying stream. Implementations are not safe for
	// concurrent use.
	FrameWriter interface {
		// Write writes a single message and returns the number of bytes written,
		// framing included.
		Write(payload []byte) (int, error)
	}

	// FrameReader is the counterpart of a FrameWriter. Read returns io.EOF
	// once no frames are left. The returned slice is only valid until the next
	// call.
	FrameReader interface {
		Read() ([]byte, error)
	}
)

type varLenWriter struct {
	w   io.Writer
	hdr [binary.MaxVarintLen64]byte
}

// NewVarLenFrameWriter prefixes each message with its length encoded as an
// unsigned varint.
func NewVarLenFrameWriter(w io.Writer) FrameWriter {
	return &varLenWriter{w: w}
}

func (v *varLenWriter) Write(payload []byte) (int, error) {
	if len(payload) > MaxFrameSize {
		return 0, ErrFrameTooLarge
	}

	n := binary.PutUvarint(v.hdr[:], uint64(len(payload)))
	written, err := v.w.Write(v.hdr[:n])
	if err != nil {
		return written, err
	}

	n, err = v.w.Write(payload)
	return written + n, err
}

type varLenReader struct {
	r   *bufio.Reader
	buf []byte
}

// NewVarLenFrameReader reads the format written by NewVarLenFrameWriter.
func NewVarLenFrameReader(r io.Reader) FrameReader {
	// ReadUvarint needs an io.ByteReader.
	return &varLenReader{r: bufio.NewReader(r), buf: make([]byte, 64)}
}

func (v *varLenReader) Read() ([]byte, error) {
	length, err := binary.ReadUvarint(v.r)
	if err != nil {
		// A clean io.EOF here means there are no frames left.
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	if length > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}

	if length > uint64(cap(v.buf)) {
		v.buf = make([]byte, length)
	}
	frame := v.buf[:length]
	if _, err := io.ReadFull(v.r, frame); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return frame, nil
}

type newlineWriter struct {
	w io.Writer
}

// NewNewlineDelimitedFrameWriter terminates each message with '\n'. Messages
// must not contain a newline, this is the caller's responsibility.
func NewNewlineDelimitedFrameWriter(w io.Writer) FrameWriter {
	return newlineWriter{w}
}

func (n newlineWriter) Write(payload []byte) (int, error) {
	written, err := n.w.Write(payload)
	if err != nil {
		return written, err
	}
	nl, err := n.w.Write([]byte{'\n'})
	return written + nl, err
}

type newlineReader struct {
	scanner   *bufio.Scanner
	skipEmpty bool
}

// NewNewlineDelimitedFrameReader reads lines terminated by "\n" or "\r\n".
// The last line does not need a terminator. Lines longer than MaxFrameSize
// fail with bufio.ErrTooLong.
func NewNewlineDelimitedFrameReader(r io.Reader, skipEmpty bool) FrameReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxFrameSize)
	return &newlineReader{scanner: scanner, skipEmpty: skipEmpty}
}

func (n *newlineReader) Read() ([]byte, error) {
	for n.scanner.Scan() {
		line := n.scanner.Bytes()
		if n.skipEmpty && len(line) == 0 {
			continue
		}
		return line, nil
	}
	if err := n.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

type multiFrameReader []FrameReader

func (m *multiFrameReader) Read() ([]byte, error) {
	for len(*m) > 0 {
		frame, err := (*m)[0].Read()
		if errors.Is(err, io.EOF) {
			(*m)[0] = nil
			*m = (*m)[1:]
			continue
		}
		return frame, err
	}
	return nil, io.EOF
}

// MultiFrameReader concatenates FrameReaders, like io.MultiReader.
func MultiFrameReader(readers ...FrameReader) FrameReader {
	m := make(multiFrameReader, len(readers))
	copy(m, readers)
	return &m
}

type sliceFrameReader [][]byte

func (s *sliceFrameReader) Read() ([]byte, error) {
	if len(*s) == 0 {
		return nil, io.EOF
	}
	frame := (*s)[0]
	*s = (*s)[1:]
	return frame, nil
}

// SliceFrameReader serves frames from memory.
func SliceFrameReader(frames [][]byte) FrameReader {
	s := sliceFrameReader(frames)
	return &s
}

// StringFrameReader serves each string as a frame.
func StringFrameReader(frames ...string) FrameReader {
	s := make(sliceFrameReader, 0, len(frames))
	for _, f := range frames {
		s = append(s, []byte(f))
	}
	return &s
}

// ReadAllFrames copies every frame until io.EOF. On error it returns the
// error and no frames.
func ReadAllFrames(r FrameReader) ([][]byte, error) {
	var frames [][]byte
	for {
		frame, err := r.Read()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frameCopy := make([]byte, len(frame))
		copy(frameCopy, frame)
		frames = append(frames, frameCopy)
	}
}
