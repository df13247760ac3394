// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package io

import (
	"bytes"
	"errors"
	"io"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoFrameFound is returned when a whole chunk holds no delimiter, i.e.
	// a line is longer than the chunk size.
	ErrNoFrameFound = errors.New("no frame found in chunk")
)

type (
	// Chunk is a run of whole lines cut from a newline delimited stream.
	Chunk struct {
		Data []byte
		// Line is the 0-based index of the first line of Data in the stream.
		Line int
	}

	// ChunkReader breaks a stream into chunks amenable to parallel parsing.
	// NextChunk returns io.EOF once the stream is exhausted.
	ChunkReader interface {
		NextChunk() (*Chunk, error)
	}
)

// Frames reads the lines of the chunk, empty ones included so that frame
// positions match line numbers.
func (c *Chunk) Frames() FrameReader {
	return NewNewlineDelimitedFrameReader(bytes.NewReader(c.Data), false)
}

// Lines returns the number of lines in the chunk.
func (c *Chunk) Lines() int {
	n := bytes.Count(c.Data, []byte{'\n'})
	if len(c.Data) > 0 && c.Data[len(c.Data)-1] != '\n' {
		n++
	}
	return n
}

type lineChunker struct {
	r         io.Reader
	chunkSize int
	carry     []byte
	line      int
}

// NewNewlineDelimitedChunkReader cuts reader into chunks of roughly
// chunkSize bytes ending on a line boundary. chunkSize must hold at least one
// full line, otherwise NextChunk fails with ErrNoFrameFound. Unlike
// bufio.Scanner, a trailing '\r' is left in the chunk.
func NewNewlineDelimitedChunkReader(reader io.Reader, chunkSize int) (ChunkReader, error) {
	if reader == nil || chunkSize <= 0 {
		return nil, ErrInvalidArgument
	}
	return &lineChunker{r: reader, chunkSize: chunkSize}, nil
}

func (c *lineChunker) NextChunk() (*Chunk, error) {
	if c.r == nil {
		if len(c.carry) == 0 {
			return nil, io.EOF
		}
		return c.emit(len(c.carry)), nil
	}

	buf := make([]byte, len(c.carry)+c.chunkSize)
	copy(buf, c.carry)
	n, err := io.ReadFull(c.r, buf[len(c.carry):])
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		// Only the last read can come up short.
		c.r = nil
	case err != nil:
		return nil, err
	}
	c.carry = buf[:len(c.carry)+n]

	end := bytes.LastIndexByte(c.carry, '\n') + 1
	if end == 0 {
		if c.r != nil {
			return nil, ErrNoFrameFound
		}
		end = len(c.carry)
	}
	if end == 0 {
		return nil, io.EOF
	}
	return c.emit(end), nil
}

func (c *lineChunker) emit(end int) *Chunk {
	chunk := &Chunk{Data: c.carry[:end], Line: c.line}
	c.line += chunk.Lines()
	c.carry = c.carry[end:]
	return chunk
}

// ReadAllChunks drains a ChunkReader. It holds the whole stream in memory and
// is mostly meant for tests.
func ReadAllChunks(chunker ChunkReader) ([]*Chunk, error) {
	var chunks []*Chunk
	for {
		chunk, err := chunker.NextChunk()
		if errors.Is(err, io.EOF) {
			return chunks, nil
		}
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
}
