// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package io

import (
	"bufio"
	"io"
)

const defaultBufSize = 4096

type bufferedWriteCloser struct {
	*bufio.Writer
	closer io.Closer
}

// NewBufferWriteCloserSize buffers w. Close flushes the buffer then closes w
// if it implements io.Closer. A negative size uses the default buffer size.
func NewBufferWriteCloserSize(w io.Writer, size int) io.WriteCloser {
	if size < 0 {
		size = defaultBufSize
	}
	closer, _ := w.(io.Closer)
	return &bufferedWriteCloser{Writer: bufio.NewWriterSize(w, size), closer: closer}
}

// NewBufferWriteCloser is NewBufferWriteCloserSize with the default size.
func NewBufferWriteCloser(w io.Writer) io.WriteCloser {
	return NewBufferWriteCloserSize(w, defaultBufSize)
}

func (b *bufferedWriteCloser) Close() error {
	if err := b.Flush(); err != nil {
		return err
	}
	if b.closer != nil {
		return b.closer.Close()
	}
	return nil
}

// KeepOpen hides the Close method of w, e.g. to buffer os.Stdout without
// closing it.
func KeepOpen(w io.Writer) io.Writer {
	return struct{ io.Writer }{w}
}

// MaybeClose closes i if it implements io.Closer.
func MaybeClose(i interface{}) error {
	if closer, ok := i.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
