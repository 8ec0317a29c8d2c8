// Package pool reuses transfer copy buffers across downloads so a long
// interactive session does not allocate a fresh buffer per file.
package pool

import (
	"io"
	"sync"
)

// CopyBufferSize is the size of a pooled copy buffer (64KB).
const CopyBufferSize = 64 * 1024

var buffers = sync.Pool{
	New: func() any {
		buf := make([]byte, CopyBufferSize)
		return &buf
	},
}

// GetBuffer returns a copy buffer from the pool.
// The caller must return it with PutBuffer when done.
func GetBuffer() *[]byte {
	return buffers.Get().(*[]byte)
}

// PutBuffer returns a buffer to the pool.
// The buffer must not be used after this call.
func PutBuffer(buf *[]byte) {
	buffers.Put(buf)
}

// Copy copies from src to dst through a pooled buffer.
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)
	return io.CopyBuffer(dst, src, *buf)
}
