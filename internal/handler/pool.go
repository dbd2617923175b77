package handler

import (
	"bytes"
	"sync"
)

// initialBufferSize fits a round snapshot with its board
const initialBufferSize = 2048

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer resets the buffer and returns it to the pool.
// Oversized buffers are dropped so one large board does not pin memory.
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*initialBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
