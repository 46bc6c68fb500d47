package pool

import (
	"io"
	"sync"
)

const (
	IndexBufferDefaultSize  = 1024 * 64        // 64KiB
	IndexBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
	LineBufferDefaultSize   = 1024 * 4         // 4KiB
	LineBufferMaxThreshold  = 1024 * 1024      // 1MiB
)

// ByteBuffer is an append-only byte buffer that can be recycled through a ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer and keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of bytes written.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Grow ensures the buffer can take n more bytes without reallocating.
//
// Small buffers grow by at least IndexBufferDefaultSize, larger ones by 25% of their
// capacity, so that long runs of small appends do not reallocate every time.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := IndexBufferDefaultSize
	if cap(bb.B) > 4*IndexBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the buffer contents to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool recycles ByteBuffers, dropping ones that grew past maxThreshold.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose fresh buffers have defaultSize capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	indexPool = NewByteBufferPool(IndexBufferDefaultSize, IndexBufferMaxThreshold)
	linePool  = NewByteBufferPool(LineBufferDefaultSize, LineBufferMaxThreshold)
)

// GetIndexBuffer retrieves a buffer for encoding an index body.
func GetIndexBuffer() *ByteBuffer {
	return indexPool.Get()
}

// PutIndexBuffer returns an index body buffer to its pool.
func PutIndexBuffer(bb *ByteBuffer) {
	indexPool.Put(bb)
}

// GetLineBuffer retrieves a buffer for assembling one GFA record line.
func GetLineBuffer() *ByteBuffer {
	return linePool.Get()
}

// PutLineBuffer returns a line buffer to its pool.
func PutLineBuffer(bb *ByteBuffer) {
	linePool.Put(bb)
}
