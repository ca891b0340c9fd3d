package pool

import "sync"

const (
	// ChunkScratchDefaultSize is the initial capacity of scratch buffers.
	// Most HDF5 chunks are in the tens-of-KiB range, so one warm buffer
	// covers typical chunks without regrowing.
	ChunkScratchDefaultSize = 64 * 1024 // 64KiB

	// ChunkScratchMaxThreshold is the largest scratch buffer the pool will
	// retain. Buffers grown beyond this for an oversized chunk are dropped
	// instead of pinned in the pool.
	ChunkScratchMaxThreshold = 8 * 1024 * 1024 // 8MiB
)

// ByteBuffer is a reusable byte buffer for codec scratch space.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for
// reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Sized returns the buffer as a length-n slice, reallocating only when the
// current capacity is insufficient. Contents are unspecified.
func (bb *ByteBuffer) Sized(n int) []byte {
	if cap(bb.B) < n {
		bb.B = make([]byte, n)
	} else {
		bb.B = bb.B[:n]
	}

	return bb.B
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally and discards buffers whose capacity grew past
// the configured threshold to avoid memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the
// specified default capacity.
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

// Put returns a ByteBuffer to the pool for reuse.
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

var chunkScratchPool = NewByteBufferPool(ChunkScratchDefaultSize, ChunkScratchMaxThreshold)

// GetChunkScratch retrieves a ByteBuffer from the default chunk scratch pool.
func GetChunkScratch() *ByteBuffer {
	return chunkScratchPool.Get()
}

// PutChunkScratch returns a ByteBuffer to the default chunk scratch pool.
func PutChunkScratch(bb *ByteBuffer) {
	chunkScratchPool.Put(bb)
}
