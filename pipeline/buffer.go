package pipeline

// ChunkBuffer carries one chunk through the filter pipeline.
//
// The backing slice B declares the buffer's capacity (its full length);
// Size is the logical byte length of the current contents. A filter that
// transforms the chunk allocates its own output, replaces B and returns the
// new logical size; on any failure or fallback it must leave the buffer
// exactly as it received it.
type ChunkBuffer struct {
	// B is the backing storage. len(B) is the declared capacity.
	B []byte

	// Size is the logical byte length of the current contents.
	Size int
}

// NewChunkBuffer wraps data in a chunk buffer whose capacity and logical
// size both equal len(data).
func NewChunkBuffer(data []byte) *ChunkBuffer {
	return &ChunkBuffer{B: data, Size: len(data)}
}

// Data returns the logical contents of the buffer.
func (b *ChunkBuffer) Data() []byte {
	return b.B[:b.Size]
}

// Cap returns the declared capacity of the buffer.
func (b *ChunkBuffer) Cap() int {
	return len(b.B)
}

// Replace hands ownership of a new backing slice to the buffer and sets its
// logical size. The previous backing slice is released to the caller's
// garbage collector; filters call this only on success.
func (b *ChunkBuffer) Replace(data []byte, size int) {
	b.B = data
	b.Size = size
}
