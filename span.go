package pdubuf

// Span returns a mutable, non-owning view over the buffer's valid region.
// A span must not be retained past Clear, Resize, CopyFrom or the owning
// handle's release; nothing enforces that scoping at runtime.
func Span(b *ByteBuffer) []byte {
	return b.Data()
}

// ReadOnlySpan is a non-owning read view over a buffer's valid region.
// It cannot be used to mutate the buffer or to extend its length.
type ReadOnlySpan struct {
	data []byte
}

// ConstSpan returns a read-only view over the buffer's valid region, with
// the same scoping discipline as Span.
func ConstSpan(b *ByteBuffer) ReadOnlySpan {
	return ReadOnlySpan{data: b.Data()}
}

func (self ReadOnlySpan) Len() int {
	return len(self.data)
}

func (self ReadOnlySpan) At(i int) byte {
	return self.data[i]
}

// CopyTo copies the viewed bytes into dst, returning the number copied.
func (self ReadOnlySpan) CopyTo(dst []byte) int {
	return copy(dst, self.data)
}

// Bytes returns a fresh copy of the viewed region.
func (self ReadOnlySpan) Bytes() []byte {
	out := make([]byte, len(self.data))
	copy(out, self.data)
	return out
}
