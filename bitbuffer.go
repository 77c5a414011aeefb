package pdubuf

import "github.com/pkg/errors"

const (
	// DefaultBitBufferSz is the baseline bit-buffer capacity in bits. The
	// backing store holds one unpacked bit per byte, the form the coded
	// bitstream side of the stack works in.
	DefaultBitBufferSz = 102048

	// DefaultBitHeadroomSz is the baseline bit-buffer header margin in bits.
	DefaultBitHeadroomSz = 1020
)

// BitBuffer is the bit-granularity sibling of ByteBuffer, used for coded-bit
// manipulation before and after modulation. Bit buffers are stack-local and
// short-lived; they carry no pooling hook and no latency tracker.
type BitBuffer struct {
	data     []byte
	offset   uint32
	used     uint32
	headroom uint32
}

func NewBitBuffer() *BitBuffer {
	return &BitBuffer{
		data:     make([]byte, DefaultBitBufferSz),
		offset:   DefaultBitHeadroomSz,
		headroom: DefaultBitHeadroomSz,
	}
}

// NewBitBufferSz allocates a bit buffer with the valid length preset to
// size bits.
func NewBitBufferSz(size uint32) (*BitBuffer, error) {
	if size > DefaultBitBufferSz-DefaultBitHeadroomSz {
		return nil, errors.Errorf("oversized bit buffer [%d > %d]", size, DefaultBitBufferSz-DefaultBitHeadroomSz)
	}
	buf := NewBitBuffer()
	buf.used = size
	return buf, nil
}

func (self *BitBuffer) Clear() {
	self.offset = self.headroom
	self.used = 0
}

// Append copies bits (one per byte) into the tailroom. On overflow nothing
// is mutated.
func (self *BitBuffer) Append(bits []byte) error {
	if uint32(len(bits)) > self.Tailroom() {
		return errors.Errorf("append overruns tailroom [%d > %d]", len(bits), self.Tailroom())
	}
	copy(self.data[self.offset+self.used:], bits)
	self.used += uint32(len(bits))
	return nil
}

// Prepend consumes bit headroom and copies bits immediately before the
// valid region. On overflow nothing is mutated.
func (self *BitBuffer) Prepend(bits []byte) error {
	if uint32(len(bits)) > self.offset {
		return errors.Errorf("prepend overruns headroom [%d > %d]", len(bits), self.offset)
	}
	self.offset -= uint32(len(bits))
	copy(self.data[self.offset:], bits)
	self.used += uint32(len(bits))
	return nil
}

// CopyFrom deep-copies the source's valid bits into this buffer at the
// default margin.
func (self *BitBuffer) CopyFrom(src *BitBuffer) error {
	if src == self {
		return nil
	}
	if src.used > uint32(len(self.data))-self.headroom {
		return errors.Errorf("source does not fit [%d > %d]", src.used, uint32(len(self.data))-self.headroom)
	}
	self.offset = self.headroom
	self.used = src.used
	copy(self.data[self.offset:], src.Data())
	return nil
}

func (self *BitBuffer) Headroom() uint32 {
	return self.offset
}

func (self *BitBuffer) Tailroom() uint32 {
	return uint32(len(self.data)) - self.offset - self.used
}

func (self *BitBuffer) Used() uint32 {
	return self.used
}

func (self *BitBuffer) Capacity() uint32 {
	return uint32(len(self.data))
}

// Data returns the valid bits, one per byte.
func (self *BitBuffer) Data() []byte {
	return self.data[self.offset : self.offset+self.used]
}
