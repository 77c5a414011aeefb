package pdubuf

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultBufferSz is the baseline backing store capacity, sized to the
	// largest PDU the stack handles plus the default header margin.
	DefaultBufferSz = 12756

	// DefaultHeadroomSz is the baseline header margin, sized to the deepest
	// stack of headers any layer combination prepends.
	DefaultHeadroomSz = 1020
)

// Metadata rides along with a ByteBuffer as it moves through the stack.
type Metadata struct {
	PdcpSn  uint32
	Latency LatencyTracker
}

// ByteBuffer is a fixed-capacity octet buffer with reserved headroom, so
// protocol layers can prepend headers in place as a PDU descends the stack
// and strip them as it ascends. The valid region is
// data[offset : offset+used]; headroom and tailroom are derived from offset
// and used, never stored, so headroom + used + tailroom always equals the
// capacity.
//
// A ByteBuffer is a single-owner value: exactly one stage holds it at a
// time, and hand-off between stages is a pointer transfer, never a share.
// Fan-out requires an explicit deep copy (CopyFrom, Clone).
type ByteBuffer struct {
	data     []byte
	offset   uint32
	used     uint32
	headroom uint32
	md       Metadata
	refs     int32
	pool     *Pool
}

// NewByteBuffer allocates a standalone buffer with the baseline geometry.
// Buffers on the real-time path come from a Pool instead.
func NewByteBuffer() *ByteBuffer {
	return newByteBuffer(DefaultBufferSz, DefaultHeadroomSz, true, nil)
}

// NewByteBufferSz allocates a standalone buffer with the baseline geometry
// and the valid length preset to size.
func NewByteBufferSz(size uint32) (*ByteBuffer, error) {
	if size > DefaultBufferSz-DefaultHeadroomSz {
		return nil, errors.Errorf("oversized buffer [%d > %d]", size, DefaultBufferSz-DefaultHeadroomSz)
	}
	buf := NewByteBuffer()
	buf.used = size
	return buf, nil
}

func newByteBuffer(bufSz, headroomSz uint32, latencyTracking bool, pool *Pool) *ByteBuffer {
	return &ByteBuffer{
		data:     make([]byte, bufSz),
		offset:   headroomSz,
		headroom: headroomSz,
		md:       Metadata{Latency: LatencyTracker{disabled: !latencyTracking}},
		pool:     pool,
	}
}

// Clear rewinds the buffer to its default margin and resets the metadata.
// The backing bytes are not zeroed; only the logical geometry changes.
func (self *ByteBuffer) Clear() {
	self.offset = self.headroom
	self.used = 0
	self.md.PdcpSn = 0
	self.md.Latency.Clear()
}

// Append copies p into the tailroom. On overflow nothing is mutated.
func (self *ByteBuffer) Append(p []byte) error {
	if uint32(len(p)) > self.Tailroom() {
		return errors.Errorf("append overruns tailroom [%d > %d]", len(p), self.Tailroom())
	}
	copy(self.data[self.offset+self.used:], p)
	self.used += uint32(len(p))
	return nil
}

// Prepend consumes headroom and copies p immediately before the valid
// region, the in-place header write that keeps per-layer framing O(1). On
// overflow nothing is mutated.
func (self *ByteBuffer) Prepend(p []byte) error {
	if uint32(len(p)) > self.offset {
		return errors.Errorf("prepend overruns headroom [%d > %d]", len(p), self.offset)
	}
	self.offset -= uint32(len(p))
	copy(self.data[self.offset:], p)
	self.used += uint32(len(p))
	return nil
}

// Resize sets the valid length, for producers that write through Span and
// then declare how much they wrote. On overflow nothing is mutated.
func (self *ByteBuffer) Resize(used uint32) error {
	// offset never exceeds the capacity, so the subtraction cannot wrap
	if used > uint32(len(self.data))-self.offset {
		return errors.Errorf("resize overruns capacity [%d > %d]", used, uint32(len(self.data))-self.offset)
	}
	self.used = used
	return nil
}

// CopyFrom deep-copies the source's valid region and metadata into this
// buffer. Content lands at this buffer's default margin: the source's
// consumed headroom is not preserved, so a copy always starts with the full
// header margin available.
func (self *ByteBuffer) CopyFrom(src *ByteBuffer) error {
	if src == self {
		return nil
	}
	if src.used > uint32(len(self.data))-self.headroom {
		return errors.Errorf("source does not fit [%d > %d]", src.used, uint32(len(self.data))-self.headroom)
	}
	self.offset = self.headroom
	self.used = src.used
	copy(self.data[self.offset:], src.Data())
	self.md.PdcpSn = src.md.PdcpSn
	self.md.Latency.copyFrom(&src.md.Latency)
	return nil
}

// Clone acquires a buffer from p and deep-copies this buffer into it, for
// fan-out to multiple consumers.
func (self *ByteBuffer) Clone(p *Pool) (*ByteBuffer, error) {
	buf, err := p.Acquire()
	if err != nil {
		return nil, errors.Wrap(err, "clone")
	}
	if err := buf.CopyFrom(self); err != nil {
		buf.Unref()
		return nil, errors.Wrap(err, "clone")
	}
	return buf, nil
}

func (self *ByteBuffer) Headroom() uint32 {
	return self.offset
}

func (self *ByteBuffer) Tailroom() uint32 {
	return uint32(len(self.data)) - self.offset - self.used
}

func (self *ByteBuffer) Used() uint32 {
	return self.used
}

func (self *ByteBuffer) Capacity() uint32 {
	return uint32(len(self.data))
}

// Data returns the valid region. The slice is a view, not a copy; it must
// not be retained past Clear, Resize or Unref.
func (self *ByteBuffer) Data() []byte {
	return self.data[self.offset : self.offset+self.used]
}

func (self *ByteBuffer) PdcpSn() uint32 {
	return self.md.PdcpSn
}

func (self *ByteBuffer) SetPdcpSn(sn uint32) {
	self.md.PdcpSn = sn
}

func (self *ByteBuffer) SetTimestamp() {
	self.md.Latency.SetTimestamp()
}

func (self *ByteBuffer) SetTimestampAt(tp time.Time) {
	self.md.Latency.SetTimestampAt(tp)
}

func (self *ByteBuffer) LatencyUs() int64 {
	return self.md.Latency.LatencyUs()
}

func (self *ByteBuffer) Ref() {
	atomic.AddInt32(&self.refs, 1)
}

// Unref drops a reference. When the last reference is gone a pooled buffer
// goes back to its pool; a standalone buffer is left to the collector.
func (self *ByteBuffer) Unref() {
	if atomic.AddInt32(&self.refs, -1) < 1 {
		if self.pool != nil {
			self.pool.Release(self)
		}
	}
}
