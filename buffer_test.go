package pdubuf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProfile(bufSz, headroomSz uint32, poolSz int) *Profile {
	p := NewBaselineProfile()
	p.BufferSz = bufSz
	p.HeadroomSz = headroomSz
	p.PoolSz = poolSz
	return p
}

func TestCreate(t *testing.T) {
	b := NewByteBuffer()
	assert.Equal(t, uint32(0), b.Used())
	assert.Equal(t, uint32(DefaultHeadroomSz), b.Headroom())
	assert.Equal(t, uint32(DefaultBufferSz), b.Capacity())
	assert.Equal(t, b.Capacity(), b.Headroom()+b.Used()+b.Tailroom())
}

func TestCreateSized(t *testing.T) {
	b, err := NewByteBufferSz(512)
	assert.NoError(t, err)
	assert.Equal(t, uint32(512), b.Used())
	assert.Equal(t, uint32(DefaultHeadroomSz), b.Headroom())
	assert.Equal(t, b.Capacity(), b.Headroom()+b.Used()+b.Tailroom())
}

func TestCreateOversized(t *testing.T) {
	_, err := NewByteBufferSz(DefaultBufferSz - DefaultHeadroomSz + 1)
	assert.Error(t, err)
}

func TestAppend(t *testing.T) {
	b := NewByteBuffer()
	assert.NoError(t, b.Append([]byte{0x01, 0x02, 0x03}))
	assert.NoError(t, b.Append([]byte{0x04}))
	assert.Equal(t, uint32(4), b.Used())
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, b.Data())
	assert.Equal(t, b.Capacity(), b.Headroom()+b.Used()+b.Tailroom())
}

func TestAppendAssociative(t *testing.T) {
	x := []byte{0xaa, 0xbb}
	y := []byte{0xcc, 0xdd, 0xee}

	b0 := NewByteBuffer()
	assert.NoError(t, b0.Append(x))
	assert.NoError(t, b0.Append(y))

	b1 := NewByteBuffer()
	assert.NoError(t, b1.Append(append(append([]byte{}, x...), y...)))

	assert.Equal(t, b1.Used(), b0.Used())
	assert.Equal(t, b1.Data(), b0.Data())
}

func TestAppendOverrun(t *testing.T) {
	pool, err := NewPool("appendOverrun", testProfile(128, 16, 1))
	assert.NoError(t, err)
	defer pool.Close()

	b, err := pool.Acquire()
	assert.NoError(t, err)
	defer b.Unref()

	assert.NoError(t, b.Append(make([]byte, 100)))
	before := append([]byte{}, b.Data()...)

	err = b.Append(make([]byte, int(b.Tailroom())+1))
	assert.Error(t, err)
	assert.Equal(t, uint32(100), b.Used())
	assert.Equal(t, before, b.Data())
}

func TestPrependHeader(t *testing.T) {
	pool, err := NewPool("prependHeader", testProfile(1500, 64, 1))
	assert.NoError(t, err)
	defer pool.Close()

	b, err := pool.Acquire()
	assert.NoError(t, err)
	defer b.Unref()

	payload := make([]byte, 100)
	for i := range payload {
		payload[i] = byte(i)
	}
	assert.NoError(t, b.Append(payload))
	assert.Equal(t, uint32(64), b.Headroom())

	tag := []byte{0xde, 0xad, 0xbe, 0xef}
	assert.NoError(t, b.Prepend(tag))

	assert.Equal(t, uint32(104), b.Used())
	assert.Equal(t, uint32(60), b.Headroom())
	assert.Equal(t, tag, b.Data()[0:4])
	assert.Equal(t, payload, b.Data()[4:104])
	assert.Equal(t, b.Capacity(), b.Headroom()+b.Used()+b.Tailroom())
}

func TestPrependOverrun(t *testing.T) {
	pool, err := NewPool("prependOverrun", testProfile(128, 4, 1))
	assert.NoError(t, err)
	defer pool.Close()

	b, err := pool.Acquire()
	assert.NoError(t, err)
	defer b.Unref()

	assert.NoError(t, b.Prepend([]byte{0x01, 0x02, 0x03, 0x04}))
	err = b.Prepend([]byte{0x05})
	assert.Error(t, err)
	assert.Equal(t, uint32(4), b.Used())
	assert.Equal(t, uint32(0), b.Headroom())
}

func TestCopyNormalizesHeadroom(t *testing.T) {
	src := NewByteBuffer()
	assert.NoError(t, src.Append([]byte{0x10, 0x20, 0x30}))
	assert.NoError(t, src.Prepend([]byte{0x01}))
	src.SetPdcpSn(77)
	assert.Equal(t, uint32(DefaultHeadroomSz-1), src.Headroom())

	dst := NewByteBuffer()
	assert.NoError(t, dst.CopyFrom(src))
	assert.Equal(t, src.Used(), dst.Used())
	assert.Equal(t, src.Data(), dst.Data())
	assert.Equal(t, uint32(77), dst.PdcpSn())
	// the copy starts over with the full default margin
	assert.Equal(t, uint32(DefaultHeadroomSz), dst.Headroom())
}

func TestClearThenAppendMatchesFresh(t *testing.T) {
	x := []byte{0x0a, 0x0b, 0x0c}

	dirty := NewByteBuffer()
	assert.NoError(t, dirty.Append(make([]byte, 500)))
	assert.NoError(t, dirty.Prepend([]byte{0xff, 0xff}))
	dirty.SetPdcpSn(42)
	dirty.Clear()
	assert.NoError(t, dirty.Append(x))

	fresh := NewByteBuffer()
	assert.NoError(t, fresh.Append(x))

	assert.Equal(t, fresh.Used(), dirty.Used())
	assert.Equal(t, fresh.Data(), dirty.Data())
	assert.Equal(t, fresh.Headroom(), dirty.Headroom())
	assert.Equal(t, fresh.PdcpSn(), dirty.PdcpSn())
}

func TestResize(t *testing.T) {
	b := NewByteBuffer()
	span := b.data[b.offset:]
	span[0] = 0x42
	assert.NoError(t, b.Resize(1))
	assert.Equal(t, []byte{0x42}, b.Data())

	err := b.Resize(b.Capacity())
	assert.Error(t, err)
	assert.Equal(t, uint32(1), b.Used())
}

func TestResizeHuge(t *testing.T) {
	b := NewByteBuffer()
	assert.NoError(t, b.Append([]byte{0x01, 0x02}))

	// lengths near the top of the uint32 range must be rejected, not wrapped
	err := b.Resize(math.MaxUint32 - 100)
	assert.Error(t, err)
	assert.Equal(t, uint32(2), b.Used())
	assert.Equal(t, []byte{0x01, 0x02}, b.Data())

	err = b.Resize(math.MaxUint32)
	assert.Error(t, err)
	assert.Equal(t, uint32(2), b.Used())
}
