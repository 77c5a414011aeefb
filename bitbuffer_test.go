package pdubuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitCreate(t *testing.T) {
	b := NewBitBuffer()
	assert.Equal(t, uint32(0), b.Used())
	assert.Equal(t, uint32(DefaultBitHeadroomSz), b.Headroom())
	assert.Equal(t, uint32(DefaultBitBufferSz), b.Capacity())
	assert.Equal(t, b.Capacity(), b.Headroom()+b.Used()+b.Tailroom())
}

func TestBitCreateSized(t *testing.T) {
	b, err := NewBitBufferSz(64)
	assert.NoError(t, err)
	assert.Equal(t, uint32(64), b.Used())

	_, err = NewBitBufferSz(DefaultBitBufferSz)
	assert.Error(t, err)
}

func TestBitAppendPrepend(t *testing.T) {
	b := NewBitBuffer()
	assert.NoError(t, b.Append([]byte{1, 0, 1, 1}))
	assert.NoError(t, b.Prepend([]byte{0, 1}))
	assert.Equal(t, uint32(6), b.Used())
	assert.Equal(t, uint32(DefaultBitHeadroomSz-2), b.Headroom())
	assert.Equal(t, []byte{0, 1, 1, 0, 1, 1}, b.Data())
	assert.Equal(t, b.Capacity(), b.Headroom()+b.Used()+b.Tailroom())
}

func TestBitCopyNormalizesHeadroom(t *testing.T) {
	src := NewBitBuffer()
	assert.NoError(t, src.Append([]byte{1, 1, 0}))
	assert.NoError(t, src.Prepend([]byte{0}))

	dst := NewBitBuffer()
	assert.NoError(t, dst.CopyFrom(src))
	assert.Equal(t, src.Used(), dst.Used())
	assert.Equal(t, src.Data(), dst.Data())
	assert.Equal(t, uint32(DefaultBitHeadroomSz), dst.Headroom())
}

func TestBitClear(t *testing.T) {
	b := NewBitBuffer()
	assert.NoError(t, b.Append([]byte{1, 0}))
	assert.NoError(t, b.Prepend([]byte{1}))
	b.Clear()
	assert.Equal(t, uint32(0), b.Used())
	assert.Equal(t, uint32(DefaultBitHeadroomSz), b.Headroom())
}

func TestBitAppendOverrun(t *testing.T) {
	b := NewBitBuffer()
	assert.NoError(t, b.Append(make([]byte, b.Tailroom())))
	err := b.Append([]byte{1})
	assert.Error(t, err)
	assert.Equal(t, uint32(0), b.Tailroom())
}
