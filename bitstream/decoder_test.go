package bitstream_test

import (
	"testing"

	"github.com/retroenv/rvtrace/bitstream"
	"github.com/retroenv/rvtrace/internal/assert"
)

func TestDecoder_ReadUint_LittleEndianOrder(t *testing.T) {
	t.Parallel()

	// 0b1011_0010 0b0000_0001 -> bit stream: 0,1,0,0,1,1,0,1, 1,0,0,0,...
	d := bitstream.New([]byte{0xB2, 0x01})

	v, err := d.ReadUint(4)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x2), v) // low nibble of 0xB2

	v, err = d.ReadUint(4)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0xB), v) // high nibble of 0xB2

	v, err = d.ReadUint(8)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x01), v)
}

func TestDecoder_ReadUint_SpansByteBoundary(t *testing.T) {
	t.Parallel()

	d := bitstream.New([]byte{0xFF, 0x01})
	_, err := d.ReadUint(4)
	assert.NoError(t, err)

	v, err := d.ReadUint(8) // bits 4..11 -> 0xF from byte0, 0x1 from byte1 low nibble -> 0x1F
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x1F), v)
}

func TestDecoder_ReadInt_SignExtends(t *testing.T) {
	t.Parallel()

	d := bitstream.New([]byte{0x0F}) // 4 bits: 1111 -> -1 as signed 4-bit
	v, err := d.ReadInt(4)
	assert.NoError(t, err)
	assert.Equal(t, int64(-1), v)
}

func TestDecoder_ReadInt_PositiveStaysPositive(t *testing.T) {
	t.Parallel()

	d := bitstream.New([]byte{0x07}) // 4 bits: 0111 -> 7
	v, err := d.ReadInt(4)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), v)
}

func TestDecoder_ReadUint_BufferTooSmall(t *testing.T) {
	t.Parallel()

	d := bitstream.New([]byte{0x01})
	_, err := d.ReadUint(9)
	assert.ErrorIs(t, err, bitstream.ErrBufferTooSmall)
}

func TestDecoder_ReadUint_InvalidWidth(t *testing.T) {
	t.Parallel()

	d := bitstream.New([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09})
	_, err := d.ReadUint(0)
	assert.ErrorIs(t, err, bitstream.ErrInvalidWidth)

	_, err = d.ReadUint(65)
	assert.ErrorIs(t, err, bitstream.ErrInvalidWidth)
}

func TestDecoder_ReadUint_Max64Bits(t *testing.T) {
	t.Parallel()

	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	d := bitstream.New(buf)
	v, err := d.ReadUint(64)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), v)
}

func TestDecoder_BytePosAndBitsLeft(t *testing.T) {
	t.Parallel()

	d := bitstream.New([]byte{0x01, 0x02, 0x03})
	assert.Equal(t, 0, d.BytePos())
	assert.Equal(t, uint64(24), d.BitsLeft())

	_, err := d.ReadUint(3)
	assert.NoError(t, err)
	assert.Equal(t, 1, d.BytePos()) // mid-byte rounds up
	assert.Equal(t, uint64(21), d.BitsLeft())

	err = d.Skip(5)
	assert.NoError(t, err)
	assert.Equal(t, 1, d.BytePos()) // now byte-aligned at byte 1
	assert.Equal(t, uint64(16), d.BitsLeft())
}

func TestDecoder_Reset(t *testing.T) {
	t.Parallel()

	d := bitstream.New([]byte{0xFF})
	_, err := d.ReadUint(4)
	assert.NoError(t, err)

	d.Reset([]byte{0x00, 0x00})
	assert.Equal(t, uint64(16), d.BitsLeft())
	assert.Equal(t, 0, d.BytePos())
}

func TestDecoder_SplitOffTo_AdvancesParent(t *testing.T) {
	t.Parallel()

	d := bitstream.New([]byte{0xAB, 0xCD, 0xEF, 0x12})
	_, err := d.ReadUint(4) // burn a nibble so the split starts mid-byte
	assert.NoError(t, err)

	sub, err := d.SplitOffTo(2)
	assert.NoError(t, err)

	// Parent is advanced by 2 bytes' worth of bits regardless of what the
	// sub-decoder does with them: 32 total - 4 read - 16 split off = 12.
	assert.Equal(t, uint64(12), d.BitsLeft())

	v, err := sub.ReadUint(12)
	assert.NoError(t, err)
	_ = v

	// parent cursor must not have moved further just because sub read bits
	assert.Equal(t, uint64(12), d.BitsLeft())
}

func TestDecoder_SplitOffTo_TooBig(t *testing.T) {
	t.Parallel()

	d := bitstream.New([]byte{0x01, 0x02})
	_, err := d.SplitOffTo(3)
	assert.ErrorIs(t, err, bitstream.ErrBufferTooSmall)
}

func TestDecoder_Skip_PastEnd(t *testing.T) {
	t.Parallel()

	d := bitstream.New([]byte{0x01})
	err := d.Skip(9)
	assert.ErrorIs(t, err, bitstream.ErrBufferTooSmall)
}
