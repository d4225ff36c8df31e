package blob

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Reading errors. Reads past the end of the blob wrap ErrShortRead;
// malformed compressed integers wrap ErrCompressed.
var (
	ErrShortRead  = errors.New("blob: read past end of data")
	ErrCompressed = errors.New("blob: invalid compressed integer")
	ErrUnread     = errors.New("blob: cannot unread at start of data")
)

// Reader is a positioned cursor over one blob. The zero value is empty;
// use NewReader or Heap.OpenAt.
//
// A Reader must not be shared between goroutines. Concurrent decodes
// each need their own Reader instance.
type Reader struct {
	data []byte
	pos  int
	heap *Heap // non-nil when the reader came from a heap's pool
}

// NewReader creates a Reader over caller-owned bytes.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Close releases a heap-owned reader back to its pool. It is a no-op for
// readers created with NewReader. The reader must not be used afterwards.
func (r *Reader) Close() {
	if r.heap != nil {
		r.heap.release(r)
	}
}

// Position returns the current byte position.
func (r *Reader) Position() int { return r.pos }

// Len returns the total length of the underlying blob.
func (r *Reader) Len() int { return len(r.data) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Data returns the full underlying byte range, independent of position.
// The slice aliases the heap; callers must not modify it.
func (r *Reader) Data() []byte { return r.data }

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, r.shortRead(1)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// UnreadByte rewinds the position by one byte.
func (r *Reader) UnreadByte() error {
	if r.pos == 0 {
		return ErrUnread
	}
	r.pos--
	return nil
}

// ReadBytes reads exactly n bytes. The returned slice aliases the blob.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, r.shortRead(n)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadInt8 reads a signed byte.
func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

// ReadUint16 reads a little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadInt16 reads a little-endian int16.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt32 reads a little-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt64 reads a little-endian int64.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads a little-endian IEEE 754 float32.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads a little-endian IEEE 754 float64.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadCompressedUint32 reads an ECMA-335 II.23.2 compressed unsigned
// integer: one byte for values below 0x80, two bytes with a 10 prefix,
// four bytes with a 110 prefix.
func (r *Reader) ReadCompressedUint32() (uint32, error) {
	b0, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch {
	case b0&0x80 == 0:
		return uint32(b0), nil
	case b0&0xC0 == 0x80:
		b1, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		return uint32(b0&0x3F)<<8 | uint32(b1), nil
	case b0&0xE0 == 0xC0:
		b, err := r.ReadBytes(3)
		if err != nil {
			return 0, err
		}
		return uint32(b0&0x1F)<<24 | uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
	default:
		return 0, fmt.Errorf("at position %d: %w: leading byte 0x%02x", r.pos-1, ErrCompressed, b0)
	}
}

func (r *Reader) shortRead(n int) error {
	return fmt.Errorf("at position %d: %w: need %d bytes, %d available", r.pos, ErrShortRead, n, len(r.data)-r.pos)
}
