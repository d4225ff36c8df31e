package blob

import (
	"fmt"
	"sync"
)

// Heap is a #Blob heap: a byte stream holding variable-length blobs
// referenced by offset, each prefixed with a compressed length. A Heap
// is immutable once created and safe for concurrent use; every OpenAt
// call hands out an independent Reader.
type Heap struct {
	data []byte
	pool sync.Pool
}

// NewHeap creates a Heap over the given bytes. The Heap does not copy;
// the caller must not modify data afterwards.
func NewHeap(data []byte) *Heap {
	h := &Heap{data: data}
	h.pool.New = func() any {
		return &Reader{heap: h}
	}
	return h
}

// Len returns the heap size in bytes.
func (h *Heap) Len() int { return len(h.data) }

// OpenAt returns a pooled Reader positioned at the start of the blob at
// the given heap offset. The blob's compressed length prefix is consumed
// here; the Reader sees only the blob contents. Callers must Close the
// Reader on every path.
func (h *Heap) OpenAt(offset uint32) (*Reader, error) {
	if int64(offset) >= int64(len(h.data)) {
		return nil, fmt.Errorf("blob: offset %d out of bounds (heap size %d)", offset, len(h.data))
	}

	// Decode the length prefix with a throwaway cursor so the pooled
	// reader can be scoped to the blob contents alone.
	prefix := Reader{data: h.data, pos: int(offset)}
	length, err := prefix.ReadCompressedUint32()
	if err != nil {
		return nil, err
	}
	start := prefix.Position()
	if int64(start)+int64(length) > int64(len(h.data)) {
		return nil, fmt.Errorf("blob: blob at offset %d overruns heap (length %d, heap size %d)", offset, length, len(h.data))
	}

	r := h.pool.Get().(*Reader)
	r.data = h.data[start : start+int(length)]
	r.pos = 0
	return r, nil
}

// BytesAt returns the raw contents of the blob at the given offset, or
// nil when the offset or length prefix is invalid. Used by callers that
// keep the undecoded bytes when structured decoding fails.
func (h *Heap) BytesAt(offset uint32) []byte {
	r, err := h.OpenAt(offset)
	if err != nil {
		return nil
	}
	defer r.Close()
	return r.Data()
}

func (h *Heap) release(r *Reader) {
	r.data = nil
	r.pos = 0
	h.pool.Put(r)
}
