package pool

import (
	"bytes"
	"sync"
)

// BytesBuffer is a strongly typed wrapper around a sync.Pool for *bytes.Buffer.
// Buffers that grew past maxRetained are dropped instead of being returned to the pool.
type BytesBuffer struct {
	p           sync.Pool
	maxRetained int
}

// NewBytesBuffer returns a pool of buffers pre-grown to initialSize.
func NewBytesBuffer(initialSize, maxRetained int) *BytesBuffer {
	return &BytesBuffer{
		p: sync.Pool{
			New: func() interface{} {
				buf := &bytes.Buffer{}
				buf.Grow(initialSize)
				return buf
			},
		},
		maxRetained: maxRetained,
	}
}

// Get returns an empty buffer.
func (p *BytesBuffer) Get() *bytes.Buffer {
	buffer := p.p.Get().(*bytes.Buffer)
	buffer.Reset()
	return buffer
}

// Put returns b to the pool. b must not be used afterwards.
func (p *BytesBuffer) Put(b *bytes.Buffer) {
	if p.maxRetained > 0 && b.Cap() > p.maxRetained {
		return
	}
	p.p.Put(b)
}

// Detach copies the content of b into a new slice, and returns b to the pool.
func (p *BytesBuffer) Detach(b *bytes.Buffer) []byte {
	data := make([]byte, b.Len())
	copy(data, b.Bytes())
	p.Put(b)
	return data
}
