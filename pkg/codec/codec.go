// Package codec turns observations into datagram payloads and back.
package codec

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/promagg/promagg"
	"github.com/promagg/promagg/pkg/pool"
)

const (
	// Observations are small, a few hundred bytes at most.
	initialBufferSize = 512
	maxRetainedBuffer = 64 * 1024
)

var buffers = pool.NewBytesBuffer(initialBufferSize, maxRetainedBuffer)

var jsonConfig = jsoniter.Config{
	EscapeHTML: false,
}.Froze()

// Encoder serializes an observation.
type Encoder interface {
	Encode(o *promagg.Observation) ([]byte, error)
}

// Compressor compresses a payload at the given level.
type Compressor interface {
	Compress(data []byte, level int) ([]byte, error)
}
