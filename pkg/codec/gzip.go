package codec

import (
	"fmt"

	"github.com/klauspost/compress/gzip"
)

// GzipCompressor wraps payloads in the standard gzip container.
type GzipCompressor struct{}

var _ Compressor = GzipCompressor{}

// Compress implements Compressor. level is 1 (fastest) to 9 (smallest).
func (GzipCompressor) Compress(data []byte, level int) ([]byte, error) {
	buf := buffers.Get()
	compressor, err := gzip.NewWriterLevel(buf, level)
	if err != nil {
		buffers.Put(buf)
		return nil, fmt.Errorf("error creating gzip writer: %v", err)
	}

	_, _ = compressor.Write(data) // error is propagated through Close
	if err = compressor.Close(); err != nil {
		buffers.Put(buf)
		return nil, fmt.Errorf("error compressing payload: %v", err)
	}
	return buffers.Detach(buf), nil
}
