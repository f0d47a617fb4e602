package client

import (
	"github.com/sirupsen/logrus"

	"github.com/promagg/promagg/pkg/codec"
	"github.com/promagg/promagg/pkg/transport"
)

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger. The default is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTransport replaces the UDP transport.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithEncoder replaces the JSON encoder.
func WithEncoder(e codec.Encoder) Option {
	return func(c *Client) {
		c.encoder = e
	}
}

// WithCompressor replaces the gzip compressor. A nil compressor is only accepted while
// compression is disabled.
func WithCompressor(comp codec.Compressor) Option {
	return func(c *Client) {
		c.compressor = comp
	}
}
