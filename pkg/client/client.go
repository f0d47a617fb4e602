// Package client sends metric observations to the aggregator, one UDP datagram per observation.
package client

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/promagg/promagg"
	"github.com/promagg/promagg/pkg/codec"
	"github.com/promagg/promagg/pkg/transport"
)

// Client encodes observations, optionally compresses them, and hands them to the transport.
// Send may be called concurrently, including with Configure.
type Client struct {
	logger     logrus.FieldLogger
	encoder    codec.Encoder
	compressor codec.Compressor

	mu        sync.RWMutex
	settings  Settings
	transport transport.Transport
	// ownTransport is set when transport was built from settings and must follow them.
	ownTransport bool
}

var _ promagg.Sender = (*Client)(nil)

// New validates settings and creates a Client. It returns a *promagg.ConfigError for invalid
// settings and a *promagg.EnvironmentError when a required capability was removed via options.
func New(settings Settings, options ...Option) (*Client, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	defaultTransport := transport.NewUDPTransport(settings.ReceiveTimeout)
	c := &Client{
		logger:     logrus.StandardLogger(),
		encoder:    codec.JSONEncoder{},
		compressor: codec.GzipCompressor{},
		settings:   settings,
		transport:  defaultTransport,
	}
	for _, opt := range options {
		opt(c)
	}
	c.ownTransport = c.transport == transport.Transport(defaultTransport)
	if err := c.checkCapabilities(settings); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"address":           settings.Address(),
		"compression-level": settings.CompressionLevel,
		"receive-timeout":   settings.ReceiveTimeout,
	}).Info("created client")
	return c, nil
}

// NewFromViper creates a Client using configuration provided by Viper.
func NewFromViper(v *viper.Viper, options ...Option) (*Client, error) {
	return New(SettingsFromViper(v), options...)
}

// checkCapabilities must be called with mu held once the Client is shared.
func (c *Client) checkCapabilities(settings Settings) error {
	if c.transport == nil {
		return &promagg.EnvironmentError{Capability: "UDP transport"}
	}
	if c.encoder == nil {
		return &promagg.EnvironmentError{Capability: "JSON encoder"}
	}
	if settings.Compressed() && c.compressor == nil {
		return &promagg.EnvironmentError{Capability: "gzip compressor"}
	}
	return nil
}

// Configure validates settings and replaces the current ones. On error the current
// settings are kept. No network I/O happens here.
func (c *Client) Configure(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkCapabilities(settings); err != nil {
		return err
	}
	c.settings = settings
	if c.ownTransport {
		c.transport = transport.NewUDPTransport(settings.ReceiveTimeout)
	}
	c.logger.WithFields(logrus.Fields{
		"address":           settings.Address(),
		"compression-level": settings.CompressionLevel,
	}).Debug("reconfigured client")
	return nil
}

// Settings returns the current settings.
func (c *Client) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Send emits one observation as a single datagram. labels may be nil, in which case
// an empty label set is sent. The datagram is sent at most once: a *promagg.TransportError
// means the send failed and nothing will be retried.
func (c *Client) Send(name string, value promagg.Value, labels promagg.Labels) error {
	if name == "" {
		return &promagg.ConfigError{Problems: errors.New("metric name is empty")}
	}

	c.mu.RLock()
	settings, tr := c.settings, c.transport
	c.mu.RUnlock()

	payload, err := c.encoder.Encode(promagg.NewObservation(name, value, labels))
	if err != nil {
		return fmt.Errorf("error encoding %q: %v", name, err)
	}
	if settings.Compressed() {
		payload, err = c.compressor.Compress(payload, settings.CompressionLevel)
		if err != nil {
			return fmt.Errorf("error compressing %q: %v", name, err)
		}
	}

	if err = tr.Send(settings.Address(), payload); err != nil {
		c.logger.WithError(err).WithField("name", name).Debug("failed to send observation")
		return err
	}
	return nil
}
