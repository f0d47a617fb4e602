package client

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/promagg/promagg"
)

// Settings is the destination and encoding configuration of a Client.
type Settings struct {
	Host string
	Port int
	// CompressionLevel is the gzip level, 0 disables compression.
	CompressionLevel int
	// ReceiveTimeout is the read deadline put on every send socket.
	ReceiveTimeout time.Duration
}

// NewSettings returns Settings for host:port with the default compression level and receive timeout.
func NewSettings(host string, port int) Settings {
	return Settings{
		Host:             host,
		Port:             port,
		CompressionLevel: promagg.DefaultCompressionLevel,
		ReceiveTimeout:   promagg.DefaultReceiveTimeout,
	}
}

// SettingsFromViper reads Settings from v, using the promagg.Param* keys.
func SettingsFromViper(v *viper.Viper) Settings {
	v.SetDefault(promagg.ParamHost, promagg.DefaultHost)
	v.SetDefault(promagg.ParamPort, promagg.DefaultPort)
	v.SetDefault(promagg.ParamCompressionLevel, promagg.DefaultCompressionLevel)
	v.SetDefault(promagg.ParamReceiveTimeout, promagg.DefaultReceiveTimeout)
	return Settings{
		Host:             v.GetString(promagg.ParamHost),
		Port:             v.GetInt(promagg.ParamPort),
		CompressionLevel: v.GetInt(promagg.ParamCompressionLevel),
		ReceiveTimeout:   v.GetDuration(promagg.ParamReceiveTimeout),
	}
}

// Validate returns a *promagg.ConfigError listing every invalid setting, or nil.
func (s Settings) Validate() error {
	var errs error
	if s.Host == "" {
		errs = multierr.Append(errs, errors.New("host is empty"))
	}
	if s.Port == 0 {
		errs = multierr.Append(errs, errors.New("port is empty"))
	} else if s.Port < 0 || s.Port > promagg.MaxPort {
		errs = multierr.Append(errs, fmt.Errorf("port must be between 0 and %d, got %d", promagg.MaxPort, s.Port))
	}
	if s.CompressionLevel < promagg.MinCompressionLevel || s.CompressionLevel > promagg.MaxCompressionLevel {
		errs = multierr.Append(errs, fmt.Errorf("compression level must be between %d and %d, got %d",
			promagg.MinCompressionLevel, promagg.MaxCompressionLevel, s.CompressionLevel))
	}
	if s.ReceiveTimeout < 0 {
		errs = multierr.Append(errs, errors.New("receive timeout must not be negative"))
	}
	if errs != nil {
		return &promagg.ConfigError{Problems: errs}
	}
	return nil
}

// Address returns host:port.
func (s Settings) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Compressed reports whether payloads are gzip compressed.
func (s Settings) Compressed() bool {
	return s.CompressionLevel > 0
}
