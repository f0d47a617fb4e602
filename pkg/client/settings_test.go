package client

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/promagg/promagg"
)

func TestSettingsValidate(t *testing.T) {
	t.Parallel()
	valid := NewSettings("localhost", 8191)
	tests := []struct {
		name    string
		mutate  func(*Settings)
		failure string
	}{
		{"valid", func(s *Settings) {}, ""},
		{"compression disabled", func(s *Settings) { s.CompressionLevel = 0 }, ""},
		{"max compression", func(s *Settings) { s.CompressionLevel = 9 }, ""},
		{"max port", func(s *Settings) { s.Port = 65535 }, ""},
		{"no receive timeout", func(s *Settings) { s.ReceiveTimeout = 0 }, ""},
		{"empty host", func(s *Settings) { s.Host = "" }, "host is empty"},
		{"zero port", func(s *Settings) { s.Port = 0 }, "port is empty"},
		{"port too large", func(s *Settings) { s.Port = 70000 }, "port must be between"},
		{"negative port", func(s *Settings) { s.Port = -1 }, "port must be between"},
		{"negative compression", func(s *Settings) { s.CompressionLevel = -1 }, "compression level"},
		{"compression too large", func(s *Settings) { s.CompressionLevel = 10 }, "compression level"},
		{"negative receive timeout", func(s *Settings) { s.ReceiveTimeout = -time.Second }, "receive timeout"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := valid
			tc.mutate(&s)
			err := s.Validate()
			if tc.failure == "" {
				require.NoError(t, err)
				return
			}
			var ce *promagg.ConfigError
			require.True(t, errors.As(err, &ce), "expected ConfigError, got %v", err)
			assert.Contains(t, err.Error(), tc.failure)
		})
	}
}

func TestSettingsValidateReportsAllProblems(t *testing.T) {
	t.Parallel()
	err := Settings{Host: "", Port: 70000, CompressionLevel: 10}.Validate()
	var ce *promagg.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Len(t, multierr.Errors(ce.Problems), 3)
}

func TestNewSettingsDefaults(t *testing.T) {
	t.Parallel()
	s := NewSettings("localhost", 8191)
	assert.Equal(t, promagg.DefaultCompressionLevel, s.CompressionLevel)
	assert.Equal(t, promagg.DefaultReceiveTimeout, s.ReceiveTimeout)
	assert.Equal(t, "localhost:8191", s.Address())
	assert.True(t, s.Compressed())
}

func TestSettingsAddressIPv6(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "[::1]:8191", NewSettings("::1", 8191).Address())
}

func TestSettingsFromViper(t *testing.T) {
	t.Parallel()
	v := viper.New()
	s := SettingsFromViper(v)
	assert.Equal(t, Settings{
		Host:             promagg.DefaultHost,
		Port:             promagg.DefaultPort,
		CompressionLevel: promagg.DefaultCompressionLevel,
		ReceiveTimeout:   promagg.DefaultReceiveTimeout,
	}, s)

	v.Set(promagg.ParamHost, "aggregator.example")
	v.Set(promagg.ParamPort, 9000)
	v.Set(promagg.ParamCompressionLevel, 0)
	v.Set(promagg.ParamReceiveTimeout, "1ms")
	s = SettingsFromViper(v)
	assert.Equal(t, Settings{
		Host:             "aggregator.example",
		Port:             9000,
		CompressionLevel: 0,
		ReceiveTimeout:   time.Millisecond,
	}, s)
}
