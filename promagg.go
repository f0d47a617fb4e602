// Package promagg holds the types shared by the aggregator client: observations, their values
// and labels, the error taxonomy, and the configuration parameters.
//
// An observation is JSON encoded as {"name":...,"value":...,"labels":{...}}, optionally gzip
// compressed, and sent as a single UDP datagram. Delivery is best-effort.
package promagg

import (
	"time"

	"github.com/spf13/pflag"
)

const (
	// DefaultHost is the default aggregator host.
	DefaultHost = "localhost"
	// DefaultPort is the default aggregator UDP port.
	DefaultPort = 8191
	// DefaultCompressionLevel is the default gzip level, 0 disables compression.
	DefaultCompressionLevel = 5
	// DefaultReceiveTimeout is the read deadline set on every send socket.
	DefaultReceiveTimeout = 200 * time.Microsecond
)

const (
	// MinCompressionLevel disables compression.
	MinCompressionLevel = 0
	// MaxCompressionLevel is the slowest and smallest gzip level.
	MaxCompressionLevel = 9
	// MaxPort is the largest valid UDP port.
	MaxPort = 65535
)

const (
	// ParamHost is the name of parameter with the aggregator host.
	ParamHost = "host"
	// ParamPort is the name of parameter with the aggregator port.
	ParamPort = "port"
	// ParamCompressionLevel is the name of parameter with the gzip level.
	ParamCompressionLevel = "compression-level"
	// ParamReceiveTimeout is the name of parameter with the socket read deadline.
	ParamReceiveTimeout = "receive-timeout"
)

// AddFlags adds flags to the specified FlagSet.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(ParamHost, DefaultHost, "Aggregator host name or address")
	fs.Int(ParamPort, DefaultPort, "Aggregator UDP port")
	fs.Int(ParamCompressionLevel, DefaultCompressionLevel, "Gzip compression level, 0 (disabled) to 9 (smallest)")
	fs.Duration(ParamReceiveTimeout, DefaultReceiveTimeout, "Read deadline set on the send socket")
}
