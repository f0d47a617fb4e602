// Package transport sends datagram payloads to the aggregator.
package transport

import (
	"fmt"
	"net"
	"time"

	"github.com/promagg/promagg"
)

// Transport delivers one payload to addr.
type Transport interface {
	Send(addr string, payload []byte) error
}

// SocketFactory is an indirection layer over net.ListenPacket() to allow for different implementations.
type SocketFactory func() (net.PacketConn, error)

// Resolver turns a "host:port" address into a UDP address.
type Resolver func(addr string) (*net.UDPAddr, error)

// UDPTransport opens a fresh unconnected socket for every payload, writes it as a single
// datagram, and closes the socket. Nothing is ever read from the socket.
type UDPTransport struct {
	SocketFactory SocketFactory
	Resolver      Resolver
	// ReceiveTimeout is applied as a read deadline, so an implicit receive can't block.
	ReceiveTimeout time.Duration
}

var _ Transport = (*UDPTransport)(nil)

// NewUDPTransport returns a UDPTransport using the OS sockets and resolver.
func NewUDPTransport(receiveTimeout time.Duration) *UDPTransport {
	return &UDPTransport{
		SocketFactory:  ListenUDP,
		Resolver:       ResolveUDP,
		ReceiveTimeout: receiveTimeout,
	}
}

// ListenUDP opens a UDP socket on an ephemeral port.
func ListenUDP() (net.PacketConn, error) {
	return net.ListenPacket("udp", ":0")
}

// ResolveUDP resolves addr with the default resolver.
func ResolveUDP(addr string) (*net.UDPAddr, error) {
	return net.ResolveUDPAddr("udp", addr)
}

// Send implements Transport.
func (t *UDPTransport) Send(addr string, payload []byte) error {
	conn, err := t.SocketFactory()
	if err != nil {
		return promagg.NewTransportError("socket", addr, err)
	}
	defer func() {
		_ = conn.Close() // the datagram has already left or failed
	}()

	if t.ReceiveTimeout > 0 {
		// Best effort, the socket is never read from.
		_ = conn.SetReadDeadline(time.Now().Add(t.ReceiveTimeout))
	}

	udpAddr, err := t.Resolver(addr)
	if err != nil {
		return promagg.NewTransportError("send", addr, err)
	}

	n, err := conn.WriteTo(payload, udpAddr)
	if err != nil {
		return promagg.NewTransportError("send", addr, err)
	}
	if n != len(payload) {
		return promagg.NewTransportError("send", addr, fmt.Errorf("short write: %d of %d bytes", n, len(payload)))
	}
	return nil
}
