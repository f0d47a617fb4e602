// Package fakesocket provides net.PacketConn doubles for tests.
package fakesocket

import (
	"errors"
	"net"
	"sync"
	"time"
)

// FakeAddr is a fake net.Addr
var FakeAddr = &net.UDPAddr{
	IP:   net.IPv4(127, 0, 0, 1),
	Port: 8181,
}

// Datagram is a payload written to a RecordingPacketConn.
type Datagram struct {
	Payload []byte
	Addr    net.Addr
}

// RecordingPacketConn is a fake net.PacketConn which records every datagram written to it.
// It may be shared by several sockets created from the same Factory, Close only counts.
type RecordingPacketConn struct {
	// WriteErr, if set, is returned from every WriteTo.
	WriteErr error
	// ShortWrite, if set, makes WriteTo report one byte less than it was given.
	ShortWrite bool

	mu           sync.Mutex
	datagrams    []Datagram
	writes       int
	closes       int
	readDeadline time.Time
}

func NewRecordingPacketConn() *RecordingPacketConn {
	return &RecordingPacketConn{}
}

// ReadFrom never has anything to read.
func (c *RecordingPacketConn) ReadFrom(b []byte) (int, net.Addr, error) {
	return 0, nil, errors.New("nothing to read")
}

// WriteTo records b unless WriteErr is set.
func (c *RecordingPacketConn) WriteTo(b []byte, addr net.Addr) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
	if c.WriteErr != nil {
		return 0, c.WriteErr
	}
	payload := make([]byte, len(b))
	copy(payload, b)
	c.datagrams = append(c.datagrams, Datagram{Payload: payload, Addr: addr})
	if c.ShortWrite && len(b) > 0 {
		return len(b) - 1, nil
	}
	return len(b), nil
}

// Close counts calls.
func (c *RecordingPacketConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

// LocalAddr dummy impl.
func (c *RecordingPacketConn) LocalAddr() net.Addr { return FakeAddr }

// SetDeadline dummy impl.
func (c *RecordingPacketConn) SetDeadline(t time.Time) error { return nil }

// SetReadDeadline records t.
func (c *RecordingPacketConn) SetReadDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readDeadline = t
	return nil
}

// SetWriteDeadline dummy impl.
func (c *RecordingPacketConn) SetWriteDeadline(t time.Time) error { return nil }

// Datagrams returns the datagrams written so far.
func (c *RecordingPacketConn) Datagrams() []Datagram {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Datagram(nil), c.datagrams...)
}

// Writes returns the number of WriteTo calls, successful or not.
func (c *RecordingPacketConn) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

// Closes returns the number of Close calls.
func (c *RecordingPacketConn) Closes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes
}

// ReadDeadline returns the last read deadline set.
func (c *RecordingPacketConn) ReadDeadline() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readDeadline
}

// Factory is a replacement for net.ListenPacket() that hands out conn every time.
type Factory struct {
	conn  net.PacketConn
	err   error
	mu    sync.Mutex
	calls int
}

// NewFactory returns a Factory producing conn.
func NewFactory(conn net.PacketConn) *Factory {
	return &Factory{conn: conn}
}

// NewFailingFactory returns a Factory which always fails with err.
func NewFailingFactory(err error) *Factory {
	return &Factory{err: err}
}

// Socket has the signature of transport.SocketFactory.
func (f *Factory) Socket() (net.PacketConn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.conn, nil
}

// Calls returns how many sockets were requested.
func (f *Factory) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
