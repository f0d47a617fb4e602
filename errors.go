package promagg

import (
	"errors"
	"fmt"
	"syscall"
)

// ConfigError is returned when the supplied settings are invalid. Problems holds every
// problem found, combined with multierr.
type ConfigError struct {
	Problems error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Problems)
}

func (e *ConfigError) Unwrap() error {
	return e.Problems
}

// EnvironmentError is returned when a capability the client needs has not been provided.
type EnvironmentError struct {
	Capability string
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%s is not available", e.Capability)
}

// TransportError is returned when a socket could not be created or a datagram could not be sent.
type TransportError struct {
	Op   string // "socket" or "send"
	Addr string
	Code int // OS error number, 0 when unknown
	Err  error
}

// NewTransportError wraps err, extracting the OS error number if there is one in the chain.
func NewTransportError(op, addr string, err error) *TransportError {
	te := &TransportError{
		Op:   op,
		Addr: addr,
		Err:  err,
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		te.Code = int(errno)
	}
	return te
}

func (e *TransportError) Error() string {
	switch e.Op {
	case "socket":
		return fmt.Sprintf("couldn't create socket: [%d] %v", e.Code, e.Err)
	default:
		return fmt.Sprintf("could not send data to %s: [%d] %v", e.Addr, e.Code, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
