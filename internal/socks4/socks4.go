package socks4

import (
	"encoding/binary"
	"fmt"
)

const (
	// Version is the SOCKS protocol version spoken here.
	Version = 0x04

	// CmdConnect asks the proxy to establish a stream connection.
	CmdConnect = 0x01

	// RequestLen is the size of a CONNECT request with an empty user id.
	RequestLen = 9

	// ReplyLen is the size of every SOCKS4 reply.
	ReplyLen = 8
)

// Status is the result code carried in byte 1 of a reply.
type Status byte

// Reply status codes defined by the SOCKS4 protocol.
const (
	StatusGranted        Status = 0x5a
	StatusRejected       Status = 0x5b
	StatusNoIdentd       Status = 0x5c
	StatusIdentdMismatch Status = 0x5d
)

// Granted reports whether the proxy accepted the request. Anything other
// than the exact grant code is a refusal.
func (s Status) Granted() bool { return s == StatusGranted }

func (s Status) String() string {
	switch s {
	case StatusGranted:
		return "request granted"
	case StatusRejected:
		return "request rejected or failed"
	case StatusNoIdentd:
		return "identd unreachable"
	case StatusIdentdMismatch:
		return "identd user-id mismatch"
	default:
		return fmt.Sprintf("unknown status 0x%02x", byte(s))
	}
}

// Request is a SOCKS4 CONNECT request for an IPv4 target. The user id on
// the wire is always empty.
type Request struct {
	Port uint16
	Addr [4]byte
}

// MarshalBinary encodes the request into its exact 9-byte wire form:
// version, command, port (big endian), address, null user-id terminator.
func (r Request) MarshalBinary() ([]byte, error) {
	b := make([]byte, RequestLen)
	b[0] = Version
	b[1] = CmdConnect
	binary.BigEndian.PutUint16(b[2:4], r.Port)
	copy(b[4:8], r.Addr[:])
	b[8] = 0x00
	return b, nil
}

// Reply is a SOCKS4 server reply. Only the status byte carries meaning; the
// version byte and the bound address fields are ignored, as the protocol
// requires.
type Reply struct {
	Status Status
}

// UnmarshalBinary decodes an 8-byte reply, rejecting any other length.
func (p *Reply) UnmarshalBinary(b []byte) error {
	if len(b) != ReplyLen {
		return fmt.Errorf("socks4: reply is %d bytes, want %d", len(b), ReplyLen)
	}
	p.Status = Status(b[1])
	return nil
}
