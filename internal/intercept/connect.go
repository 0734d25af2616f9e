package intercept

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/sockshim/sockshim/internal/socks4"
)

// errDenied marks a proxy that answered the handshake with a non-grant
// status. The refusal is opaque; no further reason is surfaced.
var errDenied = errors.New("intercept: proxy denied request")

// Connect establishes a stream connection on fd to sa, tunneling eligible
// targets through the configured SOCKS4 proxy. For ineligible targets, or
// when no proxy is configured, it behaves exactly like the real connect
// primitive, errors included.
//
// On a failed negotiation the socket is shut down in both directions and a
// unix.Errno is returned, matching the error convention of the primitive.
func (c *Config) Connect(fd int, sa unix.Sockaddr) error {
	target, ok := c.eligible(fd, sa)
	if !ok {
		return c.connect(fd, sa)
	}
	return c.tunnel(fd, target)
}

// Connect calls the process-wide Config's Connect.
func Connect(fd int, sa unix.Sockaddr) error {
	return Process().Connect(fd, sa)
}

// eligible decides whether a connect call should be tunneled. Only fully
// specified, routable, stream-oriented IPv4 targets qualify; everything
// else belongs to the real primitive.
func (c *Config) eligible(fd int, sa unix.Sockaddr) (*unix.SockaddrInet4, bool) {
	if len(c.endpoints) == 0 || fd < 0 || sa == nil {
		return nil, false
	}

	target, ok := sa.(*unix.SockaddrInet4)
	if !ok || target == nil {
		return nil, false
	}

	if !routable(target.Addr) {
		return nil, false
	}

	if !isInet4StreamSocket(fd) {
		return nil, false
	}

	return target, true
}

// routable rejects addresses that must never be redirected through a remote
// proxy.
func routable(addr [4]byte) bool {
	switch {
	case addr == [4]byte{0, 0, 0, 0}:
		return false
	case addr == [4]byte{255, 255, 255, 255}:
		return false
	case addr[0]&0xf0 == 0xe0: // 224.0.0.0/4 multicast
		return false
	case addr[0] == 127:
		return false
	}
	return true
}

// tunnel connects fd to one of the candidate proxies and negotiates a
// SOCKS4 CONNECT to target. The socket's blocking mode is restored on every
// exit path; on failure the socket is also shut down so the caller never
// observes a half-negotiated connection.
func (c *Config) tunnel(fd int, target *unix.SockaddrInet4) error {
	mode := captureMode(fd)
	// Negotiation is written against blocking semantics only.
	mode.forceBlocking(fd)

	err := c.dialProxy(fd)
	if err == nil {
		err = c.negotiate(fd, target)
	}

	mode.restore(fd)

	if err != nil {
		_ = unix.Shutdown(fd, unix.SHUT_RDWR)
		return failureErrno(err)
	}
	return nil
}

// dialProxy tries the candidate endpoints strictly in their resolved order,
// reusing the caller's own socket, and stops at the first that accepts. The
// caller guarantees the list is non-empty.
func (c *Config) dialProxy(fd int) error {
	var err error
	for i := range c.endpoints {
		sa := c.endpoints[i]
		if err = c.connect(fd, &sa); err == nil {
			return nil
		}
	}
	return err
}

// negotiate performs the fixed-size SOCKS4 CONNECT exchange on a socket
// already connected to the proxy. A refusal is never retried against
// another candidate.
func (c *Config) negotiate(fd int, target *unix.SockaddrInet4) error {
	req := socks4.Request{Port: uint16(target.Port), Addr: target.Addr}
	msg, err := req.MarshalBinary()
	if err != nil {
		return err
	}
	if err := writeFull(fd, msg); err != nil {
		return err
	}

	buf := make([]byte, socks4.ReplyLen)
	if err := readFull(fd, buf); err != nil {
		return err
	}

	var rep socks4.Reply
	if err := rep.UnmarshalBinary(buf); err != nil {
		return err
	}
	if !rep.Status.Granted() {
		return errDenied
	}
	return nil
}

// failureErrno maps a negotiation failure onto the errno convention of the
// real primitive: a recorded errno is kept, anything else reports as a
// refused connection.
func failureErrno(err error) error {
	var errno unix.Errno
	if errors.As(err, &errno) && errno != 0 {
		return errno
	}
	return unix.ECONNREFUSED
}
