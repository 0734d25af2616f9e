//go:build linux

package intercept

import (
	"golang.org/x/sys/unix"
)

// isInet4StreamSocket reports whether fd is an IPv4 byte-stream socket. A
// failed option query disqualifies the socket rather than erroring: the
// call then falls through to the real primitive, which produces the
// authoritative failure.
func isInet4StreamSocket(fd int) bool {
	typ, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_TYPE)
	if err != nil || typ != unix.SOCK_STREAM {
		return false
	}

	domain, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_DOMAIN)
	return err == nil && domain == unix.AF_INET
}
