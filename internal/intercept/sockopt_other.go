//go:build unix && !linux

package intercept

import (
	"golang.org/x/sys/unix"
)

// isInet4StreamSocket reports whether fd is an IPv4 byte-stream socket.
// SO_DOMAIN is Linux-only; elsewhere the socket's own local address family
// answers the same question.
func isInet4StreamSocket(fd int) bool {
	typ, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_TYPE)
	if err != nil || typ != unix.SOCK_STREAM {
		return false
	}

	sa, err := unix.Getsockname(fd)
	if err != nil {
		return false
	}
	_, ok := sa.(*unix.SockaddrInet4)
	return ok
}
