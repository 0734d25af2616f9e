package testutil

import (
	"context"
	"io"
	"net"
	"testing"

	"github.com/wzshiming/socks4"
	"golang.org/x/sys/unix"
)

// StartSOCKS4Server runs a real SOCKS4 proxy on a loopback port. Every
// CONNECT, regardless of the target the client asked for, is dialed via
// dial, letting tests route nominally-routable targets back to a local
// fixture.
func StartSOCKS4Server(t *testing.T, dial func(ctx context.Context, network, address string) (net.Conn, error)) net.Listener {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	srv := &socks4.Server{ProxyDial: dial}
	go func() {
		_ = srv.Serve(ln)
	}()

	t.Cleanup(func() {
		_ = ln.Close()
	})

	return ln
}

// DialFixed returns a dial function that ignores the requested address and
// always connects to addr.
func DialFixed(addr string) func(ctx context.Context, network, address string) (net.Conn, error) {
	return func(ctx context.Context, network, _ string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, network, addr)
	}
}

// SOCKS4Responder returns a StartSingleAcceptServer handler that consumes
// one CONNECT request and writes reply verbatim. A reply shorter than a
// full SOCKS4 response ends with the connection closed; a full reply keeps
// the connection open and discards whatever the client sends next.
func SOCKS4Responder(reply []byte) func(net.Conn) {
	return func(c net.Conn) {
		req := make([]byte, 9)
		if _, err := io.ReadFull(c, req); err != nil {
			return
		}
		if _, err := c.Write(reply); err != nil {
			return
		}
		if len(reply) < 8 {
			return
		}
		_, _ = io.Copy(io.Discard, c)
	}
}

// SockaddrInet4 converts a listener's loopback TCP address into the raw
// sockaddr form the interceptor consumes.
func SockaddrInet4(t *testing.T, addr net.Addr) unix.SockaddrInet4 {
	t.Helper()

	ta, ok := addr.(*net.TCPAddr)
	if !ok {
		t.Fatalf("not a TCP address: %v", addr)
	}
	ip4 := ta.IP.To4()
	if ip4 == nil {
		t.Fatalf("not an IPv4 address: %v", addr)
	}

	sa := unix.SockaddrInet4{Port: ta.Port}
	copy(sa.Addr[:], ip4)
	return sa
}
