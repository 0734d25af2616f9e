package dialer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"

	"github.com/sockshim/sockshim/internal/intercept"
)

// Dialer mirrors the net.Dialer interface.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

type interceptDialer struct {
	cfg      *intercept.Config
	resolver *net.Resolver
}

// New returns a Dialer that establishes IPv4 TCP connections through cfg.
// Whether a given connection is tunneled or direct is cfg's decision; the
// returned Dialer behaves identically either way.
func New(cfg *intercept.Config) Dialer {
	return &interceptDialer{cfg: cfg, resolver: net.DefaultResolver}
}

func (d *interceptDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	switch network {
	case "tcp", "tcp4":
	default:
		return nil, fmt.Errorf("dial %s %s: unsupported network", network, address)
	}

	sa, err := d.resolveTarget(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("dial %s %s: %w", network, address, err)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("dial %s %s: socket: %w", network, address, err)
	}

	if err := d.cfg.Connect(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("dial %s %s: %w", network, address, err)
	}

	f := os.NewFile(uintptr(fd), address)
	conn, err := net.FileConn(f)
	// FileConn duplicates the descriptor; the original is no longer needed.
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("dial %s %s: %w", network, address, err)
	}
	return conn, nil
}

// resolveTarget resolves address into a raw IPv4 sockaddr, preferring the
// first A record the resolver returns.
func (d *interceptDialer) resolveTarget(ctx context.Context, address string) (*unix.SockaddrInet4, error) {
	host, service, err := net.SplitHostPort(address)
	if err != nil {
		return nil, err
	}

	port, err := d.resolver.LookupPort(ctx, "tcp", service)
	if err != nil {
		return nil, err
	}

	addrs, err := d.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}

	for _, a := range addrs {
		ip4 := a.IP.To4()
		if ip4 == nil {
			continue
		}
		sa := &unix.SockaddrInet4{Port: port}
		copy(sa.Addr[:], ip4)
		return sa, nil
	}
	return nil, errors.New("no IPv4 address")
}
