package intercept

import (
	"context"
	"net"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// ConnectFunc is the real connection-establishing primitive. Every
// passthrough call and every transport attempt to a proxy candidate goes
// through it.
type ConnectFunc func(fd int, sa unix.Sockaddr) error

// Config is the process-wide interception state: the resolved connect
// primitive and the ordered candidate proxy endpoints. A Config is never
// mutated after construction, so concurrent Connect calls share it without
// locking.
type Config struct {
	connect   ConnectFunc
	endpoints []unix.SockaddrInet4
}

// New builds a Config around connect and the given candidate endpoints. An
// empty endpoint list is valid and means every call passes through.
//
// Interception cannot function without a connect primitive to delegate to,
// so a nil connect panics.
func New(connect ConnectFunc, endpoints []unix.SockaddrInet4) *Config {
	if connect == nil {
		panic("intercept: no connect primitive available")
	}
	return &Config{
		connect:   connect,
		endpoints: append([]unix.SockaddrInet4(nil), endpoints...),
	}
}

// Enabled reports whether any proxy endpoint is configured.
func (c *Config) Enabled() bool { return len(c.endpoints) > 0 }

var (
	processOnce sync.Once
	process     *Config
)

// Process returns the process-wide Config, built on first use from the
// platform connect primitive and the environment. Later environment changes
// are not observed.
func Process() *Config {
	processOnce.Do(func() {
		process = New(RealConnect(), EndpointsFromEnv())
	})
	return process
}

// EndpointsFromEnv resolves SOCKS_SERVER and SOCKS_PORT into candidate
// proxy endpoints. SOCKS_PORT defaults to the "socks" service. An unset
// SOCKS_SERVER yields nil, leaving the interceptor in permanent
// passthrough.
func EndpointsFromEnv() []unix.SockaddrInet4 {
	host := os.Getenv("SOCKS_SERVER")
	if host == "" {
		return nil
	}

	service := os.Getenv("SOCKS_PORT")
	if service == "" {
		service = "socks"
	}

	return ResolveEndpoints(host, service)
}

// ResolveEndpoints resolves host and service (a port number or service
// name) into an ordered list of IPv4 endpoints. Failures are deliberately
// silent: a host that does not resolve behaves exactly like no host at all.
func ResolveEndpoints(host, service string) []unix.SockaddrInet4 {
	ctx := context.Background()

	port, err := net.DefaultResolver.LookupPort(ctx, "tcp", service)
	if err != nil {
		return nil
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil
	}

	var endpoints []unix.SockaddrInet4
	for _, a := range addrs {
		ip4 := a.IP.To4()
		if ip4 == nil {
			continue
		}
		sa := unix.SockaddrInet4{Port: port}
		copy(sa.Addr[:], ip4)
		endpoints = append(endpoints, sa)
	}
	return endpoints
}
