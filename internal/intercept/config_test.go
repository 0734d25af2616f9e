package intercept

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestNewRequiresConnectPrimitive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil connect primitive")
		}
	}()
	New(nil, nil)
}

func TestNewCopiesEndpoints(t *testing.T) {
	endpoints := []unix.SockaddrInet4{{Port: 1080, Addr: [4]byte{10, 0, 0, 1}}}
	cfg := New(RealConnect(), endpoints)

	endpoints[0].Port = 9999

	if cfg.endpoints[0].Port != 1080 {
		t.Fatal("config observed a mutation of the caller's slice")
	}
}

func TestEndpointsFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		server  string
		port    string
		wantLen int
	}{
		{
			name: "unset server means passthrough",
		},
		{
			name:    "numeric port",
			server:  "127.0.0.1",
			port:    "1080",
			wantLen: 1,
		},
		{
			name:   "unresolvable host is silently empty",
			server: "proxy.host.invalid",
			port:   "1080",
		},
		{
			name:   "unresolvable service is silently empty",
			server: "127.0.0.1",
			port:   "no-such-service-name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SOCKS_SERVER", tt.server)
			t.Setenv("SOCKS_PORT", tt.port)

			got := EndpointsFromEnv()
			if len(got) != tt.wantLen {
				t.Fatalf("got %d endpoints, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 {
				if got[0].Port != 1080 || got[0].Addr != [4]byte{127, 0, 0, 1} {
					t.Fatalf("got %+v", got[0])
				}
			}
		})
	}
}

func TestResolveEndpointsOrder(t *testing.T) {
	got := ResolveEndpoints("127.0.0.1", "1080")
	if len(got) != 1 {
		t.Fatalf("got %d endpoints, want 1", len(got))
	}
	if got[0].Addr != [4]byte{127, 0, 0, 1} || got[0].Port != 1080 {
		t.Fatalf("got %+v", got[0])
	}
}
