//go:build unix

package intercept

import (
	"golang.org/x/sys/unix"
)

// RealConnect returns the platform's connection-establishing primitive. The
// rest of the package depends only on the resulting ConnectFunc, not on how
// it was obtained, so ports to other platforms only need to supply their
// own version of this lookup.
func RealConnect() ConnectFunc {
	return unix.Connect
}
