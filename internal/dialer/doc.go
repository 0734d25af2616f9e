package dialer

// Package dialer exposes the interceptor through the standard DialContext
// shape, so ordinary Go code can gain SOCKS4 redirection without handling
// raw file descriptors.
//
// The context covers target resolution only. Once SOCKS4 negotiation
// starts it runs to completion, matching the interceptor's no-timeout
// semantics.
