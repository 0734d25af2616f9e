package socks4

// Package socks4 implements the fixed-size SOCKS4 CONNECT wire format used
// by sockshim.
//
// It deliberately covers only the subset the interceptor speaks: a 9-byte
// CONNECT request with an empty user id and the 8-byte reply. Field order
// and byte order are encoded explicitly rather than relying on in-memory
// struct layout, so the types here are safe to change without touching the
// wire.
//
// SOCKS4a (hostname targets) and SOCKS5 are intentionally not implemented.
