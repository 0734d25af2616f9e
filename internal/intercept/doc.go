package intercept

// Package intercept transparently redirects outbound TCP connection
// attempts through a SOCKS4 proxy at file-descriptor level.
//
// Connect is a drop-in replacement for the platform connect primitive: calls
// that target a fully specified, routable IPv4 address on a stream socket
// are tunneled through the proxy configured via SOCKS_SERVER/SOCKS_PORT;
// everything else, including every call made while no proxy is configured,
// is delegated to the real primitive with its result returned unchanged.
//
// Negotiation carries no timeout. A proxy that accepts the transport
// connection but never replies blocks the calling goroutine indefinitely.
