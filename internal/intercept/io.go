package intercept

import (
	"errors"

	"golang.org/x/sys/unix"
)

// errPeerClosed marks a proxy that hung up before the full handshake reply
// arrived.
var errPeerClosed = errors.New("intercept: proxy closed connection mid-handshake")

// cursor is a position-tracked view over a fixed-size wire buffer, shared
// by the complete-write and complete-read loops.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) rest() []byte  { return c.buf[c.off:] }
func (c *cursor) advance(n int) { c.off += n }
func (c *cursor) done() bool    { return c.off == len(c.buf) }

// writeFull writes all of buf to fd. Interrupted or would-block results are
// retried; the socket is in blocking mode here, so those are rare. Any
// other failure aborts.
func writeFull(fd int, buf []byte) error {
	cur := cursor{buf: buf}
	for !cur.done() {
		n, err := unix.Write(fd, cur.rest())
		if err == unix.EINTR || err == unix.EAGAIN {
			continue
		}
		if err != nil {
			return err
		}
		cur.advance(n)
	}
	return nil
}

// readFull reads exactly len(buf) bytes from fd into buf, retrying
// interrupted or would-block results. A zero-length read before the buffer
// fills means the peer closed early.
func readFull(fd int, buf []byte) error {
	cur := cursor{buf: buf}
	for !cur.done() {
		n, err := unix.Read(fd, cur.rest())
		if err == unix.EINTR || err == unix.EAGAIN {
			continue
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return errPeerClosed
		}
		cur.advance(n)
	}
	return nil
}
