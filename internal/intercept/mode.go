package intercept

import (
	"golang.org/x/sys/unix"
)

// modeSnapshot captures a socket's file status flags so blocking-mode
// coercion during negotiation can be undone on every exit path.
type modeSnapshot struct {
	flags int
	ok    bool
}

func captureMode(fd int) modeSnapshot {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return modeSnapshot{}
	}
	return modeSnapshot{flags: flags, ok: true}
}

func (m modeSnapshot) forceBlocking(fd int) {
	if m.ok {
		_, _ = unix.FcntlInt(uintptr(fd), unix.F_SETFL, m.flags&^unix.O_NONBLOCK)
	}
}

func (m modeSnapshot) restore(fd int) {
	if m.ok {
		_, _ = unix.FcntlInt(uintptr(fd), unix.F_SETFL, m.flags)
	}
}
