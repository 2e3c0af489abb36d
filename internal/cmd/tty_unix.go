//go:build !windows

package cmd

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// minPickerColumns is the narrowest terminal the picker renders sensibly
// in.
const minPickerColumns = 20

// requireTTY verifies an interactive session can open: a controlling
// terminal exists, TERM is capable, and the window is wide enough.
func requireTTY() error {
	if os.Getenv("TERM") == "dumb" {
		return fmt.Errorf("interactive picker needs a capable terminal (TERM=dumb)")
	}

	f, err := os.Open("/dev/tty")
	if err != nil {
		return fmt.Errorf("no TTY available: %w", err)
	}
	defer f.Close()

	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return fmt.Errorf("cannot get terminal size: %w", err)
	}
	if ws.Col < minPickerColumns {
		return fmt.Errorf("terminal too narrow (%d columns, need at least %d)", ws.Col, minPickerColumns)
	}
	return nil
}
