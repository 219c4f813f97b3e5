package terminal

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"golang.org/x/sys/unix"
)

// Size is the terminal size in cells and, when known, pixels.
type Size struct {
	Cols   int
	Rows   int
	PixelW int // 0 if unknown
	PixelH int // 0 if unknown
	CellW  int // pixel width per cell, 0 if unknown
	CellH  int // pixel height per cell, 0 if unknown
}

// GetSize returns the terminal size, trying in order: TIOCGWINSZ on stdout
// and stderr, x/term on stdin, COLUMNS/LINES, then 80x24.
func GetSize() Size {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if s := sizeFromIoctl(f.Fd()); s.Cols > 0 && s.Rows > 0 {
			return s
		}
	}
	if w, h, err := term.GetSize(os.Stdin.Fd()); err == nil && w > 0 && h > 0 {
		return Size{Cols: w, Rows: h}
	}
	return sizeFromEnv(os.Getenv)
}

// sizeFromIoctl returns a zero Size when the ioctl fails.
func sizeFromIoctl(fd uintptr) Size {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}
	}
	s := Size{
		Cols:   int(ws.Col),
		Rows:   int(ws.Row),
		PixelW: int(ws.Xpixel),
		PixelH: int(ws.Ypixel),
	}
	if s.PixelW > 0 && s.Cols > 0 {
		s.CellW = s.PixelW / s.Cols
	}
	if s.PixelH > 0 && s.Rows > 0 {
		s.CellH = s.PixelH / s.Rows
	}
	return s
}

func sizeFromEnv(getenv func(string) string) Size {
	return Size{
		Cols: envInt(getenv, "COLUMNS", 80),
		Rows: envInt(getenv, "LINES", 24),
	}
}

// envInt returns fallback unless the variable holds a positive integer.
func envInt(getenv func(string) string, name string, fallback int) int {
	n, err := strconv.Atoi(getenv(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
