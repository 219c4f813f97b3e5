package terminal

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Capabilities summarises what the current terminal can do.
type Capabilities struct {
	Term        Terminal
	Protocol    GraphicsProtocol
	Size        Size
	TrueColor   bool
	SSH         bool
	Interactive bool // stdin and stdout are both terminals
}

// Probe detects the terminal and selects a graphics protocol, honouring
// override ("auto" or empty to detect).
func Probe(override string) Capabilities {
	t := Detect()
	ssh := IsSSH(os.Getenv)

	trueColor := t.SupportsTrueColor()
	if ct := os.Getenv("COLORTERM"); ct == "truecolor" || ct == "24bit" {
		trueColor = true
	}

	return Capabilities{
		Term:        t,
		Protocol:    SelectProtocolWithOverride(t, ssh, override),
		Size:        GetSize(),
		TrueColor:   trueColor,
		SSH:         ssh,
		Interactive: IsTerminal(os.Stdin) && IsTerminal(os.Stdout),
	}
}

// IsTerminal reports whether f is attached to a terminal, including Cygwin
// and MSYS pseudo terminals.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
