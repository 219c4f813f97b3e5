// Package terminal detects the terminal emulator, picks the graphics
// protocol used to paint the canvas and queries the terminal size.
//
// Detection only inspects environment variables; it performs no terminal
// queries and no I/O beyond the size ioctl.
package terminal

import (
	"os"
	"strings"
)

// Terminal identifies the terminal emulator in use.
type Terminal int

const (
	TermUnknown   Terminal = iota
	TermGhostty            // kitty graphics, true color
	TermKitty              // kitty graphics
	TermWezTerm            // kitty graphics, sixel, iterm2 images
	TermITerm2             // iterm2 images
	TermAlacritty          // true color, no graphics
	TermVTE                // GNOME Terminal, Tilix and other VTE terminals
	TermVSCode             // VS Code integrated terminal
	TermTmux               // tmux multiplexer
	TermGeneric            // anything else
)

var terminalNames = [...]string{
	TermUnknown:   "unknown",
	TermGhostty:   "ghostty",
	TermKitty:     "kitty",
	TermWezTerm:   "wezterm",
	TermITerm2:    "iterm2",
	TermAlacritty: "alacritty",
	TermVTE:       "vte",
	TermVSCode:    "vscode",
	TermTmux:      "tmux",
	TermGeneric:   "generic",
}

// String returns the name of the terminal.
func (t Terminal) String() string {
	if t >= 0 && int(t) < len(terminalNames) {
		return terminalNames[t]
	}
	return "unknown"
}

// SupportsKittyGraphics reports whether the terminal speaks the Kitty
// graphics protocol.
func (t Terminal) SupportsKittyGraphics() bool {
	switch t {
	case TermGhostty, TermKitty, TermWezTerm:
		return true
	}
	return false
}

// SupportsITerm2Images reports whether the terminal supports iTerm2 inline
// images.
func (t Terminal) SupportsITerm2Images() bool {
	return t == TermITerm2 || t == TermWezTerm
}

// SupportsSixel reports whether the terminal renders Sixel graphics.
func (t Terminal) SupportsSixel() bool {
	return t == TermWezTerm
}

// SupportsTrueColor reports whether the terminal supports 24-bit colour.
func (t Terminal) SupportsTrueColor() bool {
	switch t {
	case TermGhostty, TermKitty, TermWezTerm, TermITerm2,
		TermAlacritty, TermVTE, TermVSCode:
		return true
	}
	return false
}

// Detect identifies the terminal emulator from the process environment.
func Detect() Terminal {
	return DetectEnv(os.Getenv)
}

// DetectEnv identifies the terminal from getenv. Signals are checked from
// most to least reliable: TERM_PROGRAM, TERM, emulator-specific variables,
// VTE_VERSION, then multiplexers.
func DetectEnv(getenv func(string) string) Terminal {
	switch strings.ToLower(getenv("TERM_PROGRAM")) {
	case "ghostty":
		return TermGhostty
	case "kitty":
		return TermKitty
	case "wezterm":
		return TermWezTerm
	case "iterm.app":
		return TermITerm2
	case "vscode":
		return TermVSCode
	case "alacritty":
		return TermAlacritty
	case "tmux":
		return TermTmux
	}

	term := getenv("TERM")
	switch {
	case term == "xterm-ghostty":
		return TermGhostty
	case term == "xterm-kitty":
		return TermKitty
	case strings.HasPrefix(term, "alacritty"):
		return TermAlacritty
	}

	switch {
	case getenv("KITTY_WINDOW_ID") != "":
		return TermKitty
	case getenv("ITERM_SESSION_ID") != "", getenv("LC_TERMINAL") == "iTerm2":
		return TermITerm2
	case getenv("WEZTERM_EXECUTABLE") != "":
		return TermWezTerm
	case getenv("VTE_VERSION") != "":
		return TermVTE
	case getenv("TMUX") != "":
		return TermTmux
	}
	return TermGeneric
}

// IsSSH reports whether getenv describes an SSH session.
func IsSSH(getenv func(string) string) bool {
	return getenv("SSH_TTY") != "" ||
		getenv("SSH_CONNECTION") != "" ||
		getenv("SSH_CLIENT") != ""
}
