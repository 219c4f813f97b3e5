package terminal

import (
	"fmt"
	"strings"
)

// GraphicsProtocol identifies how images are written to the terminal.
type GraphicsProtocol int

const (
	ProtocolNone       GraphicsProtocol = iota // canvas painting disabled
	ProtocolKitty                              // Kitty graphics protocol
	ProtocolITerm2                             // iTerm2 inline images
	ProtocolSixel                              // Sixel
	ProtocolHalfblocks                         // Unicode half blocks with 24-bit colour
)

var protocolNames = [...]string{
	ProtocolNone:       "none",
	ProtocolKitty:      "kitty",
	ProtocolITerm2:     "iterm2",
	ProtocolSixel:      "sixel",
	ProtocolHalfblocks: "halfblocks",
}

// String returns the configuration name of the protocol.
func (p GraphicsProtocol) String() string {
	if p >= 0 && int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return "unknown"
}

// Inline reports whether the protocol's output is plain text cells that can
// be laid out next to other text.
func (p GraphicsProtocol) Inline() bool {
	return p == ProtocolHalfblocks || p == ProtocolNone
}

// ParseProtocol parses a protocol name. "auto" and "" return ok=false with
// no error, meaning the caller should detect.
func ParseProtocol(name string) (p GraphicsProtocol, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return ProtocolNone, false, nil
	case "kitty":
		return ProtocolKitty, true, nil
	case "iterm2", "iterm":
		return ProtocolITerm2, true, nil
	case "sixel":
		return ProtocolSixel, true, nil
	case "halfblocks", "half-blocks", "unicode":
		return ProtocolHalfblocks, true, nil
	case "none", "off", "disabled":
		return ProtocolNone, true, nil
	}
	return ProtocolNone, false, fmt.Errorf("unknown graphics protocol %q", name)
}

// SelectProtocol returns the best protocol for term. Over SSH every image
// protocol degrades to half blocks.
func SelectProtocol(term Terminal, ssh bool) GraphicsProtocol {
	var p GraphicsProtocol
	switch {
	case term.SupportsKittyGraphics():
		p = ProtocolKitty
	case term.SupportsITerm2Images():
		p = ProtocolITerm2
	default:
		p = ProtocolHalfblocks
	}
	if ssh {
		return ProtocolHalfblocks
	}
	return p
}

// SelectProtocolWithOverride honours a configured protocol name and falls
// back to detection for "auto", empty or unknown names.
func SelectProtocolWithOverride(term Terminal, ssh bool, override string) GraphicsProtocol {
	if p, ok, err := ParseProtocol(override); ok && err == nil {
		return p
	}
	return SelectProtocol(term, ssh)
}
