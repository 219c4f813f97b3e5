package app

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// contains reports whether the visible text of s contains sub.
func contains(s, sub string) bool {
	return strings.Contains(ansi.Strip(s), sub)
}
