// Package theme holds the gallery's colour palettes and turns the active
// palette into lipgloss styles.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme defines the complete colour palette for the gallery. All colours
// are "#RRGGBB" hex strings.
type Theme struct {
	Name string

	// Base colors
	Background string
	Foreground string
	Dim        string // captions, hints
	Accent     string // title, focused slider

	// Thumbnails
	Border   string // unselected thumbnail border
	Selected string // selected thumbnail border and radio dot

	// Status
	Error string

	// Sliders
	SliderFilled string
	SliderEmpty  string

	// Help
	HelpKey  string
	HelpDesc string
}

// DefaultName is the theme used when none is configured.
const DefaultName = "default"

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
}

// Get returns a named theme, falling back to "default" if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry[DefaultName]
}

// Lookup returns a named theme and whether it exists.
func Lookup(name string) (Theme, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := registry[strings.ToLower(name)]
	return t, ok
}

// Names returns all registered theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds t to the registry, replacing any theme with the same name.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
