package app

import (
	"gitlab.com/tinyland/lab/photo-groove/pkg/gallery"
)

// CycleFocusForward moves keyboard focus to the next filter slider. After
// the last slider focus returns to the thumbnails.
func (m *Model) CycleFocusForward() {
	if len(m.sliders) == 0 {
		return
	}
	m.setFocus((m.focused+2)%(len(m.sliders)+1) - 1)
}

// CycleFocusBackward moves keyboard focus to the previous filter slider,
// passing through the thumbnails before wrapping to the last slider.
func (m *Model) CycleFocusBackward() {
	if len(m.sliders) == 0 {
		return
	}
	n := len(m.sliders) + 1
	m.setFocus((m.focused+n)%n - 1)
}

// Blur returns keyboard focus to the thumbnails.
func (m *Model) Blur() {
	m.setFocus(-1)
}

// FocusedSlider returns the index of the focused slider, or -1 when the
// thumbnails have focus.
func (m Model) FocusedSlider() int {
	return m.focused
}

func (m *Model) setFocus(i int) {
	if i < -1 || i >= len(m.sliders) {
		i = -1
	}
	m.focused = i
	for j := range m.sliders {
		m.sliders[j].Focused = j == i
	}
}

// neighbour returns the path of the photo delta places away from the
// selection, wrapping at either end.
func neighbour(st gallery.Status, delta int) (string, bool) {
	loaded, ok := st.(gallery.Loaded)
	if !ok || len(loaded.Photos) == 0 {
		return "", false
	}
	idx := 0
	for i, p := range loaded.Photos {
		if p.Path == loaded.Selected {
			idx = i
			break
		}
	}
	n := len(loaded.Photos)
	idx = ((idx+delta)%n + n) % n
	return loaded.Photos[idx].Path, true
}
