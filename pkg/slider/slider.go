// Package slider is a bounded integer range input built on bubbles/progress.
//
// The widget is configured with a maximum and a value that the owner sets
// programmatically on every render. When the user drags inside the bar or
// nudges it with the keyboard it emits exactly one SlideMsg carrying the new
// value under Detail.UserSlidTo.
package slider

import (
	"math"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// DefaultWidth is the bar width in cells.
const DefaultWidth = 24

// SlideDetail is the payload of a slide notification.
type SlideDetail struct {
	UserSlidTo int `json:"userSlidTo"`
}

// SlideMsg reports a value chosen by the user.
type SlideMsg struct {
	ID     string      `json:"id"`
	Detail SlideDetail `json:"detail"`
}

// KeyMap defines the keys that nudge a focused slider.
type KeyMap struct {
	Decrease key.Binding
	Increase key.Binding
}

// DefaultKeyMap returns the default nudge keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Decrease: key.NewBinding(
			key.WithKeys("left", "h", "["),
			key.WithHelp("←/[", "decrease"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l", "]"),
			key.WithHelp("→/]", "increase"),
		),
	}
}

// Model is one slider. The zero value is not usable; call New.
type Model struct {
	ID      string
	Max     int
	Focused bool
	KeyMap  KeyMap

	val   int
	width int
	bar   progress.Model
	zones *zone.Manager
	label lipgloss.Style
}

// Option configures a slider.
type Option func(*Model)

// WithWidth sets the bar width in cells.
func WithWidth(w int) Option {
	return func(m *Model) {
		if w > 1 {
			m.width = w
		}
	}
}

// WithColors sets the filled and empty bar colours.
func WithColors(filled, empty string) Option {
	return func(m *Model) {
		m.bar.FullColor = filled
		m.bar.EmptyColor = empty
	}
}

// WithZones marks the bar as a mouse zone in z so drags can be resolved.
func WithZones(z *zone.Manager) Option {
	return func(m *Model) { m.zones = z }
}

// WithLabelStyle sets the style of the numeric value label.
func WithLabelStyle(s lipgloss.Style) Option {
	return func(m *Model) { m.label = s }
}

// New returns a slider with upper bound limit. The value starts at 0 until
// SetVal is called.
func New(id string, limit int, opts ...Option) Model {
	if limit < 1 {
		limit = 1
	}
	m := Model{
		ID:     id,
		Max:    limit,
		KeyMap: DefaultKeyMap(),
		width:  DefaultWidth,
		bar: progress.New(
			progress.WithSolidFill("#60b5cc"),
			progress.WithoutPercentage(),
		),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.bar.Width = m.width
	return m
}

// SetVal moves the slider without emitting a SlideMsg. Values outside
// [0, Max] are clamped.
func (m *Model) SetVal(v int) {
	m.val = m.clamp(v)
}

// Val returns the current position.
func (m Model) Val() int { return m.val }

// Width returns the bar width in cells.
func (m Model) Width() int { return m.width }

// Update handles mouse drags over the bar and nudge keys while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.Focused {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.KeyMap.Decrease):
			return m.slideTo(m.val - 1)
		case key.Matches(msg, m.KeyMap.Increase):
			return m.slideTo(m.val + 1)
		}

	case tea.MouseMsg:
		if m.zones == nil || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
			return m, nil
		}
		z := m.zones.Get(m.ID)
		if z == nil || !z.InBounds(msg) {
			return m, nil
		}
		x, _ := z.Pos(msg)
		return m.slideTo(m.ValueAt(x))
	}
	return m, nil
}

// ValueAt maps a cell offset within the bar to the nearest value.
func (m Model) ValueAt(x int) int {
	if m.width <= 1 {
		return m.clamp(x)
	}
	v := math.Round(float64(x) * float64(m.Max) / float64(m.width-1))
	return m.clamp(int(v))
}

// slideTo moves to v and emits a SlideMsg when the position changed.
func (m Model) slideTo(v int) (Model, tea.Cmd) {
	v = m.clamp(v)
	if v == m.val {
		return m, nil
	}
	m.val = v
	msg := SlideMsg{ID: m.ID, Detail: SlideDetail{UserSlidTo: v}}
	return m, func() tea.Msg { return msg }
}

func (m Model) clamp(v int) int {
	return max(0, min(v, m.Max))
}

// View renders the bar followed by "val/max".
func (m Model) View() string {
	bar := m.bar.ViewAs(float64(m.val) / float64(m.Max))
	if m.zones != nil {
		bar = m.zones.Mark(m.ID, bar)
	}
	return bar + " " + m.label.Render(strconv.Itoa(m.val)+"/"+strconv.Itoa(m.Max))
}
