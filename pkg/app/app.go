package app

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/photo-groove/pkg/bridge"
	"gitlab.com/tinyland/lab/photo-groove/pkg/canvas"
	"gitlab.com/tinyland/lab/photo-groove/pkg/gallery"
	"gitlab.com/tinyland/lab/photo-groove/pkg/photo"
	"gitlab.com/tinyland/lab/photo-groove/pkg/slider"
	"gitlab.com/tinyland/lab/photo-groove/pkg/theme"
)

var errNoCatalog = errors.New("no catalog fetcher configured")

// Catalog fetches the photo list. *photo.Fetcher satisfies it.
type Catalog interface {
	FetchCatalog(ctx context.Context, url string) ([]photo.Photo, error)
}

// Canvas is the painting pipeline behind the filter bridge.
// *canvas.Painter satisfies it.
type Canvas interface {
	bridge.Sink
	bridge.Source
	Frames() <-chan canvas.Frame
	Resize(width, height int)
}

// Deps are the external collaborators of the runtime.
type Deps struct {
	Catalog Catalog
	Canvas  Canvas
}

// Options configures the runtime.
type Options struct {
	Machine gallery.Machine
	Theme   theme.Theme

	// Size overrides the initial thumbnail size when non-nil.
	Size *gallery.ThumbnailSize

	// Mouse enables click and drag handling through bubblezone.
	Mouse bool

	// Intn draws a uniform integer in [0, n). It defaults to math/rand/v2.
	Intn func(n int) int

	Logger  *slog.Logger
	Context context.Context
}

// Model is the root tea.Model.
type Model struct {
	machine gallery.Machine
	deps    Deps
	ctx     context.Context
	logger  *slog.Logger
	intn    func(n int) int

	state   gallery.Model
	initial gallery.Effect

	styles  theme.Styles
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	zones   *zone.Manager
	sliders []slider.Model
	focused int

	frame  canvas.Frame
	width  int
	height int
}

// New builds the runtime around a fresh gallery model. The catalog fetch
// is issued by Init.
func New(deps Deps, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	intn := opts.Intn
	if intn == nil {
		intn = rand.IntN
	}
	machine := opts.Machine
	if machine.BaseURL == "" {
		machine = gallery.NewMachine("", "")
	}
	th := opts.Theme
	if th.Name == "" {
		th = theme.Get(theme.DefaultName)
	}
	styles := theme.NewStyles(th)

	var zm *zone.Manager
	if opts.Mouse {
		zm = zone.New()
	}

	state, initial := machine.Init()
	if opts.Size != nil {
		state.ChosenSize = *opts.Size
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Title

	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(lipgloss.Color(th.HelpKey))
	h.Styles.FullKey = h.Styles.FullKey.Foreground(lipgloss.Color(th.HelpKey))
	h.Styles.ShortDesc = h.Styles.ShortDesc.Foreground(lipgloss.Color(th.HelpDesc))
	h.Styles.FullDesc = h.Styles.FullDesc.Foreground(lipgloss.Color(th.HelpDesc))

	m := Model{
		machine: machine,
		deps:    deps,
		ctx:     ctx,
		logger:  logger.With("component", "app"),
		intn:    intn,
		state:   state,
		initial: initial,
		styles:  styles,
		keys:    DefaultKeyMap(),
		help:    h,
		spinner: sp,
		zones:   zm,
		focused: -1,
	}
	for _, sv := range gallery.Render(state, m.renderOptions()).Sliders {
		s := slider.New(gallery.SliderZoneID(sv.Name), sv.Max,
			slider.WithZones(zm),
			slider.WithColors(th.SliderFilled, th.SliderEmpty),
			slider.WithLabelStyle(styles.Caption),
		)
		s.SetVal(sv.Value)
		m.sliders = append(m.sliders, s)
	}
	return m
}

// Init starts the catalog fetch, the pipeline subscriptions and the
// loading spinner.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.perform(m.initial), m.spinner.Tick}
	if m.deps.Canvas != nil {
		cmds = append(cmds,
			ListenActivity(m.deps.Canvas.Activity()),
			ListenFrames(m.deps.Canvas.Frames()),
		)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resizeCanvas()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case slider.SlideMsg:
		return m.handleSlide(msg)

	case spinner.TickMsg:
		if _, loading := m.state.Status.(gallery.Loading); !loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FrameEvent:
		m.frame = msg.Frame
		if m.deps.Canvas == nil {
			return m, nil
		}
		return m, ListenFrames(m.deps.Canvas.Frames())

	case gallery.ActivityReported:
		next, cmd := m.Dispatch(msg)
		if m.deps.Canvas == nil {
			return next, cmd
		}
		return next, tea.Batch(cmd, ListenActivity(m.deps.Canvas.Activity()))

	case gallery.Event:
		return m.Dispatch(msg)
	}
	return m, nil
}

// Dispatch runs ev through the state machine and returns the command that
// interprets the resulting effect.
func (m Model) Dispatch(ev gallery.Event) (Model, tea.Cmd) {
	if ev == nil {
		return m, nil
	}
	next, eff := m.machine.Transition(m.state, ev)
	if _, ok := next.Status.(gallery.Errored); ok {
		if _, was := m.state.Status.(gallery.Errored); !was {
			m.logger.Warn("gallery errored", "status", next.Status)
		}
	}
	resized := next.ChosenSize != m.state.ChosenSize
	m.state = next
	m.syncSliders()
	if resized {
		m.resizeCanvas()
	}
	return m, m.perform(eff)
}

// resizeCanvas tells the painter how many cells the canvas box holds at the
// current width and thumbnail size.
func (m Model) resizeCanvas() {
	if m.deps.Canvas == nil || m.width <= 0 {
		return
	}
	m.deps.Canvas.Resize(gallery.Arrange(m.width, m.state.ChosenSize).CanvasCells())
}

// perform interprets one effect. Pushes to the filter bridge happen
// immediately since Push never blocks.
func (m Model) perform(eff gallery.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case gallery.FetchCatalog:
		return FetchCatalogCmd(m.ctx, m.deps.Catalog, eff.URL, m.logger)
	case gallery.ChooseRandom:
		return ChooseRandomCmd(eff.Photos, m.intn)
	case gallery.PushFilters:
		if m.deps.Canvas != nil {
			m.deps.Canvas.Push(eff.Request)
		}
		m.logger.Debug("filters pushed", "url", eff.Request.URL)
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.CycleFocusForward()
		return m, nil
	case key.Matches(msg, m.keys.FocusBack):
		m.CycleFocusBackward()
		return m, nil
	case key.Matches(msg, m.keys.Blur):
		m.Blur()
		return m, nil
	}

	if m.focused >= 0 {
		s := m.sliders[m.focused]
		if key.Matches(msg, s.KeyMap.Decrease, s.KeyMap.Increase) {
			var cmd tea.Cmd
			m.sliders[m.focused], cmd = s.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Prev):
		return m.step(-1)
	case key.Matches(msg, m.keys.Next):
		return m.step(1)
	case key.Matches(msg, m.keys.Surprise):
		return m.Dispatch(gallery.SurpriseMeClicked{})
	case key.Matches(msg, m.keys.Small):
		return m.Dispatch(gallery.SizeClicked{Size: gallery.Small})
	case key.Matches(msg, m.keys.Medium):
		return m.Dispatch(gallery.SizeClicked{Size: gallery.Medium})
	case key.Matches(msg, m.keys.Large):
		return m.Dispatch(gallery.SizeClicked{Size: gallery.Large})
	}
	return m, nil
}

// step selects a neighbouring thumbnail the same way a click on it would.
func (m Model) step(delta int) (Model, tea.Cmd) {
	path, ok := neighbour(m.state.Status, delta)
	if !ok {
		return m, nil
	}
	return m.Dispatch(gallery.PhotoClicked{Path: path})
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.zones == nil {
		return m, nil
	}

	var cmds []tea.Cmd
	for i := range m.sliders {
		var cmd tea.Cmd
		m.sliders[i], cmd = m.sliders[i].Update(msg)
		cmds = append(cmds, cmd)
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		page := m.Page()
		for _, id := range page.ZoneIDs() {
			z := m.zones.Get(id)
			if z == nil || !z.InBounds(msg) {
				continue
			}
			if ev, ok := page.EventFor(id); ok {
				var cmd tea.Cmd
				m, cmd = m.Dispatch(ev)
				cmds = append(cmds, cmd)
			}
			break
		}
	}
	return m, tea.Batch(cmds...)
}

// handleSlide turns a slider notification into the matching filter event.
func (m Model) handleSlide(msg slider.SlideMsg) (Model, tea.Cmd) {
	for _, sv := range m.Page().Sliders {
		if gallery.SliderZoneID(sv.Name) == msg.ID {
			return m.Dispatch(sv.Slide(msg.Detail.UserSlidTo))
		}
	}
	return m, nil
}

// syncSliders sets every slider element from the model, the way the view
// sets the element's value attribute on each render.
func (m *Model) syncSliders() {
	for i, sv := range m.Page().Sliders {
		if i < len(m.sliders) {
			m.sliders[i].SetVal(sv.Value)
		}
	}
}

func (m Model) renderOptions() gallery.RenderOptions {
	return gallery.RenderOptions{BaseURL: m.machine.BaseURL}
}

// Page renders the current model.
func (m Model) Page() gallery.Page {
	return gallery.Render(m.state, m.renderOptions())
}

// State returns the current gallery model.
func (m Model) State() gallery.Model {
	return m.state
}

// Frame returns the latest painted frame.
func (m Model) Frame() canvas.Frame {
	return m.frame
}

// View implements tea.Model.
func (m Model) View() string {
	page := m.Page()

	vc := gallery.ViewContext{
		Styles:        m.styles,
		Width:         m.width,
		FocusedSlider: m.focused,
		Spinner:       m.spinner.View(),
		Footer:        m.help.View(m.keys),
	}
	if m.zones != nil {
		vc.Zones = m.zones
	}
	if page.Canvas != nil && m.frame.Rendered != "" {
		vc.Canvas = m.frame.Rendered
		vc.CanvasRaw = m.frame.Raw
	}
	for _, s := range m.sliders {
		vc.Sliders = append(vc.Sliders, s.View())
	}

	out := page.View(vc)
	if m.zones != nil {
		out = m.zones.Scan(out)
	}
	return out
}

// Close releases the zone manager.
func (m Model) Close() {
	if m.zones != nil {
		m.zones.Close()
	}
}
