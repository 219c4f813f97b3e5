package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/photo-groove/pkg/bridge"
	"gitlab.com/tinyland/lab/photo-groove/pkg/canvas"
	"gitlab.com/tinyland/lab/photo-groove/pkg/gallery"
	"gitlab.com/tinyland/lab/photo-groove/pkg/photo"
	"gitlab.com/tinyland/lab/photo-groove/pkg/slider"
)

// --- fakes ---

type fakeCatalog struct {
	photos []photo.Photo
	err    error
	url    string
}

func (f *fakeCatalog) FetchCatalog(_ context.Context, url string) ([]photo.Photo, error) {
	f.url = url
	return f.photos, f.err
}

type fakeCanvas struct {
	mu       sync.Mutex
	pushed   []bridge.Request
	activity chan string
	frames   chan canvas.Frame
	w, h     int
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{
		activity: make(chan string, 4),
		frames:   make(chan canvas.Frame, 1),
	}
}

func (c *fakeCanvas) Push(req bridge.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushed = append(c.pushed, req)
}

func (c *fakeCanvas) Activity() <-chan string     { return c.activity }
func (c *fakeCanvas) Frames() <-chan canvas.Frame { return c.frames }
func (c *fakeCanvas) Resize(w, h int)             { c.w, c.h = w, h }

func (c *fakeCanvas) requests() []bridge.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]bridge.Request(nil), c.pushed...)
}

// --- helpers ---

func photos(paths ...string) []photo.Photo {
	out := make([]photo.Photo, len(paths))
	for i, p := range paths {
		out[i] = photo.FromPath(p)
	}
	return out
}

func newTestModel(c *fakeCanvas, mouse bool) Model {
	return New(Deps{Catalog: &fakeCatalog{}, Canvas: c}, Options{
		Machine: gallery.NewMachine("http://example.test/", ""),
		Mouse:   mouse,
		Intn:    func(n int) int { return n - 1 },
	})
}

// update sends msg through Update and returns the updated model.
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func loadedModel(t *testing.T, c *fakeCanvas, mouse bool, paths ...string) Model {
	t.Helper()
	m := newTestModel(c, mouse)
	m, _ = update(m, gallery.CatalogFetched{Photos: photos(paths...)})
	if _, ok := m.State().Status.(gallery.Loaded); !ok {
		t.Fatalf("expected Loaded, got %#v", m.State().Status)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func selected(t *testing.T, m Model) string {
	t.Helper()
	loaded, ok := m.State().Status.(gallery.Loaded)
	if !ok {
		t.Fatalf("expected Loaded, got %#v", m.State().Status)
	}
	return loaded.Selected
}

// --- init ---

func TestNew_StartsLoading(t *testing.T) {
	m := newTestModel(newFakeCanvas(), false)
	if _, ok := m.State().Status.(gallery.Loading); !ok {
		t.Errorf("expected Loading, got %#v", m.State().Status)
	}
	if m.State().ChosenSize != gallery.Medium {
		t.Errorf("expected medium thumbnails, got %v", m.State().ChosenSize)
	}
	if m.FocusedSlider() != -1 {
		t.Errorf("expected thumbnails focused, got slider %d", m.FocusedSlider())
	}
	if m.Init() == nil {
		t.Fatal("Init() returned nil, expected the catalog fetch")
	}
}

func TestNew_ZeroOptionsDefaultsToMedium(t *testing.T) {
	m := New(Deps{}, Options{})
	if m.State().ChosenSize != gallery.Medium {
		t.Errorf("expected medium thumbnails, got %v", m.State().ChosenSize)
	}
}

func TestNew_SizeOverride(t *testing.T) {
	large := gallery.Large
	m := New(Deps{}, Options{Size: &large})
	if m.State().ChosenSize != gallery.Large {
		t.Errorf("expected large thumbnails, got %v", m.State().ChosenSize)
	}
}

func TestFetchCatalogCmd(t *testing.T) {
	cat := &fakeCatalog{photos: photos("1.png", "2.png")}
	msg := FetchCatalogCmd(context.Background(), cat, "http://x/list.json", discardLogger())()

	got, ok := msg.(gallery.CatalogFetched)
	if !ok {
		t.Fatalf("expected CatalogFetched, got %T", msg)
	}
	if got.Err != nil || len(got.Photos) != 2 {
		t.Errorf("unexpected result %+v", got)
	}
	if cat.url != "http://x/list.json" {
		t.Errorf("expected fetch of catalog URL, got %q", cat.url)
	}
}

func TestFetchCatalogCmd_Error(t *testing.T) {
	cat := &fakeCatalog{err: errors.New("connection refused")}
	msg := FetchCatalogCmd(context.Background(), cat, "http://x/list.json", discardLogger())()
	if got := msg.(gallery.CatalogFetched); got.Err == nil {
		t.Error("expected error to be carried")
	}
}

func TestChooseRandomCmd(t *testing.T) {
	ps := photos("a.png", "b.png", "c.png")
	msg := ChooseRandomCmd(ps, func(n int) int { return 1 })()
	if got := msg.(gallery.RandomPhotoChosen).Photo.Path; got != "b.png" {
		t.Errorf("expected b.png, got %q", got)
	}
	msg = ChooseRandomCmd(ps, func(n int) int { return 99 })()
	if got := msg.(gallery.RandomPhotoChosen).Photo.Path; got != "a.png" {
		t.Errorf("expected out-of-range draw to fall back to a.png, got %q", got)
	}
	if ChooseRandomCmd(nil, nil) != nil {
		t.Error("expected nil command for an empty catalog")
	}
}

// --- effects ---

func TestCatalogFetched_PushesFirstPhoto(t *testing.T) {
	c := newFakeCanvas()
	m := loadedModel(t, c, false, "1.png", "2.png")

	if got := selected(t, m); got != "1.png" {
		t.Errorf("expected 1.png selected, got %q", got)
	}
	want := []bridge.Request{{
		URL: "http://example.test/large/1.png",
		Filters: []bridge.Filter{
			{Name: bridge.FilterHue, Amount: 5.0 / 11},
			{Name: bridge.FilterRipple, Amount: 5.0 / 11},
			{Name: bridge.FilterNoise, Amount: 5.0 / 11},
		},
	}}
	if diff := cmp.Diff(want, c.requests()); diff != "" {
		t.Errorf("pushed requests mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogFetched_ErrorShowsServerError(t *testing.T) {
	c := newFakeCanvas()
	m := newTestModel(c, false)
	m, _ = update(m, gallery.CatalogFetched{Err: errors.New("boom")})

	st, ok := m.State().Status.(gallery.Errored)
	if !ok || st.Message != gallery.ServerErrorMessage {
		t.Errorf("expected Errored(%q), got %#v", gallery.ServerErrorMessage, m.State().Status)
	}
	if len(c.requests()) != 0 {
		t.Error("expected no pushes when errored")
	}
}

// --- keys ---

func TestKeys_NavigateThumbnails(t *testing.T) {
	c := newFakeCanvas()
	m := loadedModel(t, c, false, "a.png", "b.png", "c.png")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := selected(t, m); got != "b.png" {
		t.Errorf("after right, expected b.png, got %q", got)
	}
	m, _ = update(m, runes("l"))
	m, _ = update(m, runes("l"))
	if got := selected(t, m); got != "a.png" {
		t.Errorf("expected wrap to a.png, got %q", got)
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := selected(t, m); got != "c.png" {
		t.Errorf("expected wrap back to c.png, got %q", got)
	}
	if n := len(c.requests()); n != 5 {
		t.Errorf("expected 5 pushes (load + 4 moves), got %d", n)
	}
}

func TestKeys_SurpriseMe(t *testing.T) {
	m := loadedModel(t, newFakeCanvas(), false, "a.png", "b.png", "c.png")

	m, cmd := update(m, runes("s"))
	if cmd == nil {
		t.Fatal("expected a ChooseRandom command")
	}
	m, _ = update(m, cmd())
	if got := selected(t, m); got != "c.png" {
		t.Errorf("expected stubbed draw to select c.png, got %q", got)
	}
}

func TestKeys_SurpriseMeWhileLoading(t *testing.T) {
	m := newTestModel(newFakeCanvas(), false)
	_, cmd := update(m, runes("s"))
	if cmd != nil {
		t.Error("expected no command while loading")
	}
}

func TestKeys_ThumbnailSize(t *testing.T) {
	m := loadedModel(t, newFakeCanvas(), false, "a.png")
	for k, want := range map[string]gallery.ThumbnailSize{
		"1": gallery.Small,
		"2": gallery.Medium,
		"3": gallery.Large,
	} {
		m, _ = update(m, runes(k))
		if m.State().ChosenSize != want {
			t.Errorf("key %s: expected %v, got %v", k, want, m.State().ChosenSize)
		}
	}
}

func TestKeys_TabCyclesSliderFocus(t *testing.T) {
	m := loadedModel(t, newFakeCanvas(), false, "a.png")

	for _, want := range []int{0, 1, 2, -1, 0} {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.FocusedSlider() != want {
			t.Fatalf("expected focus %d, got %d", want, m.FocusedSlider())
		}
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedSlider() != -1 {
		t.Errorf("expected shift+tab back to thumbnails, got %d", m.FocusedSlider())
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedSlider() != 2 {
		t.Errorf("expected shift+tab to wrap to last slider, got %d", m.FocusedSlider())
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.FocusedSlider() != -1 {
		t.Errorf("expected esc to blur, got %d", m.FocusedSlider())
	}
}

func TestKeys_FocusedSliderNudgesFilter(t *testing.T) {
	c := newFakeCanvas()
	m := loadedModel(t, c, false, "a.png", "b.png")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab}) // Hue
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyRight})
	if cmd == nil {
		t.Fatal("expected a slide command")
	}
	msg, ok := cmd().(slider.SlideMsg)
	if !ok {
		t.Fatalf("expected SlideMsg, got %T", cmd())
	}
	m, _ = update(m, msg)

	if m.State().Filters.Hue != 6 {
		t.Errorf("expected hue 6, got %d", m.State().Filters.Hue)
	}
	if got := selected(t, m); got != "a.png" {
		t.Errorf("expected right key to stay on the slider, selection moved to %q", got)
	}
	reqs := c.requests()
	last := reqs[len(reqs)-1]
	if amt, _ := last.Amount(bridge.FilterHue); amt != 6.0/11 {
		t.Errorf("expected pushed hue 6/11, got %v", amt)
	}
}

func TestKeys_SliderAtBoundConsumesKey(t *testing.T) {
	m := loadedModel(t, newFakeCanvas(), false, "a.png", "b.png")
	m, _ = update(m, gallery.NoiseSlid{Value: gallery.FilterMax})
	m.CycleFocusBackward() // Noise

	m, cmd := update(m, runes("]"))
	if cmd != nil {
		t.Error("expected no slide past the maximum")
	}
	if got := selected(t, m); got != "a.png" {
		t.Errorf("expected selection unchanged, got %q", got)
	}
}

func TestKeys_HelpToggle(t *testing.T) {
	m := newTestModel(newFakeCanvas(), false)
	m, _ = update(m, runes("?"))
	if !m.help.ShowAll {
		t.Error("expected full help after ?")
	}
}

func TestKeys_Quit(t *testing.T) {
	m := newTestModel(newFakeCanvas(), false)
	_, cmd := update(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

// --- bridge ---

func TestActivityReported(t *testing.T) {
	m := newTestModel(newFakeCanvas(), false)
	m, cmd := update(m, gallery.ActivityReported{Activity: "Painting a.png"})
	if m.State().Activity != "Painting a.png" {
		t.Errorf("expected activity stored, got %q", m.State().Activity)
	}
	if cmd == nil {
		t.Error("expected the activity subscription to be renewed")
	}
}

func TestListenActivity(t *testing.T) {
	ch := make(chan string, 1)
	ch <- "Painted a.png in 3ms"
	msg := ListenActivity(ch)()
	if got := msg.(gallery.ActivityReported).Activity; got != "Painted a.png in 3ms" {
		t.Errorf("unexpected activity %q", got)
	}
	close(ch)
	if msg := ListenActivity(ch)(); msg != nil {
		t.Errorf("expected nil after close, got %#v", msg)
	}
}

func TestFrameEvent(t *testing.T) {
	m := loadedModel(t, newFakeCanvas(), false, "a.png")
	m, _ = update(m, FrameEvent{Frame: canvas.Frame{URL: "http://example.test/large/a.png", Rendered: "PIXELS"}})
	if m.Frame().Rendered != "PIXELS" {
		t.Errorf("expected frame stored, got %+v", m.Frame())
	}
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if v := m.View(); !contains(v, "PIXELS") {
		t.Error("expected frame in the canvas area")
	}
}

func TestWindowSizeResizesCanvas(t *testing.T) {
	c := newFakeCanvas()
	m := newTestModel(c, false)
	update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if c.w != 46 || c.h != 20 {
		t.Errorf("expected 46x20, got %dx%d", c.w, c.h)
	}
	update(m, tea.WindowSizeMsg{Width: 30, Height: 40})
	if c.w != 38 {
		t.Errorf("expected narrow canvas 38 cols, got %d", c.w)
	}
}

// --- mouse ---

func waitZone(t *testing.T, zm *zone.Manager, id string) *zone.ZoneInfo {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if z := zm.Get(id); z != nil && !z.IsZero() {
			return z
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("zone %q never registered", id)
	return nil
}

func TestMouse_ClickThumbnailSelectsIt(t *testing.T) {
	c := newFakeCanvas()
	m := loadedModel(t, c, true, "a.jpeg", "X.jpeg", "c.jpeg")
	defer m.Close()
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m.View()

	z := waitZone(t, m.zones, gallery.ThumbZoneID(1))
	m, _ = update(m, tea.MouseMsg{
		X:      z.StartX,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})

	if got := selected(t, m); got != "X.jpeg" {
		t.Errorf("expected X.jpeg selected, got %q", got)
	}
	reqs := c.requests()
	if got := reqs[len(reqs)-1].URL; got != "http://example.test/large/X.jpeg" {
		t.Errorf("expected push for X.jpeg, got %q", got)
	}
}

func TestMouse_ClickSizeRadio(t *testing.T) {
	m := loadedModel(t, newFakeCanvas(), true, "a.jpeg")
	defer m.Close()
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m.View()

	z := waitZone(t, m.zones, gallery.SizeZoneID(gallery.Large))
	m, _ = update(m, tea.MouseMsg{
		X:      z.StartX,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	if m.State().ChosenSize != gallery.Large {
		t.Errorf("expected large, got %v", m.State().ChosenSize)
	}
}

func TestMouse_IgnoredWhenDisabled(t *testing.T) {
	m := loadedModel(t, newFakeCanvas(), false, "a.jpeg", "b.jpeg")
	m, cmd := update(m, tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if cmd != nil || selected(t, m) != "a.jpeg" {
		t.Error("expected mouse input ignored")
	}
}

// --- view ---

func TestView_Loading(t *testing.T) {
	m := newTestModel(newFakeCanvas(), false)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	v := m.View()
	if !contains(v, gallery.Title) || !contains(v, "Loading photos") {
		t.Errorf("unexpected loading view:\n%s", v)
	}
}

func TestView_Errored(t *testing.T) {
	m := newTestModel(newFakeCanvas(), false)
	m, _ = update(m, gallery.CatalogFetched{})
	if v := m.View(); !contains(v, "Error "+gallery.EmptyCatalogMessage) {
		t.Errorf("expected error text, got:\n%s", v)
	}
}
