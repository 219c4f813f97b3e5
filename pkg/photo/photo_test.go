package photo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeCatalogMissingTitleDefaultsToUntitled(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"absent", `[{"url":"a.jpg","size":12}]`},
		{"null", `[{"url":"a.jpg","size":12,"title":null}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			photos, err := DecodeCatalog([]byte(tc.json))
			if err != nil {
				t.Fatalf("DecodeCatalog: %v", err)
			}
			if len(photos) != 1 {
				t.Fatalf("expected 1 photo, got %d", len(photos))
			}
			if photos[0].Title != UntitledTitle {
				t.Errorf("Title = %q, want %q", photos[0].Title, UntitledTitle)
			}
		})
	}
}

func TestDecodeCatalogPreservesOrderAndFields(t *testing.T) {
	body := `[
		{"url":"beach.jpg","size":18,"title":"At the beach"},
		{"url":"coli.jpg","size":26},
		{"url":"turtles.jpg","size":34,"title":""}
	]`

	got, err := DecodeCatalog([]byte(body))
	if err != nil {
		t.Fatalf("DecodeCatalog: %v", err)
	}
	want := []Photo{
		{Path: "beach.jpg", SizeKB: 18, Title: "At the beach"},
		{Path: "coli.jpg", SizeKB: 26, Title: UntitledTitle},
		{Path: "turtles.jpg", SizeKB: 34, Title: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeCatalog mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCatalogEmptyArray(t *testing.T) {
	photos, err := DecodeCatalog([]byte(`[]`))
	if err != nil {
		t.Fatalf("DecodeCatalog: %v", err)
	}
	if len(photos) != 0 {
		t.Errorf("expected no photos, got %d", len(photos))
	}
}

func TestDecodeCatalogRejectsInvalidInput(t *testing.T) {
	for _, body := range []string{
		`{"url":"a.jpg"}`,
		`[{"size":3}]`,
		`[{"url":"a.jpg"}]`,
		`[{"url":"a.jpg","size":"big"}]`,
		`not json`,
		`null`,
		` null\n`,
	} {
		if _, err := DecodeCatalog([]byte(body)); !errors.Is(err, ErrDecode) {
			t.Errorf("DecodeCatalog(%s): expected ErrDecode, got %v", body, err)
		}
	}
}

func TestFromPath(t *testing.T) {
	p := FromPath("X.jpeg")
	if p != (Photo{Path: "X.jpeg"}) {
		t.Errorf("FromPath = %+v, want only Path set", p)
	}
}

func TestPaths(t *testing.T) {
	got := Paths([]Photo{FromPath("1.png"), FromPath("2.png")})
	if diff := cmp.Diff([]string{"1.png", "2.png"}, got); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}
}

// --- Fetcher ---

func TestFetchCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"url":"1.png","size":1},{"url":"2.png","size":2,"title":"two"}]`))
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, nil)
	photos, err := f.FetchCatalog(context.Background(), srv.URL+"/photos/list.json")
	if err != nil {
		t.Fatalf("FetchCatalog: %v", err)
	}
	want := []Photo{
		{Path: "1.png", SizeKB: 1, Title: UntitledTitle},
		{Path: "2.png", SizeKB: 2, Title: "two"},
	}
	if diff := cmp.Diff(want, photos); diff != "" {
		t.Errorf("FetchCatalog mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchCatalogHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewFetcher(time.Second, nil).FetchCatalog(context.Background(), srv.URL)
	if !errors.Is(err, ErrStatus) {
		t.Errorf("expected ErrStatus, got %v", err)
	}
}

func TestFetchCatalogDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewFetcher(time.Second, nil).FetchCatalog(context.Background(), srv.URL)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestFetchBytesHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewFetcher(5*time.Second, nil).FetchBytes(ctx, srv.URL); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
