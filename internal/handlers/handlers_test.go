package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"playlist-viewer/internal/archive"
	"playlist-viewer/internal/playlist"
	"playlist-viewer/internal/resolver"
	"playlist-viewer/internal/session"
	"playlist-viewer/internal/startup"

	"github.com/gorilla/mux"
)

// =============================================================================
// Test helpers
// =============================================================================

// newArchiveServer stands in for archive.org. Items map an identifier to a
// raw metadata body; unknown identifiers answer 404.
func newArchiveServer(t *testing.T, items map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/metadata/")
		body, ok := items[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestHandlers(t *testing.T, catalog *playlist.Catalog, loadErr error, res TrackResolver, mode session.PlaybackMode) *Handlers {
	t.Helper()
	return New(catalog, loadErr, res, session.NewStore(0), &startup.Config{PlaybackMode: mode})
}

// archiveHandlers wires handlers to a real resolver pointed at srv.
func archiveHandlers(t *testing.T, srv *httptest.Server, grouping resolver.Grouping, playlists ...playlist.Playlist) *Handlers {
	t.Helper()
	client := archive.NewClient(archive.WithBaseURL(srv.URL))
	return newTestHandlers(t, playlist.NewCatalog(playlists), nil, resolver.New(client, grouping), session.ModeIframe)
}

type request struct {
	method string
	path   string
	vars   map[string]string
	cookie *http.Cookie
}

func serve(handler http.HandlerFunc, req request) *httptest.ResponseRecorder {
	r := httptest.NewRequest(req.method, req.path, nil)
	if req.vars != nil {
		r = mux.SetURLVars(r, req.vars)
	}
	if req.cookie != nil {
		r.AddCookie(req.cookie)
	}
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("response did not set the session cookie")
	return nil
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return v
}

// fakeResolver returns a fixed result.
type fakeResolver struct {
	result *resolver.Result
	err    error
}

func (f *fakeResolver) Resolve(context.Context, playlist.Playlist) (*resolver.Result, error) {
	return f.result, f.err
}

func (f *fakeResolver) Grouping() resolver.Grouping {
	return resolver.GroupingFlat
}

// =============================================================================
// Playlists
// =============================================================================

func TestListPlaylists(t *testing.T) {
	h := newTestHandlers(t, playlist.NewCatalog([]playlist.Playlist{
		{Title: "Concerts", URL: "https://archive.org/details/concerts", Cover: "https://example.com/c.jpg"},
		{URL: "https://archive.org/details/untitled"},
	}), nil, &fakeResolver{}, session.ModeIframe)

	w := serve(h.ListPlaylists, request{method: http.MethodGet, path: "/api/playlists"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	resp := decode[PlaylistsResponse](t, w)
	if resp.Count != 2 {
		t.Fatalf("Count = %d, want 2", resp.Count)
	}
	if resp.Playlists[0].Cover != "https://example.com/c.jpg" {
		t.Errorf("cover = %q", resp.Playlists[0].Cover)
	}
	if resp.Playlists[1].Title != playlist.UntitledPlaylist {
		t.Errorf("title = %q, want %q", resp.Playlists[1].Title, playlist.UntitledPlaylist)
	}
	if resp.Playlists[1].Cover != playlist.PlaceholderCover {
		t.Errorf("cover = %q, want placeholder", resp.Playlists[1].Cover)
	}
	if resp.Playlists[1].Index != 1 {
		t.Errorf("index = %d, want 1", resp.Playlists[1].Index)
	}
}

func TestListPlaylistsNotLoaded(t *testing.T) {
	_, loadErr := playlist.Load(filepath.Join(t.TempDir(), "missing.json"))
	h := newTestHandlers(t, nil, loadErr, &fakeResolver{}, session.ModeIframe)

	w := serve(h.ListPlaylists, request{method: http.MethodGet, path: "/api/playlists"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	body := decode[map[string]string](t, w)
	if body["error"] != "Playlist file not found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestServePlaylistsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playlists.json")
	raw := `{"playlists":[{"title":"A","url":"https://archive.org/details/a"}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	catalog, err := playlist.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	h := newTestHandlers(t, catalog, nil, &fakeResolver{}, session.ModeIframe)

	w := serve(h.ServePlaylistsFile, request{method: http.MethodGet, path: "/data/playlists.json"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != raw {
		t.Errorf("body = %q, want raw file", w.Body.String())
	}
}

// =============================================================================
// Selection
// =============================================================================

func TestSelectPlaylistEndToEnd(t *testing.T) {
	srv := newArchiveServer(t, map[string]string{
		"myid": `{"files":[{"name":"a.mp4"},{"name":"a.srt"},{"name":"b.webm"}]}`,
	})
	h := archiveHandlers(t, srv, resolver.GroupingFlat,
		playlist.Playlist{Title: "Mine", URL: "https://archive.org/details/myid"})

	w := serve(h.SelectPlaylist, request{
		method: http.MethodPost,
		path:   "/api/playlists/0/select",
		vars:   map[string]string{"index": "0"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	cookie := sessionCookie(t, w)

	state := decode[session.State](t, w)
	if state.Status != session.StatusReady {
		t.Fatalf("Status = %q, message %q", state.Status, state.Message)
	}
	want := []resolver.Track{
		{Title: "a.mp4", FileURL: "https://archive.org/download/myid/a.mp4"},
		{Title: "b.webm", FileURL: "https://archive.org/download/myid/b.webm"},
	}
	if len(state.Tracks) != len(want) {
		t.Fatalf("got %d tracks, want %d", len(state.Tracks), len(want))
	}
	for i := range want {
		if state.Tracks[i].Title != want[i].Title || state.Tracks[i].FileURL != want[i].FileURL {
			t.Errorf("track %d = %+v, want %+v", i, state.Tracks[i], want[i])
		}
	}

	// The state survives across requests carrying the cookie.
	w = serve(h.GetState, request{method: http.MethodGet, path: "/api/state", cookie: cookie})
	again := decode[session.State](t, w)
	if again.SessionID != state.SessionID || len(again.Tracks) != 2 {
		t.Errorf("GetState = %+v", again)
	}

	w = serve(h.PlayTrack, request{
		method: http.MethodPost,
		path:   "/api/tracks/1/play",
		vars:   map[string]string{"index": "1"},
		cookie: cookie,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("play status = %d, body %s", w.Code, w.Body.String())
	}
	pb := decode[session.Playback](t, w)
	if pb.URL != want[1].FileURL || pb.Mode != session.ModeIframe || pb.Title != "b.webm" {
		t.Errorf("Playback = %+v", pb)
	}
}

func TestSelectPlaylistGrouped(t *testing.T) {
	srv := newArchiveServer(t, map[string]string{
		"films": `{"files":[{"name":"film.mp4","size":"1048576"},{"name":"film.webm","size":2048},{"name":"film.png"}]}`,
	})
	h := archiveHandlers(t, srv, resolver.GroupingGrouped,
		playlist.Playlist{URL: "https://archive.org/details/films/"})

	w := serve(h.SelectPlaylist, request{method: http.MethodPost, vars: map[string]string{"index": "0"}, path: "/api/playlists/0/select"})
	state := decode[session.State](t, w)

	if state.Grouping != resolver.GroupingGrouped {
		t.Errorf("Grouping = %q", state.Grouping)
	}
	if len(state.Tracks) != 1 || state.Tracks[0].Title != "film" {
		t.Fatalf("Tracks = %+v", state.Tracks)
	}
	formats := state.Tracks[0].Formats
	if len(formats) != 2 || formats[0].Format != "mp4" || formats[1].Format != "webm" {
		t.Fatalf("Formats = %+v", formats)
	}
	if formats[0].Size == nil || *formats[0].Size != 1048576 {
		t.Errorf("size = %v, want 1048576", formats[0].Size)
	}

	cookie := sessionCookie(t, w)
	w = serve(h.PlayTrack, request{
		method: http.MethodPost,
		path:   "/api/tracks/0/play?format=webm",
		vars:   map[string]string{"index": "0"},
		cookie: cookie,
	})
	pb := decode[session.Playback](t, w)
	if pb.URL != "https://archive.org/download/films/film.webm" || pb.Format != "webm" {
		t.Errorf("Playback = %+v", pb)
	}
}

func TestSelectPlaylistOutcomes(t *testing.T) {
	srv := newArchiveServer(t, map[string]string{
		"subs": `{"files":[{"name":"a.srt"},{"name":"a.txt"}]}`,
	})

	tests := []struct {
		name        string
		url         string
		wantStatus  session.Status
		wantMessage string
	}{
		{"empty", "https://archive.org/details/subs", session.StatusEmpty, session.EmptyMessage},
		{"not found", "https://archive.org/details/gone", session.StatusError, "Archive.org metadata fetch failed (HTTP 404)"},
		{"unparseable", "not a url", session.StatusError, "Could not parse archive.org identifier"},
		{"missing url", "", session.StatusError, "Could not parse archive.org identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := archiveHandlers(t, srv, resolver.GroupingFlat, playlist.Playlist{URL: tt.url})

			w := serve(h.SelectPlaylist, request{method: http.MethodPost, path: "/api/playlists/0/select", vars: map[string]string{"index": "0"}})
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 with the error in the state", w.Code)
			}
			state := decode[session.State](t, w)
			if state.Status != tt.wantStatus || state.Message != tt.wantMessage {
				t.Errorf("state = %q %q, want %q %q", state.Status, state.Message, tt.wantStatus, tt.wantMessage)
			}
			if len(state.Tracks) != 0 {
				t.Errorf("Tracks = %+v, want none", state.Tracks)
			}
		})
	}
}

func TestSelectPlaylistFailureKeepsPlayback(t *testing.T) {
	srv := newArchiveServer(t, map[string]string{
		"good": `{"files":[{"name":"clip.mp4"}]}`,
	})
	h := archiveHandlers(t, srv, resolver.GroupingFlat,
		playlist.Playlist{URL: "https://archive.org/details/good"},
		playlist.Playlist{URL: "https://archive.org/details/missing"})

	w := serve(h.SelectPlaylist, request{method: http.MethodPost, path: "/api/playlists/0/select", vars: map[string]string{"index": "0"}})
	cookie := sessionCookie(t, w)

	serve(h.PlayTrack, request{method: http.MethodPost, path: "/api/tracks/0/play", vars: map[string]string{"index": "0"}, cookie: cookie})

	w = serve(h.SelectPlaylist, request{method: http.MethodPost, path: "/api/playlists/1/select", vars: map[string]string{"index": "1"}, cookie: cookie})
	state := decode[session.State](t, w)

	if state.Status != session.StatusError {
		t.Fatalf("Status = %q, want error", state.Status)
	}
	if state.Playback == nil || state.Playback.URL != "https://archive.org/download/good/clip.mp4" {
		t.Errorf("Playback = %+v, want the previous track to keep playing", state.Playback)
	}
}

// blockingResolver holds the first Resolve call until released.
type blockingResolver struct {
	started chan struct{}
	release chan struct{}
	calls   chan int
}

func (b *blockingResolver) Resolve(_ context.Context, pl playlist.Playlist) (*resolver.Result, error) {
	n := <-b.calls
	if n == 0 {
		close(b.started)
		<-b.release
	}
	return &resolver.Result{
		Identifier: pl.Title,
		Tracks:     []resolver.Track{{Title: pl.Title + ".mp4", FileURL: "https://archive.org/download/x/" + pl.Title + ".mp4"}},
	}, nil
}

func (b *blockingResolver) Grouping() resolver.Grouping {
	return resolver.GroupingFlat
}

func TestSelectPlaylistStale(t *testing.T) {
	res := &blockingResolver{
		started: make(chan struct{}),
		release: make(chan struct{}),
		calls:   make(chan int, 2),
	}
	res.calls <- 0
	res.calls <- 1

	h := newTestHandlers(t, playlist.NewCatalog([]playlist.Playlist{
		{Title: "first"}, {Title: "second"},
	}), nil, res, session.ModeIframe)

	w := serve(h.GetState, request{method: http.MethodGet, path: "/api/state"})
	cookie := sessionCookie(t, w)

	firstDone := make(chan *httptest.ResponseRecorder)
	go func() {
		firstDone <- serve(h.SelectPlaylist, request{method: http.MethodPost, path: "/api/playlists/0/select", vars: map[string]string{"index": "0"}, cookie: cookie})
	}()
	<-res.started

	w = serve(h.SelectPlaylist, request{method: http.MethodPost, path: "/api/playlists/1/select", vars: map[string]string{"index": "1"}, cookie: cookie})
	if w.Code != http.StatusOK {
		t.Fatalf("second selection status = %d", w.Code)
	}

	close(res.release)
	first := <-firstDone
	if first.Code != http.StatusConflict {
		t.Errorf("first selection status = %d, want 409", first.Code)
	}

	w = serve(h.GetState, request{method: http.MethodGet, path: "/api/state", cookie: cookie})
	state := decode[session.State](t, w)
	if state.PlaylistIndex != 1 || len(state.Tracks) != 1 || state.Tracks[0].Title != "second.mp4" {
		t.Errorf("latest selection lost: %+v", state)
	}
}

func TestSelectPlaylistBadIndex(t *testing.T) {
	h := newTestHandlers(t, playlist.NewCatalog([]playlist.Playlist{{URL: "https://archive.org/details/a"}}), nil, &fakeResolver{}, session.ModeIframe)

	tests := []struct {
		index string
		want  int
	}{
		{"abc", http.StatusBadRequest},
		{"5", http.StatusNotFound},
		{"-1", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := serve(h.SelectPlaylist, request{method: http.MethodPost, path: "/api/playlists/x/select", vars: map[string]string{"index": tt.index}})
		if w.Code != tt.want {
			t.Errorf("index %q: status = %d, want %d", tt.index, w.Code, tt.want)
		}
	}
}

func TestSelectPlaylistNotLoaded(t *testing.T) {
	h := newTestHandlers(t, nil, &playlist.LoadError{Kind: playlist.KindMalformed}, &fakeResolver{}, session.ModeIframe)

	w := serve(h.SelectPlaylist, request{method: http.MethodPost, path: "/api/playlists/0/select", vars: map[string]string{"index": "0"}})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

// =============================================================================
// Playback
// =============================================================================

func TestPlayTrackErrors(t *testing.T) {
	h := newTestHandlers(t, playlist.NewCatalog([]playlist.Playlist{{URL: "https://archive.org/details/a"}}), nil,
		&fakeResolver{result: &resolver.Result{Tracks: []resolver.Track{
			{Title: "a.mp4", FileURL: "https://archive.org/download/a/a.mp4"},
		}}}, session.ModeVideo)

	w := serve(h.GetState, request{method: http.MethodGet, path: "/api/state"})
	cookie := sessionCookie(t, w)

	play := func(index, query string) *httptest.ResponseRecorder {
		return serve(h.PlayTrack, request{method: http.MethodPost, path: "/api/tracks/" + index + "/play" + query, vars: map[string]string{"index": index}, cookie: cookie})
	}

	if w := play("0", ""); w.Code != http.StatusConflict {
		t.Errorf("before selection: status = %d, want 409", w.Code)
	}

	serve(h.SelectPlaylist, request{method: http.MethodPost, path: "/api/playlists/0/select", vars: map[string]string{"index": "0"}, cookie: cookie})

	tests := []struct {
		index, query string
		want         int
	}{
		{"x", "", http.StatusBadRequest},
		{"3", "", http.StatusNotFound},
		{"0", "?format=webm", http.StatusNotFound},
		{"0", "?format=mp4", http.StatusOK},
	}
	for _, tt := range tests {
		if w := play(tt.index, tt.query); w.Code != tt.want {
			t.Errorf("play(%s%s) status = %d, want %d", tt.index, tt.query, w.Code, tt.want)
		}
	}

	pb := decode[session.Playback](t, play("0", ""))
	if pb.Mode != session.ModeVideo || pb.MimeType != "video/mp4" {
		t.Errorf("Playback = %+v, want video mode with MIME type", pb)
	}
}

func TestClosePlayback(t *testing.T) {
	h := newTestHandlers(t, playlist.NewCatalog([]playlist.Playlist{{}}), nil,
		&fakeResolver{result: &resolver.Result{Tracks: []resolver.Track{{Title: "a.mp4", FileURL: "u/a.mp4"}}}}, session.ModeIframe)

	w := serve(h.SelectPlaylist, request{method: http.MethodPost, path: "/api/playlists/0/select", vars: map[string]string{"index": "0"}})
	cookie := sessionCookie(t, w)
	serve(h.PlayTrack, request{method: http.MethodPost, path: "/api/tracks/0/play", vars: map[string]string{"index": "0"}, cookie: cookie})

	w = serve(h.ClosePlayback, request{method: http.MethodDelete, path: "/api/playback", cookie: cookie})
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}

	state := decode[session.State](t, serve(h.GetState, request{method: http.MethodGet, path: "/api/state", cookie: cookie}))
	if state.Playback != nil {
		t.Errorf("Playback = %+v, want nil", state.Playback)
	}
	if len(state.Tracks) != 1 {
		t.Errorf("closing playback must keep the track list, got %d tracks", len(state.Tracks))
	}
}

func TestUnknownSessionCookieStartsFresh(t *testing.T) {
	h := newTestHandlers(t, playlist.NewCatalog(nil), nil, &fakeResolver{}, session.ModeIframe)

	w := serve(h.GetState, request{
		method: http.MethodGet,
		path:   "/api/state",
		cookie: &http.Cookie{Name: SessionCookieName, Value: "forged"},
	})
	cookie := sessionCookie(t, w)
	if cookie.Value == "forged" {
		t.Error("forged session id was accepted")
	}
	state := decode[session.State](t, w)
	if state.Status != session.StatusIdle {
		t.Errorf("Status = %q, want idle", state.Status)
	}
}

func TestSessionCookieRefreshedOnUse(t *testing.T) {
	h := newTestHandlers(t, playlist.NewCatalog(nil), nil, &fakeResolver{}, session.ModeIframe)

	first := sessionCookie(t, serve(h.GetState, request{method: http.MethodGet, path: "/api/state"}))

	w := serve(h.GetState, request{method: http.MethodGet, path: "/api/state", cookie: first})
	again := sessionCookie(t, w)
	if again.Value != first.Value {
		t.Errorf("cookie value = %q, want existing session %q", again.Value, first.Value)
	}
	if want := int(session.DefaultTTL.Seconds()); again.MaxAge != want {
		t.Errorf("MaxAge = %d, want %d", again.MaxAge, want)
	}
	if !again.HttpOnly {
		t.Error("re-issued cookie must stay HttpOnly")
	}
}
