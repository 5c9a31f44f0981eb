// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/genregenie/internal/models"
	"github.com/desertthunder/genregenie/internal/shared"
	"golang.org/x/oauth2"
)

// Route names counted by [Upstream].
const (
	RouteVideos = "videos"
	RouteToken  = "token"
	RouteSearch = "search"
	RouteArtist = "artist"
)

// Upstream is an httptest server that emulates the YouTube videos endpoint and the Spotify token,
// search and artist endpoints.
//
// Fields may be changed between requests; zero values produce a successful run for
// "Never Gonna Give You Up (Official Video)" by an artist tagged pop and dance.
type Upstream struct {
	Server *httptest.Server

	APIKey       string   // Expected YouTube key; empty skips the check
	Title        string   // Video title; empty returns no items
	VideoBody    string   // Raw videos body, overrides Title
	ClientID     string   // Expected Basic auth user; empty skips the check
	ClientSecret string   // Expected Basic auth password
	TokenStatus  int      // Token endpoint status, defaults to 200
	NoTracks     bool     // Search returns zero items
	SearchStatus int      // Search endpoint status, defaults to 200
	SearchBody   string   // Raw search body, overrides NoTracks
	ArtistStatus int      // Artist endpoint status, defaults to 200
	Genres       []string // Artist genres; nil omits the field

	mu      sync.Mutex
	hits    map[string]int
	queries []string
}

// NewUpstream starts an [Upstream] that is closed when the test ends.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()

	u := &Upstream{
		Title:  "Never Gonna Give You Up (Official Video)",
		Genres: []string{"pop", "dance"},
		hits:   map[string]int{},
	}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Server.Close)
	return u
}

// Config returns a configuration whose service endpoints point at the server.
func (u *Upstream) Config() *shared.Config {
	config := shared.DefaultConfig()
	config.Credentials.YouTube.APIKey = u.APIKey
	config.Credentials.YouTube.Endpoint = u.Server.URL + "/"
	config.Credentials.Spotify.ClientID = u.ClientID
	config.Credentials.Spotify.ClientSecret = u.ClientSecret
	config.Credentials.Spotify.APIURL = u.Server.URL + "/v1"
	config.Credentials.Spotify.TokenURL = u.Server.URL + "/api/token"
	config.HTTP.RateLimit = 1000
	return config
}

// Hits returns how many requests reached route.
func (u *Upstream) Hits(route string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits[route]
}

// Total returns the number of requests received on any route.
func (u *Upstream) Total() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	total := 0
	for _, n := range u.hits {
		total += n
	}
	return total
}

// Queries returns the search queries received, in order.
func (u *Upstream) Queries() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.queries...)
}

func (u *Upstream) record(route string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.hits[route]++
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case strings.HasSuffix(path, "/videos"):
		u.record(RouteVideos)
		u.serveVideos(w, r)
	case path == "/api/token":
		u.record(RouteToken)
		u.serveToken(w, r)
	case path == "/v1/search":
		u.record(RouteSearch)
		u.serveSearch(w, r)
	case strings.HasPrefix(path, "/v1/artists/"):
		u.record(RouteArtist)
		u.serveArtist(w, r, strings.TrimPrefix(path, "/v1/artists/"))
	default:
		http.NotFound(w, r)
	}
}

func (u *Upstream) serveVideos(w http.ResponseWriter, r *http.Request) {
	if u.APIKey != "" && r.URL.Query().Get("key") != u.APIKey {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error": map[string]any{"code": 403, "message": "API key not valid"},
		})
		return
	}

	if u.VideoBody != "" {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, u.VideoBody)
		return
	}

	items := []any{}
	if u.Title != "" {
		items = append(items, map[string]any{
			"id":      r.URL.Query().Get("id"),
			"snippet": map[string]any{"title": u.Title},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"kind": "youtube#videoListResponse", "items": items})
}

func (u *Upstream) serveToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
		return
	}

	if u.TokenStatus != 0 && u.TokenStatus != http.StatusOK {
		writeJSON(w, u.TokenStatus, map[string]string{"error": "invalid_client", "error_description": "Invalid client"})
		return
	}

	if u.ClientID != "" {
		id, secret, ok := r.BasicAuth()
		if !ok || id != u.ClientID || secret != u.ClientSecret {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_client"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": "test-access-token",
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (u *Upstream) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer test-access-token" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": map[string]any{"status": 401, "message": "No token provided"},
		})
		return false
	}
	return true
}

func (u *Upstream) serveSearch(w http.ResponseWriter, r *http.Request) {
	if !u.authorized(w, r) {
		return
	}

	u.mu.Lock()
	u.queries = append(u.queries, r.URL.Query().Get("q"))
	u.mu.Unlock()

	if u.SearchStatus != 0 && u.SearchStatus != http.StatusOK {
		writeJSON(w, u.SearchStatus, map[string]any{
			"error": map[string]any{"status": u.SearchStatus, "message": "search failed"},
		})
		return
	}

	if u.SearchBody != "" {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, u.SearchBody)
		return
	}

	items := []any{}
	if !u.NoTracks {
		items = append(items, map[string]any{
			"id":      "track1",
			"name":    "Never Gonna Give You Up",
			"artists": []any{map[string]any{"id": "artist1", "name": "Rick Astley"}},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tracks": map[string]any{"items": items, "total": len(items)},
	})
}

func (u *Upstream) serveArtist(w http.ResponseWriter, r *http.Request, id string) {
	if !u.authorized(w, r) {
		return
	}

	if u.ArtistStatus != 0 && u.ArtistStatus != http.StatusOK {
		writeJSON(w, u.ArtistStatus, map[string]any{
			"error": map[string]any{"status": u.ArtistStatus, "message": "non existing id"},
		})
		return
	}

	artist := map[string]any{"id": id, "name": "Rick Astley"}
	if u.Genres != nil {
		artist["genres"] = u.Genres
	}
	writeJSON(w, http.StatusOK, artist)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// MockTitleFetcher is a test double for [services.TitleFetcher]
type MockTitleFetcher struct {
	Title string
	Err   error
	Calls int
}

func (m *MockTitleFetcher) FetchTitle(ctx context.Context, id models.VideoID) (string, error) {
	m.Calls++
	return m.Title, m.Err
}

func (m *MockTitleFetcher) Name() string { return "mock-titles" }

// MockMusicService is a test double for [services.MusicService]
type MockMusicService struct {
	Token       *oauth2.Token
	ExchangeErr error
	Genres      []string
	ResolveErr  error
	Exchanges   int
	Queries     []string
}

func (m *MockMusicService) Exchange(ctx context.Context) (*oauth2.Token, error) {
	m.Exchanges++
	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	if m.Token == nil {
		return &oauth2.Token{AccessToken: "mock-token"}, nil
	}
	return m.Token, nil
}

func (m *MockMusicService) ResolveGenres(ctx context.Context, query string, token *oauth2.Token) ([]string, error) {
	m.Queries = append(m.Queries, query)
	if m.ResolveErr != nil {
		return nil, m.ResolveErr
	}
	return m.Genres, nil
}

func (m *MockMusicService) Name() string { return "mock-music" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	Calls    int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.Calls++
	return m.response, m.err
}
