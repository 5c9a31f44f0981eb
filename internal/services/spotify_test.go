package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/genregenie/internal/shared"
	tu "github.com/desertthunder/genregenie/internal/testing"
	"golang.org/x/oauth2"
)

func newTestSpotify(t *testing.T) (*SpotifyService, *tu.Upstream) {
	t.Helper()
	upstream := tu.NewUpstream(t)
	upstream.ClientID = "test_client_id"
	upstream.ClientSecret = "test_client_secret"
	config := upstream.Config()
	return NewSpotifyService(config.Credentials.Spotify, NewHTTPClient(config.HTTP)), upstream
}

func TestSpotifyService(t *testing.T) {
	ctx := context.Background()

	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("defaults endpoints", func(t *testing.T) {
			srv := NewSpotifyService(shared.SpotifyConfig{ClientID: "id", ClientSecret: "secret"}, nil)

			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
			if srv.config.TokenURL != spotifyTokenURL {
				t.Errorf("expected default token URL, got %s", srv.config.TokenURL)
			}
			if srv.baseURL != spotifyBaseURL {
				t.Errorf("expected default base URL, got %s", srv.baseURL)
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected default http client")
			}
			if srv.config.AuthStyle != oauth2.AuthStyleInHeader {
				t.Error("expected credentials to be sent in the header")
			}
		})

		t.Run("accepts missing credentials", func(t *testing.T) {
			if srv := NewSpotifyService(shared.SpotifyConfig{}, nil); srv == nil {
				t.Fatal("expected service to be created")
			}
		})

		t.Run("trims trailing slash from API URL", func(t *testing.T) {
			srv := NewSpotifyService(shared.SpotifyConfig{APIURL: "http://localhost/v1/"}, nil)
			if srv.baseURL != "http://localhost/v1" {
				t.Errorf("unexpected base URL %s", srv.baseURL)
			}
		})
	})

	t.Run("Service Interface", func(t *testing.T) {
		var _ MusicService = NewSpotifyService(shared.SpotifyConfig{}, nil)
	})

	t.Run("Exchange", func(t *testing.T) {
		t.Run("returns bearer token", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)

			token, err := srv.Exchange(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token.AccessToken != "test-access-token" {
				t.Errorf("unexpected access token %q", token.AccessToken)
			}
			if upstream.Hits(tu.RouteToken) != 1 {
				t.Errorf("expected one token request, got %d", upstream.Hits(tu.RouteToken))
			}
		})

		t.Run("exchanges on every call", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)

			for range 3 {
				if _, err := srv.Exchange(ctx); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
			}
			if upstream.Hits(tu.RouteToken) != 3 {
				t.Errorf("expected three token requests, got %d", upstream.Hits(tu.RouteToken))
			}
		})

		t.Run("wrong secret fails authentication", func(t *testing.T) {
			upstream := tu.NewUpstream(t)
			upstream.ClientID = "test_client_id"
			upstream.ClientSecret = "expected"

			config := upstream.Config()
			config.Credentials.Spotify.ClientSecret = "wrong"
			srv := NewSpotifyService(config.Credentials.Spotify, nil)

			_, err := srv.Exchange(ctx)
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})

		t.Run("error status fails authentication", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)
			upstream.TokenStatus = http.StatusServiceUnavailable

			_, err := srv.Exchange(ctx)
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})

		t.Run("transport failure", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)
			upstream.Server.Close()

			_, err := srv.Exchange(ctx)
			if err == nil {
				t.Fatal("expected error for closed server")
			}
		})
	})

	t.Run("ResolveGenres", func(t *testing.T) {
		token := &oauth2.Token{AccessToken: "test-access-token"}

		t.Run("returns first artist genres", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)

			genres, err := srv.ResolveGenres(ctx, "Never Gonna Give You Up", token)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if strings.Join(genres, ",") != "pop,dance" {
				t.Errorf("unexpected genres %v", genres)
			}
			if q := upstream.Queries(); len(q) != 1 || q[0] != "Never Gonna Give You Up" {
				t.Errorf("unexpected queries %v", q)
			}
			if upstream.Hits(tu.RouteArtist) != 1 {
				t.Errorf("expected one artist lookup, got %d", upstream.Hits(tu.RouteArtist))
			}
		})

		t.Run("zero matches is empty, not an error", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)
			upstream.NoTracks = true

			genres, err := srv.ResolveGenres(ctx, "zzzz", token)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if genres == nil || len(genres) != 0 {
				t.Errorf("expected empty non-nil list, got %#v", genres)
			}
			if upstream.Hits(tu.RouteArtist) != 0 {
				t.Error("artist should not be looked up without a match")
			}
		})

		t.Run("artist without genres is empty", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)
			upstream.Genres = nil

			genres, err := srv.ResolveGenres(ctx, "Never Gonna Give You Up", token)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(genres) != 0 {
				t.Errorf("expected empty list, got %v", genres)
			}
		})

		t.Run("empty query is still searched", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)

			if _, err := srv.ResolveGenres(ctx, "", token); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if upstream.Hits(tu.RouteSearch) != 1 {
				t.Error("expected search request for empty query")
			}
		})

		t.Run("search error status is empty", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)
			upstream.SearchStatus = http.StatusBadRequest

			genres, err := srv.ResolveGenres(ctx, "query", token)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if genres == nil || len(genres) != 0 {
				t.Errorf("expected empty non-nil list, got %#v", genres)
			}
			if upstream.Hits(tu.RouteArtist) != 0 {
				t.Error("artist should not be looked up after a failed search")
			}
		})

		t.Run("artist error status is empty", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)
			upstream.ArtistStatus = http.StatusNotFound

			genres, err := srv.ResolveGenres(ctx, "Never Gonna Give You Up", token)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(genres) != 0 {
				t.Errorf("expected empty list, got %v", genres)
			}
		})

		t.Run("bad token is empty", func(t *testing.T) {
			srv, _ := newTestSpotify(t)

			genres, err := srv.ResolveGenres(ctx, "query", &oauth2.Token{AccessToken: "nope"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(genres) != 0 {
				t.Errorf("expected empty list, got %v", genres)
			}
		})

		t.Run("error status is logged", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)
			upstream.SearchStatus = http.StatusTooManyRequests
			var buf bytes.Buffer
			srv.SetLogger(shared.NewLogger(&buf))

			if _, err := srv.ResolveGenres(ctx, "query", token); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(buf.String(), "search failed") {
				t.Errorf("expected upstream message in log, got %q", buf.String())
			}
		})

		t.Run("resolved artist is logged at debug", func(t *testing.T) {
			srv, _ := newTestSpotify(t)
			var buf bytes.Buffer
			logger := shared.NewLogger(&buf)
			logger.SetLevel(log.DebugLevel)
			srv.SetLogger(logger)

			if _, err := srv.ResolveGenres(ctx, "Never Gonna Give You Up", token); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(buf.String(), "artist1") {
				t.Errorf("expected artist id in log, got %q", buf.String())
			}
		})

		t.Run("malformed search body", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)
			upstream.SearchBody = `{"tracks": [`

			_, err := srv.ResolveGenres(ctx, "query", token)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("transport failure", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)
			upstream.Server.Close()

			_, err := srv.ResolveGenres(ctx, "query", token)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("missing token", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)

			_, err := srv.ResolveGenres(ctx, "query", nil)
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
			if upstream.Total() != 0 {
				t.Error("no request should be made without a token")
			}
		})
	})

	t.Run("SearchTracks", func(t *testing.T) {
		t.Run("error status keeps upstream message", func(t *testing.T) {
			srv, upstream := newTestSpotify(t)
			upstream.SearchStatus = http.StatusTooManyRequests

			_, err := srv.SearchTracks(ctx, &oauth2.Token{AccessToken: "test-access-token"}, "query", 1)
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if statusErr.Status != http.StatusTooManyRequests || statusErr.Message != "search failed" {
				t.Errorf("unexpected status error %+v", statusErr)
			}
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Error("status errors should match ErrAPIRequest")
			}
		})
	})

	t.Run("FirstArtistID", func(t *testing.T) {
		var empty *SpotifySearchResult
		if empty.FirstArtistID() != "" {
			t.Error("nil result should have no artist")
		}
		if (&SpotifySearchResult{}).FirstArtistID() != "" {
			t.Error("result without tracks should have no artist")
		}
	})
}
