// Spotify Web API implementation of [TokenExchanger] and [GenreResolver]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/genregenie/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SpotifyArtist represents a Spotify artist.
//
// Search results embed simplified artists, which omit genres.
type SpotifyArtist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	URI    string   `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

// SpotifySearchResult represents the track page of a search response.
type SpotifySearchResult struct {
	Tracks *struct {
		Items []SpotifyTrack `json:"items"`
		Total int            `json:"total"`
	} `json:"tracks"`
}

// FirstArtistID returns the id of the first artist of the first track, or "" when absent.
func (r *SpotifySearchResult) FirstArtistID() string {
	if r == nil || r.Tracks == nil || len(r.Tracks.Items) == 0 {
		return ""
	}
	track := r.Tracks.Items[0]
	if len(track.Artists) == 0 {
		return ""
	}
	return track.Artists[0].ID
}

// StatusError is a non-2xx response from the Spotify Web API. It matches [shared.ErrAPIRequest].
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: spotify API error: status %d", shared.ErrAPIRequest, e.Status)
	}
	return fmt.Sprintf("%v: spotify API error (status %d): %s", shared.ErrAPIRequest, e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	return shared.ErrAPIRequest
}

// SpotifyService implements [MusicService] for the Spotify Web API.
//
// Uses the [clientcredentials] grant; no user authorization is involved.
type SpotifyService struct {
	config     *clientcredentials.Config
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewSpotifyService creates a new Spotify service from config.
//
// Empty client credentials are accepted; the token endpoint rejects them on first use.
// client defaults to [http.DefaultClient].
func NewSpotifyService(config shared.SpotifyConfig, client *http.Client) *SpotifyService {
	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}

	baseURL := strings.TrimSuffix(config.APIURL, "/")
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &SpotifyService{
		config: &clientcredentials.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		baseURL:    baseURL,
		httpClient: client,
		logger:     shared.NewLogger(io.Discard),
	}
}

// SetLogger replaces the logger; output is discarded until one is set.
func (s *SpotifyService) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Exchange performs a client credentials grant and returns a fresh bearer token.
//
// The id and secret are sent as an HTTP Basic header with a form-encoded grant type.
func (s *SpotifyService) Exchange(ctx context.Context) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.config.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}
		return nil, fmt.Errorf("%w: token exchange: %v", shared.ErrAPIRequest, err)
	}

	return token, nil
}

// doRequest performs an authenticated GET request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, token *oauth2.Token, endpoint string, result any) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: missing access token", shared.ErrAuthFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Status  int    `json:"status"`
				Message string `json:"message"`
			} `json:"error"`
		}
		statusErr := &StatusError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			statusErr.Message = errResp.Error.Message
		}
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}

	return nil
}

// SearchTracks searches the catalog for tracks matching query, returning at most limit items.
func (s *SpotifyService) SearchTracks(ctx context.Context, token *oauth2.Token, query string, limit int) (*SpotifySearchResult, error) {
	if limit <= 0 {
		limit = 1
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", fmt.Sprintf("%d", limit))

	var result SpotifySearchResult
	if err := s.doRequest(ctx, token, "/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Artist retrieves an artist by ID.
func (s *SpotifyService) Artist(ctx context.Context, token *oauth2.Token, artistID string) (*SpotifyArtist, error) {
	var artist SpotifyArtist
	if err := s.doRequest(ctx, token, "/artists/"+url.PathEscape(artistID), &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// ResolveGenres searches for the single best track match and returns its first artist's genres.
//
// No second result is tried and no fuzzy re-query is made. An error status from either call
// means nothing could be read, so it yields an empty list; transport and decode failures are errors.
func (s *SpotifyService) ResolveGenres(ctx context.Context, query string, token *oauth2.Token) ([]string, error) {
	result, err := s.SearchTracks(ctx, token, query, 1)
	if err != nil {
		return s.emptyOnStatus("search", err)
	}

	artistID := result.FirstArtistID()
	s.logger.Debug("searched tracks", "query", query, "artist", artistID)
	if artistID == "" {
		return []string{}, nil
	}

	artist, err := s.Artist(ctx, token, artistID)
	if err != nil {
		return s.emptyOnStatus("artist", err)
	}
	s.logger.Debug("resolved artist", "artist", artist.ID, "name", artist.Name, "genres", artist.Genres)

	if artist.Genres == nil {
		return []string{}, nil
	}
	return artist.Genres, nil
}

func (s *SpotifyService) emptyOnStatus(call string, err error) ([]string, error) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		s.logger.Warn("spotify returned an error status", "call", call, "status", statusErr.Status, "message", statusErr.Message)
		return []string{}, nil
	}
	return nil, err
}
