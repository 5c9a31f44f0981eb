// package services defines the interfaces for interacting with HTTP APIs
//
// YouTube Data API, Spotify Web API
package services

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/genregenie/internal/models"
	"golang.org/x/oauth2"
)

// TitleFetcher looks up the human-readable title of a video.
type TitleFetcher interface {
	// FetchTitle returns the title for id, or [shared.ErrTitleNotFound] when none can be read.
	FetchTitle(ctx context.Context, id models.VideoID) (string, error)
	Name() string
}

// TokenExchanger trades client credentials for a short-lived bearer token.
type TokenExchanger interface {
	Exchange(ctx context.Context) (*oauth2.Token, error)
}

// GenreResolver maps a search query to the genre tags of the best matching track's artist.
type GenreResolver interface {
	// ResolveGenres returns an empty list, not an error, when nothing matches.
	ResolveGenres(ctx context.Context, query string, token *oauth2.Token) ([]string, error)
	Name() string
}

// MusicService is a music metadata provider that issues its own tokens.
type MusicService interface {
	TokenExchanger
	GenreResolver
}

// Loggable is implemented by services that log their upstream responses.
type Loggable interface {
	SetLogger(l *log.Logger)
}
