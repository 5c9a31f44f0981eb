// YouTube Data API [TitleFetcher] implementation
//
// Uses the generated google.golang.org/api client; see
// https://developers.google.com/youtube/v3/docs/videos/list
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/desertthunder/genregenie/internal/models"
	"github.com/desertthunder/genregenie/internal/shared"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeService implements [TitleFetcher] against the YouTube Data API v3.
type YouTubeService struct {
	client *youtube.Service
}

// NewYouTubeService creates a YouTube Data API client from config.
//
// An empty API key is not rejected; requests are sent unauthenticated and fail upstream.
func NewYouTubeService(ctx context.Context, config shared.YouTubeConfig) (*YouTubeService, error) {
	opts := []option.ClientOption{}
	if config.APIKey != "" {
		opts = append(opts, option.WithAPIKey(config.APIKey))
	} else {
		opts = append(opts, option.WithoutAuthentication())
	}
	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(config.Endpoint))
	}

	client, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create youtube client: %v", shared.ErrServiceUnavailable, err)
	}

	return &YouTubeService{client: client}, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// FetchTitle returns the snippet title of the video.
//
// Calls GET videos?part=snippet&id={id}.
func (y *YouTubeService) FetchTitle(ctx context.Context, id models.VideoID) (string, error) {
	response, err := y.client.Videos.
		List([]string{"snippet"}).
		Id(id.String()).
		Context(ctx).
		Do()
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		// Error statuses and undecodable bodies carry no title.
		return "", fmt.Errorf("%w: %s: %v", shared.ErrTitleNotFound, id, err)
	}

	if len(response.Items) == 0 || response.Items[0].Snippet == nil || response.Items[0].Snippet.Title == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrTitleNotFound, id)
	}

	return response.Items[0].Snippet.Title, nil
}
