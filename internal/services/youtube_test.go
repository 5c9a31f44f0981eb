package services

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/genregenie/internal/shared"
	tu "github.com/desertthunder/genregenie/internal/testing"
)

func TestYouTubeService(t *testing.T) {
	ctx := context.Background()

	t.Run("NewYouTubeService", func(t *testing.T) {
		t.Run("creates service with API key", func(t *testing.T) {
			svc, err := NewYouTubeService(ctx, shared.YouTubeConfig{APIKey: "key"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if svc.Name() != "YouTube" {
				t.Errorf("expected name to be 'YouTube', got %s", svc.Name())
			}
		})

		t.Run("creates service without API key", func(t *testing.T) {
			if _, err := NewYouTubeService(ctx, shared.YouTubeConfig{}); err != nil {
				t.Fatalf("expected missing key to be accepted, got %v", err)
			}
		})
	})

	t.Run("FetchTitle", func(t *testing.T) {
		t.Run("returns snippet title", func(t *testing.T) {
			upstream := tu.NewUpstream(t)
			upstream.APIKey = "yt-key"

			svc, err := NewYouTubeService(ctx, upstream.Config().Credentials.YouTube)
			if err != nil {
				t.Fatalf("failed to create service: %v", err)
			}

			title, err := svc.FetchTitle(ctx, "dQw4w9WgXcQ")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if title != "Never Gonna Give You Up (Official Video)" {
				t.Errorf("unexpected title %q", title)
			}
			if upstream.Hits(tu.RouteVideos) != 1 {
				t.Errorf("expected exactly one request, got %d", upstream.Hits(tu.RouteVideos))
			}
		})

		t.Run("no items is not found", func(t *testing.T) {
			upstream := tu.NewUpstream(t)
			upstream.Title = ""

			svc, _ := NewYouTubeService(ctx, upstream.Config().Credentials.YouTube)
			_, err := svc.FetchTitle(ctx, "dQw4w9WgXcQ")
			if !errors.Is(err, shared.ErrTitleNotFound) {
				t.Errorf("expected ErrTitleNotFound, got %v", err)
			}
		})

		t.Run("item without snippet is not found", func(t *testing.T) {
			upstream := tu.NewUpstream(t)
			upstream.VideoBody = `{"items":[{"id":"dQw4w9WgXcQ"}]}`

			svc, _ := NewYouTubeService(ctx, upstream.Config().Credentials.YouTube)
			_, err := svc.FetchTitle(ctx, "dQw4w9WgXcQ")
			if !errors.Is(err, shared.ErrTitleNotFound) {
				t.Errorf("expected ErrTitleNotFound, got %v", err)
			}
		})

		t.Run("malformed body is not found", func(t *testing.T) {
			upstream := tu.NewUpstream(t)
			upstream.VideoBody = `{"items": [`

			svc, _ := NewYouTubeService(ctx, upstream.Config().Credentials.YouTube)
			_, err := svc.FetchTitle(ctx, "dQw4w9WgXcQ")
			if !errors.Is(err, shared.ErrTitleNotFound) {
				t.Errorf("expected ErrTitleNotFound, got %v", err)
			}
		})

		t.Run("rejected key is not found", func(t *testing.T) {
			upstream := tu.NewUpstream(t)
			upstream.APIKey = "expected"

			config := upstream.Config().Credentials.YouTube
			config.APIKey = "wrong"

			svc, _ := NewYouTubeService(ctx, config)
			_, err := svc.FetchTitle(ctx, "dQw4w9WgXcQ")
			if !errors.Is(err, shared.ErrTitleNotFound) {
				t.Errorf("expected ErrTitleNotFound, got %v", err)
			}
		})

		t.Run("transport failure propagates", func(t *testing.T) {
			upstream := tu.NewUpstream(t)
			config := upstream.Config().Credentials.YouTube
			upstream.Server.Close()

			svc, _ := NewYouTubeService(ctx, config)
			_, err := svc.FetchTitle(ctx, "dQw4w9WgXcQ")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if errors.Is(err, shared.ErrTitleNotFound) {
				t.Error("transport failure should not be reported as not found")
			}
		})
	})
}
