package tasks

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/genregenie/internal/models"
	"github.com/desertthunder/genregenie/internal/services"
	"github.com/desertthunder/genregenie/internal/shared"
)

// Predictor defines the pipeline operations used by the command and UI layers.
type Predictor interface {
	// Run parses rawURL and predicts genres for the video it names.
	Run(ctx context.Context, rawURL string, progress chan<- ProgressUpdate) (*models.Prediction, error)

	// Predict resolves genres for an already parsed video id.
	Predict(ctx context.Context, id models.VideoID, progress chan<- ProgressUpdate) (*models.Prediction, error)
}

// GenreEngine implements [Predictor] over a title fetcher and a music service.
type GenreEngine struct {
	titles  services.TitleFetcher
	music   services.MusicService
	logger  *log.Logger
	timeout time.Duration
}

// NewGenreEngine creates a new GenreEngine.
//
// A nil logger discards output; a non-positive timeout leaves network calls bounded only by ctx.
func NewGenreEngine(titles services.TitleFetcher, music services.MusicService, logger *log.Logger, timeout time.Duration) *GenreEngine {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &GenreEngine{
		titles:  titles,
		music:   music,
		logger:  logger,
		timeout: timeout,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *GenreEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// withTimeout bounds a single network call.
func (e *GenreEngine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

// Run parses rawURL, then performs [GenreEngine.Predict].
//
// An unparseable URL returns [shared.ErrInvalidURL] before any network call.
func (e *GenreEngine) Run(ctx context.Context, rawURL string, progress chan<- ProgressUpdate) (*models.Prediction, error) {
	e.sendProgress(progress, parseURLUpdate())

	id, err := models.ParseVideoID(rawURL)
	if err != nil {
		return nil, err
	}
	return e.Predict(ctx, id, progress)
}

// Predict fetches the title of id, normalizes it, exchanges credentials, and resolves genres.
//
// The first error ends the run. An empty genre list is a successful prediction.
func (e *GenreEngine) Predict(ctx context.Context, id models.VideoID, progress chan<- ProgressUpdate) (*models.Prediction, error) {
	if e.titles == nil {
		return nil, fmt.Errorf("%w: title service not initialized", shared.ErrServiceUnavailable)
	}
	if e.music == nil {
		return nil, fmt.Errorf("%w: music service not initialized", shared.ErrServiceUnavailable)
	}

	prediction := &models.Prediction{RunID: shared.GenerateID(), VideoID: id}
	logger := shared.WithLogger(e.logger, "run", prediction.RunID, "video", id.String())

	e.sendProgress(progress, fetchTitleUpdate(id))

	title, err := e.fetchTitle(ctx, id)
	if err != nil {
		logger.Warn("title lookup failed", "service", e.titles.Name(), "error", err)
		return nil, err
	}
	prediction.Title = title
	logger.Debug("fetched title", "title", title)

	e.sendProgress(progress, normalizeTitleUpdate(title))

	prediction.Query = shared.NormalizeTitle(title)
	logger.Debug("normalized title", "query", prediction.Query)

	e.sendProgress(progress, exchangeTokenUpdate())

	exchangeCtx, cancel := e.withTimeout(ctx)
	token, err := e.music.Exchange(exchangeCtx)
	cancel()
	if err != nil {
		logger.Error("credential exchange failed", "service", e.music.Name(), "error", err)
		return nil, err
	}

	e.sendProgress(progress, resolveGenresUpdate(prediction.Query))

	resolveCtx, cancel := e.withTimeout(ctx)
	genres, err := e.music.ResolveGenres(resolveCtx, prediction.Query, token)
	cancel()
	if err != nil {
		logger.Error("genre lookup failed", "service", e.music.Name(), "error", err)
		return nil, err
	}
	if genres == nil {
		genres = []string{}
	}
	prediction.Genres = genres
	logger.Info("prediction complete", "genres", len(genres))

	e.sendProgress(progress, completeUpdate(prediction))
	return prediction, nil
}

func (e *GenreEngine) fetchTitle(ctx context.Context, id models.VideoID) (string, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.titles.FetchTitle(ctx, id)
}
