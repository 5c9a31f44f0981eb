package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/genregenie/internal/services"
	"github.com/desertthunder/genregenie/internal/shared"
	"github.com/desertthunder/genregenie/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	titles     services.TitleFetcher
	music      services.MusicService
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.GenreEngine
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is resolved from flags, files and the environment in [Runner.Setup];
// nil services are built from the resolved config.
type RunnerOpts struct {
	Config *shared.Config
	Titles services.TitleFetcher
	Music  services.MusicService
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config: opts.Config,
		titles: opts.Titles,
		music:  opts.Music,
		logger: opts.Logger,
		output: opts.Output,
	}
	r.buildEngine()
	return r
}

// Setup resolves configuration once per process and wires the services into the engine.
//
// Runs as the root command's Before hook.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")

	if r.config == nil {
		config, err := shared.Resolve(r.configPath, cmd.String("env-file"))
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	level := shared.ParseLogLevel(r.config.Log.Level)
	if cmd.Bool("debug") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	if r.titles == nil {
		youtube, err := services.NewYouTubeService(ctx, r.config.Credentials.YouTube)
		if err != nil {
			return ctx, err
		}
		r.titles = youtube
	}
	if r.music == nil {
		client := services.NewHTTPClient(r.config.HTTP)
		r.music = services.NewSpotifyService(r.config.Credentials.Spotify, client)
	}

	r.buildEngine()
	r.logger.Debug("configuration resolved", "config", r.configPath, "timeout", r.config.HTTP.Timeout, "rate_limit", r.config.HTTP.RateLimit)
	return ctx, nil
}

// SetLogger replaces the logger used by commands and the engine.
func (r *Runner) SetLogger(l *log.Logger) {
	l.SetLevel(r.logger.GetLevel())
	r.logger = l
	r.buildEngine()
}

func (r *Runner) buildEngine() {
	var timeout shared.Duration
	if r.config != nil {
		timeout = r.config.HTTP.Timeout
	}
	if l, ok := r.music.(services.Loggable); ok {
		l.SetLogger(r.logger)
	}
	r.engine = tasks.NewGenreEngine(r.titles, r.music, r.logger, timeout.Duration)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, guessCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
