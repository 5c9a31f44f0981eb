package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/genregenie/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the embedded example configuration to the --config path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = "config.toml"
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("created config file", "path", path)
	return r.writePlain("Created %s\nFill in credentials or set %s, %s and %s.\n",
		path, shared.EnvYouTubeAPIKey, shared.EnvSpotifyClient, shared.EnvSpotifySecret)
}

// ConfigCheck prints the resolved settings with credentials masked.
//
// Returns [shared.ErrMissingCredentials] naming every unset credential.
func (r *Runner) ConfigCheck(ctx context.Context, cmd *cli.Command) error {
	config := r.config
	if config == nil {
		config = shared.DefaultConfig()
	}

	source := "(defaults)"
	if _, err := os.Stat(r.configPath); err == nil {
		source = r.configPath
	}

	r.writePlainHeader("Genre Genie configuration")
	r.writePlain("Config file:      %s\n", source)
	r.writePlain("%-17s %s\n", shared.EnvYouTubeAPIKey+":", shared.MaskSecret(config.Credentials.YouTube.APIKey))
	r.writePlain("%-17s %s\n", shared.EnvSpotifyClient+":", shared.MaskSecret(config.Credentials.Spotify.ClientID))
	r.writePlain("%-17s %s\n", shared.EnvSpotifySecret+":", shared.MaskSecret(config.Credentials.Spotify.ClientSecret))
	r.writePlain("Timeout:          %s\n", config.HTTP.Timeout)
	r.writePlain("Rate limit:       %g req/s\n", config.HTTP.RateLimit)

	if missing := config.MissingCredentials(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", shared.ErrMissingCredentials, strings.Join(missing, ", "))
	}

	return r.writePlain("\nAll credentials set.\n")
}
