// package formatter renders predictions and pipeline errors as label text, plain text, or JSON
package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/genregenie/internal/models"
	"github.com/desertthunder/genregenie/internal/shared"
)

const (
	labelPrefix   = "Predicted Genre(s): "
	genreNotFound = "Genre not found"
	errorPrefix   = "Error: "
)

// Channel is where an outcome is shown to the user.
type Channel int

const (
	// None is a successful prediction, including an empty one.
	None Channel = iota
	// Dialog blocks the form until dismissed; used for input errors.
	Dialog
	// Inline replaces the result label.
	Inline
)

func (c Channel) String() string {
	switch c {
	case Dialog:
		return "dialog"
	case Inline:
		return "inline"
	default:
		return "none"
	}
}

// IsInputError reports whether err is caused by the pasted URL rather than a music service.
func IsInputError(err error) bool {
	return errors.Is(err, shared.ErrInvalidURL) ||
		errors.Is(err, shared.ErrTitleNotFound) ||
		errors.Is(err, shared.ErrMissingArgument)
}

// Classify picks the channel for err.
func Classify(err error) Channel {
	switch {
	case err == nil:
		return None
	case IsInputError(err):
		return Dialog
	default:
		return Inline
	}
}

// DialogMessage returns the fixed user-facing message for an input error.
func DialogMessage(err error) string {
	switch {
	case errors.Is(err, shared.ErrInvalidURL):
		return "Invalid YouTube URL."
	case errors.Is(err, shared.ErrTitleNotFound):
		return "Could not get video title."
	case errors.Is(err, shared.ErrMissingArgument):
		return "Please paste a YouTube URL."
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}

// Genres joins genres with ", " or returns "Genre not found" when empty.
func Genres(genres []string) string {
	if len(genres) == 0 {
		return genreNotFound
	}
	return strings.Join(genres, ", ")
}

// Label renders the result region text for a pipeline outcome.
//
// Input errors render their dialog message; every other error renders as "Error: <message>".
func Label(p *models.Prediction, err error) string {
	switch Classify(err) {
	case Dialog:
		return DialogMessage(err)
	case Inline:
		return errorPrefix + err.Error()
	}

	if p == nil {
		return labelPrefix + genreNotFound
	}
	return labelPrefix + Genres(p.Genres)
}

// ExportToText converts a Prediction to plain text format
func ExportToText(p *models.Prediction) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("nil prediction")
	}

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Video: %s\n", p.VideoID))
	buf.WriteString(fmt.Sprintf("Title: %s\n", p.Title))
	buf.WriteString(fmt.Sprintf("Query: %s\n", p.Query))
	buf.WriteString(Label(p, nil) + "\n")

	return buf.Bytes(), nil
}

// ExportToJSON converts a Prediction to indented JSON. Genres are always an array.
func ExportToJSON(p *models.Prediction) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("nil prediction")
	}

	out := *p
	if out.Genres == nil {
		out.Genres = []string{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteExport writes a Prediction to path as JSON when asJSON is set, otherwise as plain text.
//
// Defaults to {video id}_genres.json or {video id}_genres.txt as the filename.
func WriteExport(p *models.Prediction, path string, asJSON bool) (string, error) {
	if p == nil {
		return "", fmt.Errorf("nil prediction")
	}

	export, ext := ExportToText, "txt"
	if asJSON {
		export, ext = ExportToJSON, "json"
	}

	if path == "" {
		path = fmt.Sprintf("%s_genres.%s", p.VideoID, ext)
	}

	data, err := export(p)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", ext, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", ext, err)
	}

	return path, nil
}
