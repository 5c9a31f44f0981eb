// package models defines the data model for genre predictions
package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/desertthunder/genregenie/internal/shared"
)

// VideoIDLength is the length of every YouTube video identifier.
const VideoIDLength = 11

var videoIDRe = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// VideoID is an 11-character YouTube video identifier.
type VideoID string

// ParseVideoID extracts the first 11-character identifier that follows "v=" or "/" in raw.
//
// No other heuristics are attempted (shortened-link expansion, bare ids, etc.).
func ParseVideoID(raw string) (VideoID, error) {
	raw = strings.TrimSpace(raw)
	match := videoIDRe.FindStringSubmatch(raw)
	if len(match) < 2 {
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidURL, raw)
	}
	return VideoID(match[1]), nil
}

func (v VideoID) String() string { return string(v) }

// Prediction is the outcome of one pipeline run.
type Prediction struct {
	RunID   string   `json:"run_id"`
	VideoID VideoID  `json:"video_id"`
	Title   string   `json:"title"`
	Query   string   `json:"query"`
	Genres  []string `json:"genres"` // Upstream order, may be empty
}

// Found reports whether any genre was resolved.
func (p *Prediction) Found() bool {
	return p != nil && len(p.Genres) > 0
}
