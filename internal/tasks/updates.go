package tasks

import (
	"fmt"

	"github.com/desertthunder/genregenie/internal/models"
)

// ProgressUpdate represents a progress event during a pipeline run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Pipeline phase
	Step    int    // Current step number
	Total   int    // Total steps in the run
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Pipeline phase enumeration
type Phase int

const (
	ParseURL Phase = iota
	FetchTitle
	NormalizeTitle
	ExchangeToken
	ResolveGenres
	Complete
)

// totalSteps counts the phases reported by [GenreEngine.Run].
const totalSteps = int(Complete) + 1

func (p Phase) String() string {
	switch p {
	case ParseURL:
		return "parse_url"
	case FetchTitle:
		return "fetch_title"
	case NormalizeTitle:
		return "normalize_title"
	case ExchangeToken:
		return "exchange_token"
	case ResolveGenres:
		return "resolve_genres"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func parseURLUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseURL,
		Step:    1,
		Total:   totalSteps,
		Message: "Reading video URL...",
	}
}

func fetchTitleUpdate(id models.VideoID) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTitle,
		Step:    2,
		Total:   totalSteps,
		Message: fmt.Sprintf("Fetching title for %s...", id),
		Data:    id,
	}
}

func normalizeTitleUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   NormalizeTitle,
		Step:    3,
		Total:   totalSteps,
		Message: fmt.Sprintf("Found: %s", title),
		Data:    title,
	}
}

func exchangeTokenUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExchangeToken,
		Step:    4,
		Total:   totalSteps,
		Message: "Requesting music service token...",
	}
}

func resolveGenresUpdate(query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveGenres,
		Step:    5,
		Total:   totalSteps,
		Message: fmt.Sprintf("Searching for %q...", query),
		Data:    query,
	}
}

func completeUpdate(p *models.Prediction) ProgressUpdate {
	msg := fmt.Sprintf("Resolved %d genre(s)", len(p.Genres))
	if !p.Found() {
		msg = "No genres found"
	}
	return ProgressUpdate{
		Phase:   Complete,
		Step:    totalSteps,
		Total:   totalSteps,
		Message: msg,
		Data:    p,
	}
}
