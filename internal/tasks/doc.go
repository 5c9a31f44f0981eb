// Package tasks runs the genre prediction pipeline with real-time progress reporting.
//
// # Pipeline
//
// [GenreEngine.Run] performs one prediction for a pasted URL:
//
//  1. Parse the video id from the URL ([models.ParseVideoID]); no network call on failure
//  2. Fetch the video title ([services.TitleFetcher])
//  3. Normalize the title into a search query ([shared.NormalizeTitle])
//  4. Exchange client credentials for a fresh bearer token ([services.TokenExchanger])
//  5. Search the top track and read its first artist's genres ([services.GenreResolver])
//
// [GenreEngine.Predict] starts at step 2 for callers that parse the URL themselves.
//
// Tokens are never cached; every run performs its own exchange. Each network step runs under its
// own timeout and the first error ends the run.
//
// # Progress Reporting
//
// Progress updates are sent on an optional channel without blocking.
// The [ProgressUpdate] struct carries the phase, step counters and a display message.
package tasks
