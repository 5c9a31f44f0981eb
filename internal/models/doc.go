// Package models defines the transient values that flow through one genre prediction.
//
// Every value is created fresh for a single submission and discarded once the result is shown:
//   - [VideoID] : the 11-character identifier parsed from a YouTube URL by [ParseVideoID]
//   - [Prediction] : the fetched title, the normalized search query and the resolved genres
//
// Nothing in this package is persisted or shared between runs.
package models
