// Package services implements the external collaborators of a genre prediction.
//
// # YouTube Data API
//
// [YouTubeService] implements [TitleFetcher] with the generated google.golang.org/api/youtube/v3
// client. One videos.list call (part=snippet) is made per lookup, authenticated with an API key.
// Transport failures are returned wrapped in [shared.ErrAPIRequest]; every other failure
// (unknown id, error status, malformed body) is reported as [shared.ErrTitleNotFound].
//
// # Spotify Web API
//
// [SpotifyService] implements [TokenExchanger] and [GenreResolver].
//
// Tokens come from the client credentials grant ([clientcredentials.Config]) with the client id and
// secret sent as an HTTP Basic header. Tokens are never cached: each prediction performs a fresh exchange.
//
// Genre resolution makes two calls: a track search limited to one result, then an artist lookup for the
// first artist of that track. Missing matches, missing fields and error statuses produce an empty
// genre list, not an error; the status is logged as a warning.
//
// # Transport
//
// Spotify requests share an [http.Client] whose transport paces requests with a [rate.Limiter]
// ([NewRateLimitedTransport]). Nothing is retried.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrTitleNotFound] : the video has no readable title
//   - [shared.ErrAuthFailed] : the token endpoint rejected the credentials
//   - [shared.ErrAPIRequest] : transport or decode failure; [StatusError] for non-2xx responses
package services
