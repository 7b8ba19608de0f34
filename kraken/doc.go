// Package kraken provides a client for the Twitch Kraken (v5) REST API.
//
// The client owns a set of credentials and an HTTP transport. Every request is
// sent to DefaultBaseURL with the versioned Accept header, the Client-ID header
// and an "OAuth <token>" Authorization header.
//
// # Usage
//
//	client, err := kraken.NewClient(credentials.FromFile("credentials.toml"),
//		kraken.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	games, err := kraken.Get[TopGames](ctx, client, "/games/top?limit=20")
//
// Response types are plain structs with json tags; the pipeline only needs
// them to be decodable with encoding/json.
//
// # Error Handling
//
// A failed call returns exactly one of:
//
//   - *TransportError: the HTTP round trip did not complete
//   - ErrEmptyResponse: the server sent no body (match with errors.Is)
//   - *DecodeError: the body matched neither the requested type nor the error shape
//   - *APIError: the server sent a structured error object
//
// When a 2xx body fails to decode as the requested type but is a valid error
// object, the returned APIError wraps the DecodeError as its Cause. Non-2xx
// responses are always decoded as error objects. KindOf classifies any of these.
//
// Calls made with empty credentials fail locally with
// credentials.ErrMissingCredentials before any network I/O.
package kraken
