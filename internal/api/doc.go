// Package api provides an HTTP client for the photo-sharing REST API.
//
// # Overview
//
// The package defines the client shutter uses to read and write photos,
// albums, comments and replies. It handles HTTP communication, multipart form
// encoding, JSON decoding, and the API's error conventions.
//
// The package is split by resource:
//
//   - client.go: Client construction, request plumbing, multipart encoding
//   - photos.go, albums.go, comments.go: one method per endpoint
//   - types.go: entity structs mirroring the API's to_dict() payloads
//   - errors.go: ResponseError and ErrorPayload
//
// # Client Usage
//
//	client, err := api.NewClient("http://127.0.0.1:5000", api.Options{
//		SessionCookie: cfg.SessionCookie,
//	})
//	if err != nil {
//		return fmt.Errorf("init api client: %w", err)
//	}
//
//	photos, err := client.FetchPhotos(ctx)
//
// # Request Handling
//
// All requests:
//   - Use the caller's context for cancellation
//   - Set Accept: application/json and User-Agent: shutter/0.1
//   - Carry a fresh X-Request-ID (UUID) for correlation with server logs
//   - Send the session and CSRF cookies when configured
//
// There is no client-side timeout. A request waits until the server answers
// or the context is cancelled.
//
// # Error Handling
//
// Three failure classes reach the caller:
//
//   - Transport errors: "execute request: dial tcp: connection refused"
//   - Non-success statuses: *ResponseError with the raw body, and the parsed
//     {"error": ...} or {"errors": {...}} object when present
//   - Malformed bodies: "decode response: unexpected EOF"
//
// The user-scoped list endpoints answer an unknown user with a success
// status and an error object instead of an array; those responses are also
// reported as *ResponseError.
//
// Use AsResponseError (or errors.As) to inspect the status and payload.
//
// # Thread Safety
//
// Client is safe for concurrent use. No request is retried or de-duplicated.
package api
