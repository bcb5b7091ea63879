// Package handler provides HTTP request handlers for the SnapGala API.
//
// Each handler struct encapsulates the dependencies needed to serve
// requests for a feature area. Guest-facing endpoints (event page, album,
// photo upload) live in EventHandler; the organizer conversation runs over
// a websocket served by the conversation package.
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteJSON: Raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// Service errors are translated to Problem Details by MapServiceError.
package handler
