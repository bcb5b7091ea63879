// Package service implements the business logic layer for the Snapgala API.
//
// The service package contains the event-creation state machine and the
// guest upload admission controller, plus the album read paths. Services
// are the abstraction between the inbound channels (conversation gateway,
// HTTP handlers) and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with dependencies
//   - Services define their own narrow repository interfaces for easy mocking
//   - Errors are returned as sentinel errors defined in errors.go
//   - Context is passed through for cancellation
//
// # State machine
//
// The creation service processes one input at a time per organizer; the
// session store's Do method provides that serialization. Every input
// either completes a step transition or leaves the session exactly as it
// was. Validation failures never escape the state machine; they become
// re-prompt messages on the conversation channel.
package service
