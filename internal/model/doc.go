// Package model defines the domain types for the Snapgala API.
//
// The package contains the durable records (Event, Photo), the volatile
// event-creation session with its per-step state types, request/response
// shapes for the HTTP boundary, and RFC 9457 Problem Details used for
// error responses.
//
// Types here have no behavior beyond simple derived checks; validation
// rules and orchestration live in the service layer.
package model
