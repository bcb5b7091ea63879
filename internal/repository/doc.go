// Package repository implements the data access layer for the Snapgala API.
//
// The repository package contains all database operations using SurrealDB.
// Each repository struct handles the operations for one durable record type:
// events and photos.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, Get, UpdateStatus, ...)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// Events are keyed by their application-generated event_id field rather
// than the SurrealDB record id, and photos reference events by that same
// field without a referential constraint, so a photo may outlive its event.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax for security
//   - time::now() for automatic timestamps
//   - count() ... GROUP ALL for quota counts
//
// # Example Usage
//
//	repo := NewEventRepository(db)
//	event, err := repo.Get(ctx, "gala-1a2b3c4d5e")
//	if err != nil {
//	    return err
//	}
//	if event == nil {
//	    // Handle not found
//	}
package repository
