// Package conversation is the websocket gateway for the organizer channel.
//
// Organizers drive event creation over a single websocket connection.
// Inbound frames are discrete "command", "text", and "image" events tagged
// with the organizer identity; they are dispatched to the creation state
// machine. Outbound messages from the state machine are delivered as
// "message" frames to every open connection for that organizer.
//
// The gateway carries no session state of its own; everything lives in the
// session store behind the creation service.
package conversation
