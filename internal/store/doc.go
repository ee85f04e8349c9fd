// Package store holds the client's normalized state: the boards visible to the
// user with their stacks and cards, and the current session. Screens read
// copies and subscribe to change events; services mutate it after talking to
// the server.
package store
