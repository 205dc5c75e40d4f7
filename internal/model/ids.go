package model

import "fmt"

// ConnectionID uniquely identifies one physical client connection.
// IDs are never reused across connections.
type ConnectionID string

// Identity is the stable player identifier, independent of any connection.
type Identity string

// SessionID identifies an active two-party session. It is derived from the
// member connection ids, so participants and the router can compute it
// without a registry lookup.
type SessionID string

// SessionIDFor derives the session id for a pair of connections in pairing
// order (waiting connection first).
func SessionIDFor(first, second ConnectionID) SessionID {
	return SessionID(fmt.Sprintf("%s-%s", first, second))
}
