package arena

import "github.com/ghostduel/server/internal/model"

// Conn is the transport-side handle the coordinator delivers events through.
// Send must never block: the transport owns buffering and drops messages it
// cannot queue. This lets the coordinator emit events from inside its locked
// sections without risking a stall on a slow client.
type Conn interface {
	ID() model.ConnectionID
	Send(event model.Outbound)
}
