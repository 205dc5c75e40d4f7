package arena

import (
	"log/slog"

	"github.com/ghostduel/server/internal/model"
)

// Event routing. Gameplay payloads are forwarded unchanged to the sender's
// opponent only. Unknown session ids and non-member senders are dropped
// silently: events legitimately arrive after a session has ended.

// RouteGhostSpawn forwards a send_ghost payload to the opponent.
func (c *Coordinator) RouteGhostSpawn(sender Conn, ev model.SendGhost) {
	target, ok := c.lookupOpponent(ev.SessionID, sender.ID())
	if !ok {
		return
	}
	target.Send(model.EnemyGhost{
		GhostType: ev.GhostType,
		GhostID:   ev.GhostID,
		Position:  ev.Position,
		Lane:      ev.Lane,
		From:      sender.ID(),
	})
}

// RouteGhostPosition forwards an update_ghost_position payload to the opponent.
func (c *Coordinator) RouteGhostPosition(sender Conn, ev model.UpdateGhostPosition) {
	target, ok := c.lookupOpponent(ev.SessionID, sender.ID())
	if !ok {
		return
	}
	target.Send(model.EnemyGhostPosition{
		GhostID:  ev.GhostID,
		Position: ev.Position,
	})
}

// RecordKill increments the scoring identity's tally and broadcasts the
// updated scoreboard to both members. A stale session id or an identity that
// is not a participant is a logged no-op, never an error.
func (c *Coordinator) RecordKill(sender Conn, ev model.GhostKilled) {
	c.mu.Lock()
	sess, ok := c.sessions[ev.SessionID]
	if !ok {
		c.mu.Unlock()
		c.logger.Debug("kill for unknown session dropped",
			slog.String("session_id", string(ev.SessionID)),
			slog.Any("error", model.ErrSessionNotFound))
		return
	}
	if !sess.HasIdentity(ev.By) {
		c.mu.Unlock()
		c.logger.Debug("kill for unknown identity dropped",
			slog.String("session_id", string(ev.SessionID)),
			slog.String("identity", string(ev.By)),
			slog.Any("error", model.ErrNotParticipant))
		return
	}

	sess.Scores[ev.By]++
	update := model.ScoreUpdate{Scores: sess.Scores.Clone()}
	conns := sess.conns
	c.mu.Unlock()

	// Delivery happens outside the lock; the snapshot above keeps the
	// broadcast consistent even if another kill lands concurrently.
	conns[0].Send(update)
	conns[1].Send(update)
}

// lookupOpponent resolves the opponent's connection under the lock; delivery
// itself is a pure forward and needs no lock.
func (c *Coordinator) lookupOpponent(id model.SessionID, sender model.ConnectionID) (Conn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[id]
	if !ok {
		c.logger.Debug("event for unknown session dropped",
			slog.String("session_id", string(id)))
		return nil, false
	}
	target, ok := sess.opponentConn(sender)
	if !ok {
		c.logger.Debug("event from non-member dropped",
			slog.String("session_id", string(id)),
			slog.String("conn_id", string(sender)))
		return nil, false
	}
	return target, true
}
