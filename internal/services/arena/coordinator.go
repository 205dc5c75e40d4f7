package arena

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ghostduel/server/internal/dependencies/clock"
	"github.com/ghostduel/server/internal/model"
	"github.com/ghostduel/server/internal/services/identity"
)

// Config holds tunables for the coordinator
type Config struct {
	// GameDuration is the fixed length of every session
	GameDuration time.Duration

	// DisconnectGrace delays the disconnect notification so that a
	// near-simultaneous rejoin under the same identity can supersede it
	DisconnectGrace time.Duration
}

// DefaultConfig returns the default coordinator configuration
func DefaultConfig() Config {
	return Config{
		GameDuration:    60 * time.Second,
		DisconnectGrace: 2 * time.Second,
	}
}

// binding is the identity a connection joined with, set once for the
// connection's lifetime. The token is kept so a repeated join can be
// recognised as idempotent without resolving it again.
type binding struct {
	token    string
	identity model.Identity
}

// member is a resolved connection awaiting or holding a session.
type member struct {
	conn        Conn
	identity    model.Identity
	displayName string
}

func (m member) participant() model.Participant {
	return model.Participant{
		ConnID:      m.conn.ID(),
		Identity:    m.identity,
		DisplayName: m.displayName,
	}
}

// session is the coordinator's live view of a match: the model state plus the
// transport handles and pending timers.
type session struct {
	model.Session

	conns [2]Conn

	// timer ends the session at its natural duration
	timer clock.Timer
	// grace, when non-nil, is an armed disconnect grace timer
	grace clock.Timer
}

func (s *session) opponentConn(id model.ConnectionID) (Conn, bool) {
	switch id {
	case s.Members[0].ConnID:
		return s.conns[1], true
	case s.Members[1].ConnID:
		return s.conns[0], true
	}
	return nil, false
}

func (s *session) connOfIdentity(id model.Identity) (Conn, bool) {
	switch id {
	case s.Members[0].Identity:
		return s.conns[0], true
	case s.Members[1].Identity:
		return s.conns[1], true
	}
	return nil, false
}

// Coordinator owns all mutable matchmaking state: the single waiting slot,
// the session registry with its scores, and the connection/identity indexes.
// Every mutation passes through one mutex as a discrete, ordered operation.
// Identity resolution is the only suspending call and always happens before
// the lock is taken; reclamation re-checks state under the lock rather than
// trusting a pre-lock snapshot.
type Coordinator struct {
	resolver identity.Resolver
	clock    clock.Clock
	cfg      Config
	logger   *slog.Logger

	mu         sync.Mutex
	waiting    *member
	sessions   map[model.SessionID]*session
	byConn     map[model.ConnectionID]model.SessionID
	byIdentity map[model.Identity]model.SessionID
	bound      map[model.ConnectionID]binding
}

// NewCoordinator creates a new Coordinator
func NewCoordinator(resolver identity.Resolver, clk clock.Clock, cfg Config, logger *slog.Logger) *Coordinator {
	if cfg.GameDuration == 0 {
		cfg.GameDuration = DefaultConfig().GameDuration
	}
	return &Coordinator{
		resolver:   resolver,
		clock:      clk,
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "arena")),
		sessions:   make(map[model.SessionID]*session),
		byConn:     make(map[model.ConnectionID]model.SessionID),
		byIdentity: make(map[model.Identity]model.SessionID),
		bound:      make(map[model.ConnectionID]binding),
	}
}

// Join handles a join_game request: resolve the identity token, reclaim any
// stale footprint the identity left on a previous connection, then pair with
// the waiting connection or occupy the waiting slot. A connection that is
// already bound never rebinds; the binding lasts until it disconnects.
func (c *Coordinator) Join(ctx context.Context, conn Conn, token string) {
	// A connection binds once. The check runs before resolution: a repeated
	// join with the same token is an idempotent no-op that must not re-hit
	// the resolver, and a different token can never rebind the connection
	// while its first binding is live.
	c.mu.Lock()
	if b, ok := c.bound[conn.ID()]; ok {
		c.mu.Unlock()
		if b.token == token {
			c.logger.Debug("duplicate join ignored",
				slog.String("conn_id", string(conn.ID())),
				slog.String("identity", string(b.identity)))
			return
		}
		c.logger.Warn("rebind rejected",
			slog.String("conn_id", string(conn.ID())),
			slog.String("identity", string(b.identity)))
		conn.Send(model.ErrorEvent{Reason: "already bound"})
		return
	}
	c.mu.Unlock()

	// Resolution may suspend on an external store; two joins for the same
	// identity can both pass it before either reaches the lock below.
	res, err := c.resolver.Resolve(ctx, token)
	if err != nil {
		c.logger.Info("join rejected",
			slog.String("conn_id", string(conn.ID())),
			slog.Any("error", err))
		conn.Send(model.ErrorEvent{Reason: "identity not found"})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.bound[conn.ID()] = binding{token: token, identity: res.Identity}

	c.reclaimLocked(res.Identity, conn.ID())

	joiner := member{conn: conn, identity: res.Identity, displayName: res.DisplayName}

	if c.waiting == nil {
		c.waiting = &joiner
		c.logger.Info("connection enqueued",
			slog.String("conn_id", string(conn.ID())),
			slog.String("identity", string(res.Identity)))
		conn.Send(model.WaitingForOpponent{})
		return
	}

	if c.waiting.conn.ID() == conn.ID() {
		// A connection's join cannot run twice concurrently with itself, so
		// this indicates a transport bug; refuse to pair it with itself.
		c.logger.Error("self-pairing rejected",
			slog.String("conn_id", string(conn.ID())),
			slog.Any("error", model.ErrSelfPairing))
		conn.Send(model.ErrorEvent{Reason: "already waiting"})
		return
	}

	opponent := *c.waiting
	c.waiting = nil
	c.startSessionLocked(opponent, joiner)
}

// reclaimLocked clears any matchmaking or session footprint the identity
// left behind on another connection. A rejoin is authoritative evidence the
// prior connection is dead, so it supersedes any in-flight disconnect grace.
func (c *Coordinator) reclaimLocked(id model.Identity, current model.ConnectionID) {
	if c.waiting != nil && c.waiting.identity == id && c.waiting.conn.ID() != current {
		c.logger.Info("waiting slot reclaimed",
			slog.String("identity", string(id)),
			slog.String("stale_conn_id", string(c.waiting.conn.ID())))
		c.waiting = nil
	}

	sid, ok := c.byIdentity[id]
	if !ok {
		return
	}
	sess, ok := c.sessions[sid]
	if !ok {
		// Index out of step with the registry; heal by dropping the entry.
		c.logger.Error("dangling identity index healed",
			slog.String("identity", string(id)),
			slog.String("session_id", string(sid)))
		delete(c.byIdentity, id)
		return
	}

	if opponent, ok := sess.OpponentOfIdentity(id); ok {
		if oppConn, ok := sess.connOfIdentity(opponent.Identity); ok {
			oppConn.Send(model.OpponentDisconnected{})
		}
	}
	c.destroySessionLocked(sess)
	c.logger.Info("stale session reclaimed",
		slog.String("session_id", string(sid)),
		slog.String("identity", string(id)))
}

// startSessionLocked creates a session for the ordered pair, arms its timer,
// and sends each member its personalised game_start.
func (c *Coordinator) startSessionLocked(first, second member) {
	// Reclamation runs before pairing, so neither connection should still be
	// in a session here. If one is, the registry is inconsistent; heal by
	// dropping the stale session rather than corrupting membership.
	for _, m := range [2]member{first, second} {
		if sid, ok := c.byConn[m.conn.ID()]; ok {
			c.logger.Error("connection already in session",
				slog.String("conn_id", string(m.conn.ID())),
				slog.String("session_id", string(sid)),
				slog.Any("error", model.ErrAlreadyInSession))
			if stale, ok := c.sessions[sid]; ok {
				c.destroySessionLocked(stale)
			} else {
				delete(c.byConn, m.conn.ID())
			}
		}
	}

	id := model.SessionIDFor(first.conn.ID(), second.conn.ID())
	sess := &session{
		Session: model.Session{
			ID:      id,
			Members: [2]model.Participant{first.participant(), second.participant()},
			Scores: model.ScoreBoard{
				first.identity:  0,
				second.identity: 0,
			},
			StartedAt: c.clock.Now(),
			Duration:  c.cfg.GameDuration,
		},
		conns: [2]Conn{first.conn, second.conn},
	}

	c.sessions[id] = sess
	c.byConn[first.conn.ID()] = id
	c.byConn[second.conn.ID()] = id
	c.byIdentity[first.identity] = id
	c.byIdentity[second.identity] = id

	sess.timer = c.clock.AfterFunc(c.cfg.GameDuration, func() { c.timeUp(id) })

	seconds := int(c.cfg.GameDuration / time.Second)
	first.conn.Send(model.GameStart{
		SessionID:       id,
		ConnectionID:    first.conn.ID(),
		Opponent:        model.OpponentInfo{Identity: second.identity, DisplayName: second.displayName},
		DurationSeconds: seconds,
	})
	second.conn.Send(model.GameStart{
		SessionID:       id,
		ConnectionID:    second.conn.ID(),
		Opponent:        model.OpponentInfo{Identity: first.identity, DisplayName: first.displayName},
		DurationSeconds: seconds,
	})

	c.logger.Info("session started",
		slog.String("session_id", string(id)),
		slog.String("first", string(first.identity)),
		slog.String("second", string(second.identity)))
}

// timeUp is the session duration callback. The session may already be gone,
// torn down by a faster path; a fired timer for a missing id is a no-op.
func (c *Coordinator) timeUp(id model.SessionID) {
	c.mu.Lock()
	sess, ok := c.sessions[id]
	if !ok {
		c.mu.Unlock()
		c.logger.Debug("timer fired for ended session", slog.String("session_id", string(id)))
		return
	}

	winner := sess.Outcome()
	over := model.GameOver{Winner: winner, Scores: sess.Scores.Clone()}
	conns := sess.conns
	c.destroySessionLocked(sess)
	c.mu.Unlock()

	conns[0].Send(over)
	conns[1].Send(over)

	c.logger.Info("session completed", slog.String("session_id", string(id)))
}

// Disconnect handles the transport's disconnect callback for conn.
func (c *Coordinator) Disconnect(conn Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.bound, conn.ID())

	if c.waiting != nil && c.waiting.conn.ID() == conn.ID() {
		// No opponent existed yet, so nobody to notify.
		c.waiting = nil
		c.logger.Debug("waiting connection disconnected",
			slog.String("conn_id", string(conn.ID())))
		return
	}

	sid, ok := c.byConn[conn.ID()]
	if !ok {
		return
	}
	sess, ok := c.sessions[sid]
	if !ok {
		delete(c.byConn, conn.ID())
		return
	}

	if sess.grace != nil {
		// The other member is already gone too; nothing left to notify.
		c.destroySessionLocked(sess)
		c.logger.Info("session abandoned by both members",
			slog.String("session_id", string(sid)))
		return
	}

	// Hold the teardown for a short grace window: if the same identity
	// rejoins in the meantime, reclamation destroys the session first and
	// the opponent hears about it exactly once, from that path.
	gone := conn.ID()
	sess.grace = c.clock.AfterFunc(c.cfg.DisconnectGrace, func() { c.finishDisconnect(sid, gone) })
	c.logger.Debug("disconnect grace started",
		slog.String("session_id", string(sid)),
		slog.String("conn_id", string(gone)))
}

// finishDisconnect runs when a disconnect grace window elapses. If the
// session was reclaimed or ended in the meantime, nothing happens.
func (c *Coordinator) finishDisconnect(id model.SessionID, gone model.ConnectionID) {
	c.mu.Lock()
	sess, ok := c.sessions[id]
	if !ok {
		c.mu.Unlock()
		return
	}

	remaining, hasRemaining := sess.opponentConn(gone)
	c.destroySessionLocked(sess)
	c.mu.Unlock()

	if hasRemaining {
		remaining.Send(model.OpponentDisconnected{})
	}

	c.logger.Info("session ended by disconnect",
		slog.String("session_id", string(id)),
		slog.String("conn_id", string(gone)))
}

// destroySessionLocked removes the session and every index entry pointing at
// it, and stops its timers. Timer callbacks that already fired re-check the
// registry and find nothing.
func (c *Coordinator) destroySessionLocked(sess *session) {
	if sess.timer != nil {
		sess.timer.Stop()
	}
	if sess.grace != nil {
		sess.grace.Stop()
	}
	delete(c.sessions, sess.ID)
	for _, m := range sess.Members {
		if c.byConn[m.ConnID] == sess.ID {
			delete(c.byConn, m.ConnID)
		}
		if c.byIdentity[m.Identity] == sess.ID {
			delete(c.byIdentity, m.Identity)
		}
	}
}

// ActiveSessions returns the number of sessions currently in the registry.
func (c *Coordinator) ActiveSessions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// HasWaiting reports whether the waiting slot is occupied.
func (c *Coordinator) HasWaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiting != nil
}
