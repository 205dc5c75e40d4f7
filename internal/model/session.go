package model

import "time"

// Participant couples a connection with the identity bound to it.
type Participant struct {
	ConnID      ConnectionID
	Identity    Identity
	DisplayName string
}

// ScoreBoard maps participant identity to score. It is keyed by identity
// rather than connection id so that score bookkeeping is tied to the player,
// not the volatile connection, for as long as the session lives.
type ScoreBoard map[Identity]int

// Clone returns a copy safe to hand outside the coordinator lock.
func (sb ScoreBoard) Clone() ScoreBoard {
	out := make(ScoreBoard, len(sb))
	for id, score := range sb {
		out[id] = score
	}
	return out
}

// Session is one active two-party match. A session always has exactly two
// members; it is created and destroyed as a unit.
type Session struct {
	ID        SessionID
	Members   [2]Participant
	Scores    ScoreBoard
	StartedAt time.Time
	Duration  time.Duration
}

// Member returns the participant bound to the given connection.
func (s *Session) Member(id ConnectionID) (Participant, bool) {
	for _, m := range s.Members {
		if m.ConnID == id {
			return m, true
		}
	}
	return Participant{}, false
}

// Opponent returns the participant opposite the given connection.
func (s *Session) Opponent(id ConnectionID) (Participant, bool) {
	switch id {
	case s.Members[0].ConnID:
		return s.Members[1], true
	case s.Members[1].ConnID:
		return s.Members[0], true
	}
	return Participant{}, false
}

// OpponentOfIdentity returns the participant opposite the given identity.
func (s *Session) OpponentOfIdentity(id Identity) (Participant, bool) {
	switch id {
	case s.Members[0].Identity:
		return s.Members[1], true
	case s.Members[1].Identity:
		return s.Members[0], true
	}
	return Participant{}, false
}

// HasIdentity reports whether the identity is a recognised participant.
func (s *Session) HasIdentity(id Identity) bool {
	_, ok := s.Scores[id]
	return ok
}

// Outcome returns the winning identity, or nil for a draw.
func (s *Session) Outcome() *Identity {
	first, second := s.Members[0].Identity, s.Members[1].Identity
	switch {
	case s.Scores[first] > s.Scores[second]:
		return &first
	case s.Scores[second] > s.Scores[first]:
		return &second
	default:
		return nil
	}
}
