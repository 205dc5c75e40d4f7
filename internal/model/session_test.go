package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *Session {
	return &Session{
		ID: SessionIDFor("c1", "c2"),
		Members: [2]Participant{
			{ConnID: "c1", Identity: "u1", DisplayName: "Alice"},
			{ConnID: "c2", Identity: "u2", DisplayName: "Bob"},
		},
		Scores: ScoreBoard{"u1": 0, "u2": 0},
	}
}

func TestSessionIDForIsDeterministic(t *testing.T) {
	assert.Equal(t, SessionID("c1-c2"), SessionIDFor("c1", "c2"))
	assert.Equal(t, SessionIDFor("c1", "c2"), SessionIDFor("c1", "c2"))
	assert.NotEqual(t, SessionIDFor("c1", "c2"), SessionIDFor("c2", "c1"))
}

func TestOpponent(t *testing.T) {
	s := testSession()

	opp, ok := s.Opponent("c1")
	require.True(t, ok)
	assert.Equal(t, Identity("u2"), opp.Identity)

	opp, ok = s.Opponent("c2")
	require.True(t, ok)
	assert.Equal(t, Identity("u1"), opp.Identity)

	_, ok = s.Opponent("c3")
	assert.False(t, ok)
}

func TestOutcome(t *testing.T) {
	s := testSession()

	assert.Nil(t, s.Outcome(), "zero-zero is a draw")

	s.Scores["u1"] = 2
	s.Scores["u2"] = 2
	assert.Nil(t, s.Outcome(), "equal scores is a draw")

	s.Scores["u1"] = 3
	winner := s.Outcome()
	require.NotNil(t, winner)
	assert.Equal(t, Identity("u1"), *winner)

	s.Scores["u2"] = 5
	winner = s.Outcome()
	require.NotNil(t, winner)
	assert.Equal(t, Identity("u2"), *winner)
}

func TestScoreBoardCloneIsIndependent(t *testing.T) {
	sb := ScoreBoard{"u1": 1}
	clone := sb.Clone()
	sb["u1"] = 9

	assert.Equal(t, 1, clone["u1"])
}
