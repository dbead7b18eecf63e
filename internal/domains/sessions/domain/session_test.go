package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	session := NewSession(now, time.Hour)

	id, err := ParseID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, id)
	assert.Equal(t, now.Add(time.Hour), session.ExpiresAt)
	assert.False(t, session.Expired(now))
	assert.True(t, session.Expired(now.Add(time.Hour)))
}

func TestParseID_RejectsGarbage(t *testing.T) {
	_, err := ParseID("not-a-session")
	assert.ErrorIs(t, err, ErrInvalidSessionID)

	id, err := ParseID(" 6BA7B810-9DAD-11D1-80B4-00C04FD430C8 ")
	require.NoError(t, err)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id)
}
