package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDurationFor(t *testing.T) {
	assert.Equal(t, 5*time.Second, DefaultDurationFor(KindSuccess))
	assert.Equal(t, 5*time.Second, DefaultDurationFor(KindWarning))
	assert.Equal(t, 5*time.Second, DefaultDurationFor(KindInfo))
	assert.Equal(t, 7*time.Second, DefaultDurationFor(KindError))
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" Warning ")
	require.NoError(t, err)
	assert.Equal(t, KindWarning, kind)

	_, err = ParseKind("debug")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestNotification_JSONUsesMilliseconds(t *testing.T) {
	n := Notification{ID: 4, Kind: KindError, Title: "Error", Message: "Failed", Duration: 7 * time.Second}

	payload, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4,"type":"error","title":"Error","message":"Failed","duration":7000}`, string(payload))

	var decoded Notification
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, n, decoded)
}

func TestNotification_Persistent(t *testing.T) {
	assert.True(t, Notification{}.Persistent())
	assert.False(t, Notification{Duration: time.Millisecond}.Persistent())
}
