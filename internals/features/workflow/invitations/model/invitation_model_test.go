package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatusDerivedExpiry(t *testing.T) {
	expires := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	inv := InvitationModel{
		InvitationStatus:    StatusPending,
		InvitationExpiresAt: expires,
	}

	assert.Equal(t, StatusPending, inv.EffectiveStatus(expires.Add(-time.Minute)))
	// exactly at the boundary the invitation is still valid
	assert.Equal(t, StatusPending, inv.EffectiveStatus(expires))
	assert.Equal(t, StatusExpired, inv.EffectiveStatus(expires.Add(time.Second)))

	// the stored row is not touched by the derivation
	assert.Equal(t, StatusPending, inv.InvitationStatus)
}

func TestEffectiveStatusNeverRewritesAnswers(t *testing.T) {
	expires := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	for _, status := range []string{StatusAccepted, StatusRejected, StatusExpired} {
		inv := InvitationModel{InvitationStatus: status, InvitationExpiresAt: expires}
		assert.Equal(t, status, inv.EffectiveStatus(expires.Add(time.Hour)),
			"an answered or expired invitation keeps its status")
	}
}

func TestIsRespondable(t *testing.T) {
	expires := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	inv := InvitationModel{InvitationStatus: StatusPending, InvitationExpiresAt: expires}
	assert.True(t, inv.IsRespondable(expires.Add(-time.Hour)))
	assert.False(t, inv.IsRespondable(expires.Add(time.Hour)))

	inv.InvitationStatus = StatusAccepted
	assert.False(t, inv.IsRespondable(expires.Add(-time.Hour)))
}
