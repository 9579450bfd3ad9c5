package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendHistoryKeepsOrder(t *testing.T) {
	var app ApplicationModel

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, status := range []string{StatusPending, StatusReviewed, StatusShortlisted} {
		require.NoError(t, app.AppendHistory(StatusHistoryEntry{
			Status:    status,
			Actor:     "company",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	entries, err := app.History()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, StatusPending, entries[0].Status)
	assert.Equal(t, StatusReviewed, entries[1].Status)
	assert.Equal(t, StatusShortlisted, entries[2].Status)
	assert.True(t, entries[0].Timestamp.Before(entries[2].Timestamp))
}

func TestOfferRoundTrip(t *testing.T) {
	var app ApplicationModel

	offer, err := app.Offer()
	require.NoError(t, err)
	assert.Nil(t, offer, "no offer before SetOffer")

	sent := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	require.NoError(t, app.SetOffer(&OfferDetails{Message: "we would love to have you", SentAt: &sent}))

	offer, err = app.Offer()
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.Equal(t, "we would love to have you", offer.Message)
	assert.Nil(t, offer.RespondedAt)
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(StatusAccepted))
	assert.True(t, IsTerminalStatus(StatusRejected))
	assert.True(t, IsTerminalStatus(StatusWithdrawn))
	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusOffered))
	assert.False(t, IsTerminalStatus(""))
}
