package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"praktikly_backend/internals/features/workflow/interviews/model"
	"praktikly_backend/internals/helpers/errs"
)

func TestCanRecordOutcomeRequiresElapsedDate(t *testing.T) {
	now := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	iv := &model.InterviewModel{InterviewStatus: model.StatusScheduled, InterviewDate: &past}
	assert.NoError(t, canRecordOutcome(iv, now, false))

	iv = &model.InterviewModel{InterviewStatus: model.StatusScheduled, InterviewDate: &future}
	err := canRecordOutcome(iv, now, false)
	assert.True(t, errs.Is(err, errs.CodeInvalidState), "future date must block the outcome")

	// force overrides the date gate
	assert.NoError(t, canRecordOutcome(iv, now, true))
}

func TestCanRecordOutcomeFromRescheduled(t *testing.T) {
	now := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	iv := &model.InterviewModel{InterviewStatus: model.StatusRescheduled, InterviewDate: &past}
	assert.NoError(t, canRecordOutcome(iv, now, false))
}

func TestCanRecordOutcomeClosedStates(t *testing.T) {
	now := time.Now()
	for _, status := range []string{model.StatusCompleted, model.StatusCancelled, model.StatusNoShow} {
		iv := &model.InterviewModel{InterviewStatus: status}
		err := canRecordOutcome(iv, now, false)
		assert.True(t, errs.Is(err, errs.CodeInvalidState), "status %s must block the outcome", status)
		// force does not resurrect a closed interview
		err = canRecordOutcome(iv, now, true)
		assert.True(t, errs.Is(err, errs.CodeInvalidState), "force must not reopen %s", status)
	}
}

func TestCanRecordOutcomeStoredDecisionIsFinal(t *testing.T) {
	now := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	iv := &model.InterviewModel{InterviewStatus: model.StatusScheduled, InterviewDate: &past}
	decided := now.Add(-30 * time.Minute)
	assert.NoError(t, iv.SetOutcome(model.Outcome{Decision: model.DecisionAccepted, DecidedAt: &decided}))

	err := canRecordOutcome(iv, now, false)
	assert.True(t, errs.Is(err, errs.CodeInvalidState), "a stored decision must block a second outcome")
	// force does not reopen a decided interview either
	err = canRecordOutcome(iv, now, true)
	assert.True(t, errs.Is(err, errs.CodeInvalidState))

	// an explicitly pending decision does not count as recorded
	iv = &model.InterviewModel{InterviewStatus: model.StatusScheduled, InterviewDate: &past}
	assert.NoError(t, iv.SetOutcome(model.Outcome{Decision: model.DecisionPending}))
	assert.NoError(t, canRecordOutcome(iv, now, false))
}

func TestCanRecordOutcomeUnscheduled(t *testing.T) {
	now := time.Now()

	iv := &model.InterviewModel{InterviewStatus: model.StatusPending}
	err := canRecordOutcome(iv, now, false)
	assert.True(t, errs.Is(err, errs.CodeInvalidState))

	// force-completing a pending interview is allowed (walk-in decisions)
	assert.NoError(t, canRecordOutcome(iv, now, true))

	// scheduled but with no date recorded
	iv = &model.InterviewModel{InterviewStatus: model.StatusScheduled}
	err = canRecordOutcome(iv, now, false)
	assert.True(t, errs.Is(err, errs.CodeInvalidState))
}
