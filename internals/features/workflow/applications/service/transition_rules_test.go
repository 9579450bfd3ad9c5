package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"praktikly_backend/internals/constants"
	"praktikly_backend/internals/features/workflow/applications/model"
)

var allStatuses = []string{
	model.StatusPending,
	model.StatusReviewed,
	model.StatusShortlisted,
	model.StatusInterviewScheduled,
	model.StatusInterviewed,
	model.StatusOffered,
	model.StatusAccepted,
	model.StatusRejected,
	model.StatusWithdrawn,
}

func TestCompanyForwardChain(t *testing.T) {
	chain := [][2]string{
		{model.StatusPending, model.StatusReviewed},
		{model.StatusReviewed, model.StatusShortlisted},
		{model.StatusShortlisted, model.StatusInterviewScheduled},
		{model.StatusInterviewScheduled, model.StatusInterviewed},
		{model.StatusInterviewed, model.StatusOffered},
	}
	for _, step := range chain {
		assert.True(t, CanTransition(constants.RoleCompany, step[0], step[1]),
			"company should move %s -> %s", step[0], step[1])
	}

	// jumping ahead is allowed: an offer can go out straight from pending,
	// and a strong candidate can skip the review step
	assert.True(t, CanTransition(constants.RoleCompany, model.StatusPending, model.StatusOffered))
	assert.True(t, CanTransition(constants.RoleCompany, model.StatusPending, model.StatusShortlisted))
	assert.True(t, CanTransition(constants.RoleCompany, model.StatusReviewed, model.StatusOffered))

	// no moving backwards
	assert.False(t, CanTransition(constants.RoleCompany, model.StatusShortlisted, model.StatusReviewed))
	assert.False(t, CanTransition(constants.RoleCompany, model.StatusOffered, model.StatusPending))
	assert.False(t, CanTransition(constants.RoleCompany, model.StatusInterviewed, model.StatusShortlisted))
	// staying in place is not a transition
	assert.False(t, CanTransition(constants.RoleCompany, model.StatusReviewed, model.StatusReviewed))
	// the offer answer belongs to the candidate
	assert.False(t, CanTransition(constants.RoleCompany, model.StatusOffered, model.StatusAccepted))
	assert.False(t, CanTransition(constants.RoleCompany, model.StatusOffered, model.StatusRejected))
}

func TestCandidateWithdrawFromAnyNonTerminal(t *testing.T) {
	for _, status := range allStatuses {
		got := CanTransition(constants.RoleCandidate, status, model.StatusWithdrawn)
		if model.IsTerminalStatus(status) {
			assert.False(t, got, "withdraw from terminal %s must fail", status)
		} else {
			assert.True(t, got, "withdraw from %s must be allowed", status)
		}
	}
}

func TestCandidateOfferResponses(t *testing.T) {
	assert.True(t, CanTransition(constants.RoleCandidate, model.StatusOffered, model.StatusAccepted))
	assert.True(t, CanTransition(constants.RoleCandidate, model.StatusOffered, model.StatusRejected))

	// accepting is only possible once an offer exists
	for _, status := range allStatuses {
		if status == model.StatusOffered {
			continue
		}
		assert.False(t, CanTransition(constants.RoleCandidate, status, model.StatusAccepted),
			"accept from %s must fail", status)
	}
}

func TestTerminalStatesAreFrozen(t *testing.T) {
	roles := []string{constants.RoleCandidate, constants.RoleCompany, constants.RoleAdmin, constants.RoleSystem}
	for _, terminal := range []string{model.StatusAccepted, model.StatusRejected, model.StatusWithdrawn} {
		for _, role := range roles {
			for _, next := range allStatuses {
				assert.False(t, CanTransition(role, terminal, next),
					"%s must not move %s -> %s", role, terminal, next)
			}
			assert.Nil(t, PermittedSuccessors(role, terminal))
		}
	}
}

func TestSystemCascades(t *testing.T) {
	// rejection cascade reaches every non-terminal state
	for _, status := range allStatuses {
		if model.IsTerminalStatus(status) {
			continue
		}
		assert.True(t, CanTransition(constants.RoleSystem, status, model.StatusRejected),
			"system rejection from %s must be allowed", status)
	}

	// scheduling milestone sync
	assert.True(t, CanTransition(constants.RoleSystem, model.StatusShortlisted, model.StatusInterviewScheduled))
	assert.True(t, CanTransition(constants.RoleSystem, model.StatusInterviewScheduled, model.StatusInterviewed))
	// but the system never extends an offer
	assert.False(t, CanTransition(constants.RoleSystem, model.StatusInterviewed, model.StatusOffered))
}

func TestUnknownRoleHasNoTransitions(t *testing.T) {
	assert.False(t, CanTransition("intruder", model.StatusPending, model.StatusReviewed))
	assert.Nil(t, PermittedSuccessors("intruder", model.StatusPending))
}

func TestPermittedSuccessorsReturnsCopy(t *testing.T) {
	got := PermittedSuccessors(constants.RoleCandidate, model.StatusOffered)
	assert.ElementsMatch(t, []string{model.StatusWithdrawn, model.StatusAccepted, model.StatusRejected}, got)

	// mutating the returned slice must not leak into the table
	got[0] = "tampered"
	again := PermittedSuccessors(constants.RoleCandidate, model.StatusOffered)
	assert.ElementsMatch(t, []string{model.StatusWithdrawn, model.StatusAccepted, model.StatusRejected}, again)
}
