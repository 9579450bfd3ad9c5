package service

import (
	"praktikly_backend/internals/constants"
	"praktikly_backend/internals/features/workflow/applications/model"
)

// reviewChain is the company's forward path in order. The company may jump
// ahead to any later status (an offer can go out straight from pending) but
// never move backwards.
var reviewChain = []string{
	model.StatusPending,
	model.StatusReviewed,
	model.StatusShortlisted,
	model.StatusInterviewScheduled,
	model.StatusInterviewed,
	model.StatusOffered,
}

func companySuccessors() map[string][]string {
	out := make(map[string][]string, len(reviewChain)-1)
	for i, status := range reviewChain[:len(reviewChain)-1] {
		out[status] = append([]string(nil), reviewChain[i+1:]...)
	}
	return out
}

// permittedSuccessors is the legal transition table, keyed by actor role then
// current status. A transition is legal iff the requested status appears in
// the successor set for (role, current). Everything else is an illegal
// transition; there is no other path to change application_status.
var permittedSuccessors = map[string]map[string][]string{
	constants.RoleCompany: companySuccessors(),
	constants.RoleCandidate: {
		// withdraw is reachable from every non-terminal state; the offer
		// answer goes through RespondToOffer which uses these entries.
		model.StatusPending:            {model.StatusWithdrawn},
		model.StatusReviewed:           {model.StatusWithdrawn},
		model.StatusShortlisted:        {model.StatusWithdrawn},
		model.StatusInterviewScheduled: {model.StatusWithdrawn},
		model.StatusInterviewed:        {model.StatusWithdrawn},
		model.StatusOffered:            {model.StatusWithdrawn, model.StatusAccepted, model.StatusRejected},
	},
	constants.RoleSystem: {
		// the interview engine syncs scheduling milestones and cascades a
		// rejection from a negative interview outcome.
		model.StatusPending:            {model.StatusInterviewScheduled, model.StatusRejected},
		model.StatusReviewed:           {model.StatusInterviewScheduled, model.StatusRejected},
		model.StatusShortlisted:        {model.StatusInterviewScheduled, model.StatusRejected},
		model.StatusInterviewScheduled: {model.StatusInterviewed, model.StatusRejected},
		model.StatusInterviewed:        {model.StatusRejected},
		model.StatusOffered:            {model.StatusRejected},
	},
}

// CanTransition reports whether actorRole may move an application from
// `current` to `next`. Terminal states have no successors for any role.
func CanTransition(actorRole, current, next string) bool {
	if model.IsTerminalStatus(current) {
		return false
	}
	byStatus, ok := permittedSuccessors[actorRole]
	if !ok {
		return false
	}
	for _, s := range byStatus[current] {
		if s == next {
			return true
		}
	}
	return false
}

// PermittedSuccessors returns the statuses actorRole may move to from
// `current`. Nil for unknown roles and terminal states.
func PermittedSuccessors(actorRole, current string) []string {
	if model.IsTerminalStatus(current) {
		return nil
	}
	byStatus, ok := permittedSuccessors[actorRole]
	if !ok {
		return nil
	}
	return append([]string(nil), byStatus[current]...)
}
