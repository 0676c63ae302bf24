package switchrequests

import (
	"sort"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
)

type actor int

const (
	actorOwningPatient actor = iota
	// any member of the new agency
	actorAgencyMember
	// owner or admin member of the new agency
	actorAgencyManager
)

type edge struct {
	from string
	to   string
}

// Platform admins may drive every edge; the actors listed here are the
// non-admin parties allowed on each one.
var transitionTable = map[edge][]actor{
	{constvars.SwitchRequestStatusSubmitted, constvars.SwitchRequestStatusUnderReview}: {actorAgencyMember},
	{constvars.SwitchRequestStatusSubmitted, constvars.SwitchRequestStatusCancelled}:   {actorOwningPatient},
	{constvars.SwitchRequestStatusUnderReview, constvars.SwitchRequestStatusAccepted}:  {actorAgencyManager},
	{constvars.SwitchRequestStatusUnderReview, constvars.SwitchRequestStatusDenied}:    {actorAgencyManager},
	{constvars.SwitchRequestStatusUnderReview, constvars.SwitchRequestStatusCancelled}: {actorOwningPatient},
	{constvars.SwitchRequestStatusAccepted, constvars.SwitchRequestStatusCompleted}:    {actorAgencyManager},
	{constvars.SwitchRequestStatusAccepted, constvars.SwitchRequestStatusCancelled}:    {actorOwningPatient},
}

// transitionActor is what the usecase knows about the caller relative to
// one switch request.
type transitionActor struct {
	session *models.Session
	// membership in the request's new agency, nil when not a member
	member *models.AgencyMember
}

func (a transitionActor) is(kind actor, sr *models.SwitchRequest) bool {
	switch kind {
	case actorOwningPatient:
		return a.session.IsPatient() && a.session.ProfileID == sr.PatientID
	case actorAgencyMember:
		return a.member != nil
	case actorAgencyManager:
		return a.member != nil && a.member.CanManage()
	}
	return false
}

func canTransition(sr *models.SwitchRequest, to string, a transitionActor) bool {
	actors, ok := transitionTable[edge{from: sr.Status, to: to}]
	if !ok {
		return false
	}
	if a.session.IsAdmin() {
		return true
	}
	for _, kind := range actors {
		if a.is(kind, sr) {
			return true
		}
	}
	return false
}

// allowedTransitions lists the target statuses the actor may move sr to.
func allowedTransitions(sr *models.SwitchRequest, a transitionActor) []string {
	allowed := make([]string, 0)
	for e := range transitionTable {
		if e.from == sr.Status && canTransition(sr, e.to, a) {
			allowed = append(allowed, e.to)
		}
	}
	sort.Strings(allowed)
	return allowed
}

func requiresNote(to string) bool {
	return to == constvars.SwitchRequestStatusDenied
}
