// Package model defines the core domain models used throughout the application.
package model

// MeetingType is the closed set of meeting classifications.
type MeetingType string

// Meeting type constants. Every switch over MeetingType must handle all of
// these; there is no open-ended fallthrough type.
const (
	TypePersonal    MeetingType = "personal"
	TypeInternal    MeetingType = "internal"
	TypeTeamSync    MeetingType = "team_sync"
	TypeOneOnOne    MeetingType = "one_on_one"
	TypePartnership MeetingType = "partnership"
	TypeQBR         MeetingType = "qbr"
	TypeTraining    MeetingType = "training"
	TypeExternal    MeetingType = "external"
	TypeCustomer    MeetingType = "customer"
	TypeAllHands    MeetingType = "all_hands"
	TypeProject     MeetingType = "project"
)

// AllMeetingTypes lists every valid meeting type in bucket order.
var AllMeetingTypes = []MeetingType{
	TypeCustomer,
	TypeQBR,
	TypePartnership,
	TypeProject,
	TypeOneOnOne,
	TypeTeamSync,
	TypeInternal,
	TypeTraining,
	TypeExternal,
	TypeAllHands,
	TypePersonal,
}

// Valid reports whether t is a member of the closed meeting type set.
func (t MeetingType) Valid() bool {
	switch t {
	case TypePersonal, TypeInternal, TypeTeamSync, TypeOneOnOne,
		TypePartnership, TypeQBR, TypeTraining, TypeExternal,
		TypeCustomer, TypeAllHands, TypeProject:
		return true
	}
	return false
}

// AccountBearing reports whether this type may carry a resolved account name.
func (t MeetingType) AccountBearing() bool {
	switch t {
	case TypeCustomer, TypeQBR, TypePartnership:
		return true
	case TypePersonal, TypeInternal, TypeTeamSync, TypeOneOnOne,
		TypeTraining, TypeExternal, TypeAllHands, TypeProject:
		return false
	}
	return false
}

// NeedsDeepPrep reports whether meetings of this type get full context
// gathering. Internal-style meetings get a last-occurrence reference only,
// and personal/all-hands meetings get nothing.
func (t MeetingType) NeedsDeepPrep() bool {
	switch t {
	case TypeCustomer, TypeQBR, TypeTraining, TypePartnership:
		return true
	case TypePersonal, TypeInternal, TypeTeamSync, TypeOneOnOne,
		TypeExternal, TypeAllHands, TypeProject:
		return false
	}
	return false
}

// NeedsLightPrep reports whether meetings of this type get a single
// last-occurrence reference instead of full context.
func (t MeetingType) NeedsLightPrep() bool {
	switch t {
	case TypeInternal, TypeTeamSync, TypeOneOnOne:
		return true
	case TypePersonal, TypeAllHands, TypeCustomer, TypeQBR,
		TypeTraining, TypePartnership, TypeExternal, TypeProject:
		return false
	}
	return false
}

// PrepStatus describes what preparation is owed before a meeting.
type PrepStatus string

// Prep status constants.
const (
	PrepNone         PrepStatus = "none"
	PrepNeeded       PrepStatus = "prep_needed"
	PrepAgendaNeeded PrepStatus = "agenda_needed"
	PrepBringUpdates PrepStatus = "bring_updates"
	PrepContext      PrepStatus = "context_needed"
	PrepReady        PrepStatus = "ready"
	PrepDone         PrepStatus = "done"
)
