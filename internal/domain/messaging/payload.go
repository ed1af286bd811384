package messaging

import (
	"fmt"

	"pick_day_bot/internal/domain/member"
)

// Kind tags the closed set of push payload variants. Payloads are validated
// at construction, not defensively re-checked at render time.
type Kind string

const (
	KindVotingOpen        Kind = "voting_open"
	KindVotingClosure     Kind = "voting_closure"
	KindEventAnnouncement Kind = "event_announcement"
)

// Payload is one renderable push message. The core produces payloads; the
// chat-platform layer renders them into message bodies.
type Payload interface {
	Kind() Kind
}

// RankedDate is one qualifying date in a closure announcement.
type RankedDate struct {
	Date         string // YYYY-MM-DD
	Count        int
	Participants []member.Profile
}

// VotingOpen announces that a month's voting window has opened.
type VotingOpen struct {
	Month string // YYYY/MM
}

func (VotingOpen) Kind() Kind { return KindVotingOpen }

// NewVotingOpen builds a VotingOpen payload.
func NewVotingOpen(month string) (VotingOpen, error) {
	if month == "" {
		return VotingOpen{}, fmt.Errorf("voting_open payload requires a month")
	}
	return VotingOpen{Month: month}, nil
}

// VotingClosure announces the tally result. An empty TopDates slice is the
// legitimate "no date reached quorum" variant.
type VotingClosure struct {
	TopDates []RankedDate
}

func (VotingClosure) Kind() Kind { return KindVotingClosure }

// NewVotingClosure builds a VotingClosure payload.
func NewVotingClosure(topDates []RankedDate) (VotingClosure, error) {
	for _, d := range topDates {
		if d.Date == "" {
			return VotingClosure{}, fmt.Errorf("voting_closure payload has a ranked entry without a date")
		}
	}
	return VotingClosure{TopDates: topDates}, nil
}

// Event is one confirmed activity in a final announcement.
type Event struct {
	Date  string // YYYY-MM-DD
	Title string
}

// EventAnnouncement publishes the confirmed event details for a month.
type EventAnnouncement struct {
	Events []Event
}

func (EventAnnouncement) Kind() Kind { return KindEventAnnouncement }

// NewEventAnnouncement builds an EventAnnouncement payload.
func NewEventAnnouncement(events []Event) (EventAnnouncement, error) {
	for _, e := range events {
		if e.Date == "" {
			return EventAnnouncement{}, fmt.Errorf("event_announcement payload has an event without a date")
		}
	}
	return EventAnnouncement{Events: events}, nil
}
