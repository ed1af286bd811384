package telegram

import (
	"fmt"
	"strings"

	"pick_day_bot/internal/domain/messaging"
)

// RenderPayload turns an abstract push payload into a Telegram message body.
// Payloads are validated at construction, so rendering is a straight
// formatting pass over a closed set of variants.
func RenderPayload(p messaging.Payload) (string, error) {
	switch v := p.(type) {
	case messaging.VotingOpen:
		return renderVotingOpen(v), nil
	case messaging.VotingClosure:
		return renderVotingClosure(v), nil
	case messaging.EventAnnouncement:
		return renderEventAnnouncement(v), nil
	default:
		return "", fmt.Errorf("unknown payload kind: %s", p.Kind())
	}
}

func renderVotingOpen(v messaging.VotingOpen) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 Voting for %s is open!\n", v.Month)
	b.WriteString("Pick the days that work for you with /dates.")
	return b.String()
}

func renderVotingClosure(v messaging.VotingClosure) string {
	if len(v.TopDates) == 0 {
		return "🏆 Voting closed!\nNo date reached quorum this month."
	}

	var b strings.Builder
	b.WriteString("🏆 Voting closed! Top dates:")
	for i, d := range v.TopDates {
		fmt.Fprintf(&b, "\n%d. %s — %d people", i+1, d.Date, d.Count)
		if len(d.Participants) > 0 {
			names := make([]string, len(d.Participants))
			for j, p := range d.Participants {
				names[j] = p.DisplayName
			}
			fmt.Fprintf(&b, ": %s", strings.Join(names, ", "))
		}
	}
	b.WriteString("\nWaiting for the admin to announce the details.")
	return b.String()
}

func renderEventAnnouncement(v messaging.EventAnnouncement) string {
	if len(v.Events) == 0 {
		return "No events this month."
	}

	var b strings.Builder
	b.WriteString("📣 Confirmed plans:")
	for _, e := range v.Events {
		fmt.Fprintf(&b, "\n- %s", e.Date)
		if e.Title != "" {
			fmt.Fprintf(&b, ": %s", e.Title)
		}
	}
	return b.String()
}
