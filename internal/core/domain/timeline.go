package domain

import (
	"fmt"
	"sort"
	"time"
)

// TimelineEventKind classifies a status-relevant event on a member's timeline.
type TimelineEventKind string

const (
	TimelineRenewal  TimelineEventKind = "RENEWAL"
	TimelineOverdue  TimelineEventKind = "OVERDUE"
	TimelineOverride TimelineEventKind = "OVERRIDE"
)

// timelineMaxEvents caps how many events a timeline projection returns.
const timelineMaxEvents = 25

// TimelineEvent is one entry in the read-side membership timeline projection.
type TimelineEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	Kind      TimelineEventKind `json:"kind"`
	Label     string            `json:"label"`
	Detail    string            `json:"detail,omitempty"`
}

// BuildTimeline projects a member's recent payment entries and latest status
// result into a reverse-chronological event list. One renewal per completed
// contribution payment, a synthetic overdue event when the member is past the
// grace deadline, and an override event while a manual override is active.
// Pure projection; recomputed on every read, never persisted.
func BuildTimeline(member Member, entries []PaymentEntry, contributionCode string, status StatusResult) []TimelineEvent {
	events := make([]TimelineEvent, 0, len(entries)+2)

	for _, e := range entries {
		if e.IsCorrection() || e.ServiceTypeCode != contributionCode || e.Status != PaymentCompleted {
			continue
		}
		events = append(events, TimelineEvent{
			Timestamp: e.PostedAt,
			Kind:      TimelineRenewal,
			Label:     "Contribution received",
			Detail:    fmt.Sprintf("%s %s", e.Amount.StringFixed(2), e.CurrencyCode),
		})
	}

	if status.OverdueDays != nil && *status.OverdueDays > 0 {
		events = append(events, TimelineEvent{
			Timestamp: status.NextDueAt,
			Kind:      TimelineOverdue,
			Label:     "Contribution overdue",
			Detail:    fmt.Sprintf("%d day(s) past the grace deadline", *status.OverdueDays),
		})
	}

	if member.StatusOverrideActive && member.StatusOverrideValue != nil {
		detail := string(*member.StatusOverrideValue)
		if member.StatusOverrideReason != "" {
			detail = fmt.Sprintf("%s: %s", detail, member.StatusOverrideReason)
		}
		events = append(events, TimelineEvent{
			Timestamp: member.LastUpdatedAt,
			Kind:      TimelineOverride,
			Label:     "Manual status override active",
			Detail:    detail,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	if len(events) > timelineMaxEvents {
		events = events[:timelineMaxEvents]
	}
	return events
}
