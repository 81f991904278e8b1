package board

import (
	"sort"
	"time"
)

// agendaDateLayouts are the date formats the agenda accepts. The UI
// writes plain calendar dates; older exports carried full RFC 3339
// timestamps.
var agendaDateLayouts = []string{"2006-01-02", time.RFC3339}

// parseAgendaDate returns the calendar date of an entry. Unparsable
// dates come back as the zero time, which sorts and archives as
// "before everything".
func parseAgendaDate(s string) time.Time {
	for _, layout := range agendaDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Archived reports whether the item belongs in the archive as of now:
// completed, or dated strictly before today. Time of day is ignored.
func (a AgendaItem) Archived(now time.Time) bool {
	if a.Completed {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return parseAgendaDate(a.Date).Before(today)
}

// PartitionAgenda splits entries into active and archived sets. Active
// entries sort ascending by date (next thing first), archived entries
// descending (most recent first). Both sorts are stable so same-day
// entries keep their insertion order.
func PartitionAgenda(items []AgendaItem, now time.Time) (active, archived []AgendaItem) {
	for _, item := range items {
		if item.Archived(now) {
			archived = append(archived, item)
		} else {
			active = append(active, item)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return parseAgendaDate(active[i].Date).Before(parseAgendaDate(active[j].Date))
	})
	sort.SliceStable(archived, func(i, j int) bool {
		return parseAgendaDate(archived[j].Date).Before(parseAgendaDate(archived[i].Date))
	})

	return active, archived
}
