package timer

import "time"

// EntrySnapshot is a serializable view of a scheduled entry.
type EntrySnapshot struct {
	ID        ID            `json:"id"`
	Deadline  time.Time     `json:"deadline"`
	DelayMs   int64         `json:"delay_ms,omitempty"`
	DelayNs   int64         `json:"delay_ns,omitempty"`
	Remaining time.Duration `json:"remaining"`
}

func snapshotEntry(e Entry, now time.Time) EntrySnapshot {
	return EntrySnapshot{
		ID:        e.id,
		Deadline:  e.deadline,
		DelayMs:   e.delayMs,
		DelayNs:   e.delayNs,
		Remaining: max(e.deadline.Sub(now), 0),
	}
}
