package schedule

import "time"

// Badge is the status marker shown next to a lesson on the schedule screen.
type Badge int

const (
	BadgeNone Badge = iota
	BadgePresent
	BadgeActive
	BadgeMissed
)

func (b Badge) String() string {
	switch b {
	case BadgePresent:
		return "PRESENT"
	case BadgeActive:
		return "IN PROGRESS"
	case BadgeMissed:
		return "MISSED"
	}
	return ""
}

// BadgeFor computes a lesson's badge purely from already-present data:
// present > active > missed > none. Teachers never get a badge; their rows
// carry the details affordance instead.
func BadgeFor(l Lesson, now time.Time) Badge {
	info := l.AttendanceInfo
	if info == nil || !info.Role.IsStudent() {
		return BadgeNone
	}
	if info.IsPresent {
		return BadgePresent
	}
	if l.IsActive {
		return BadgeActive
	}
	if l.EndTime.Before(now) {
		return BadgeMissed
	}
	return BadgeNone
}
