package entities

import "time"

// DateLayout is the ISO-8601 calendar date layout used in exported resources.
const DateLayout = "2006-01-02"

// DateRange is a closed period. End is nil while the period is ongoing.
type DateRange struct {
	Start time.Time
	End   *time.Time
}

// Replacement records that a member substituted for another one.
type Replacement struct {
	MemberRef string // ID of the replaced member
	Dates     DateRange
}
