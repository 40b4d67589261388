// Package entities contains core domain data structures.
package entities

import (
	"fmt"
	"time"
)

// MemberInfo holds the descriptive fields of a member. FirstName, LastName
// and Province determine the identifier and must not change after NewMember.
type MemberInfo struct {
	FirstName        string
	LastName         string
	Party            string
	Province         string
	Language         string
	Gender           string
	DateOfBirth      time.Time
	Wiki             string   // Canonical URL, empty when unknown
	PhotoURL         string   // Empty when unknown
	AlternativeNames []string // Known misspellings and short forms
}

// Member represents a single member of the parliament.
//
// Replacement history and activities are attached after construction and
// frozen by Seal. Only sealed members can be exported.
type Member struct {
	MemberInfo

	id         string
	replaces   []Replacement
	activities []Activity
	sealed     bool
}

// NewMember creates a member and assigns its identifier.
func NewMember(info MemberInfo) *Member {
	return &Member{
		MemberInfo: info,
		id:         MemberID(info.FirstName, info.LastName, info.Province),
	}
}

// ID returns the member identifier.
func (m *Member) ID() string {
	return m.id
}

// URI returns the path of the member summary relative to the tree root.
func (m *Member) URI() string {
	return MemberResource(m.id)
}

// MemberResource returns the relative resource path for a member ID.
func MemberResource(id string) string {
	return "members/" + id + ".json"
}

// SetReplaces sets the periods during which this member replaced others.
func (m *Member) SetReplaces(replaces []Replacement) error {
	if m.sealed {
		return ErrMemberSealed
	}
	m.replaces = append([]Replacement(nil), replaces...)
	return nil
}

// PostActivity appends an activity to the member.
func (m *Member) PostActivity(a Activity) error {
	if m.sealed {
		return ErrMemberSealed
	}
	m.activities = append(m.activities, a)
	return nil
}

// Seal freezes the replacement history and activity list.
func (m *Member) Seal() {
	m.sealed = true
}

// Sealed reports whether Seal has been called.
func (m *Member) Sealed() bool {
	return m.sealed
}

// Replaces returns a copy of the replacement history.
func (m *Member) Replaces() []Replacement {
	return append([]Replacement(nil), m.replaces...)
}

// Activities returns a copy of the activity list in insertion order.
func (m *Member) Activities() []Activity {
	return append([]Activity(nil), m.activities...)
}

// SameIdentity reports whether other describes the same person: equal
// identity fields and equal date of birth.
func (m *Member) SameIdentity(other *Member) bool {
	return m.FirstName == other.FirstName &&
		m.LastName == other.LastName &&
		m.Province == other.Province &&
		m.DateOfBirth.Equal(other.DateOfBirth)
}

func (m *Member) String() string {
	return fmt.Sprintf("%s, %s", m.FirstName, m.LastName)
}
