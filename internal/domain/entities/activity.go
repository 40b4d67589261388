package entities

import "time"

// Activity is a unit of parliamentary action tied to a point in time.
// Members keep references to activities but never modify them.
type Activity interface {
	Date() time.Time
	// Serialize returns the JSON-compatible representation of the activity.
	// Relative resource references are resolved against baseURI.
	Serialize(baseURI string) any
}

// Record is the stored form of an activity (a vote, a question, a speech).
type Record struct {
	ID         string
	MemberID   string
	Kind       string
	OccurredAt time.Time
	Summary    string
	Resource   string // Path of a related resource relative to the tree root
	Attributes map[string]string
}

// Date returns when the activity happened.
func (r *Record) Date() time.Time {
	return r.OccurredAt
}

// Serialize returns the exported form of the record.
func (r *Record) Serialize(baseURI string) any {
	out := map[string]any{
		"id":   r.ID,
		"type": r.Kind,
	}
	if r.Summary != "" {
		out["summary"] = r.Summary
	}
	if r.Resource != "" {
		out["resource"] = baseURI + r.Resource
	}
	if len(r.Attributes) > 0 {
		out["attributes"] = r.Attributes
	}
	return out
}
