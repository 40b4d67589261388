// Package parsers provides parsers for importing static member records,
// activities and replacement history from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
)

// RawMember is a static member record before validation.
type RawMember struct {
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Party            string   `json:"party"`
	Province         string   `json:"province"`
	Language         string   `json:"language"`
	Wiki             string   `json:"wiki"`
	Gender           string   `json:"gender"`
	DateOfBirth      string   `json:"date_of_birth"` // Free-text date
	AlternativeNames []string `json:"alternative_names,omitempty"`
	PhotoURL         string   `json:"photo_url,omitempty"`
	Keys             []string `json:"-"` // Keys present in the source record (set by parser)
	LineNum          int      `json:"-"` // Line number in source file (set by parser)
}

// HasKey reports whether key was present in the source record.
func (r *RawMember) HasKey(key string) bool {
	return slices.Contains(r.Keys, key)
}

// RawActivity is an activity record before validation. The member is named
// either by ID or by the free-text name found in the source document.
type RawActivity struct {
	ID         string            `json:"id,omitempty"`
	MemberID   string            `json:"member_id,omitempty"`
	MemberName string            `json:"member_name,omitempty"`
	Type       string            `json:"type"`
	Date       string            `json:"date"`
	Summary    string            `json:"summary,omitempty"`
	Resource   string            `json:"resource,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	LineNum    int               `json:"-"`
}

// RawReplacement records that MemberID substituted for ReplacedMemberID.
type RawReplacement struct {
	MemberID         string `json:"member_id"`
	ReplacedMemberID string `json:"replaced_member_id"`
	Start            string `json:"start"`
	End              string `json:"end,omitempty"`
	LineNum          int    `json:"-"`
}

// Parser defines the interface for parsing records from various formats.
type Parser interface {
	ParseMembers(r io.Reader) ([]RawMember, error)
	ParseActivities(r io.Reader) ([]RawActivity, error)
	ParseReplacements(r io.Reader) ([]RawReplacement, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
