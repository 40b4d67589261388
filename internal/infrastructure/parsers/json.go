package parsers

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// JSONParser parses records from a JSON array.
type JSONParser struct{}

// ParseMembers reads an array of static member records.
func (p *JSONParser) ParseMembers(r io.Reader) ([]RawMember, error) {
	items, err := decodeArray(r)
	if err != nil {
		return nil, err
	}

	members := make([]RawMember, 0, len(items))
	for i, item := range items {
		var m RawMember
		if err := json.Unmarshal(item, &m); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		m.Keys = make([]string, 0, len(fields))
		for k := range fields {
			m.Keys = append(m.Keys, k)
		}
		sort.Strings(m.Keys)

		m.LineNum = i + 1
		members = append(members, m)
	}

	return members, nil
}

// ParseActivities reads an array of activity records.
func (p *JSONParser) ParseActivities(r io.Reader) ([]RawActivity, error) {
	var activities []RawActivity
	if err := json.NewDecoder(r).Decode(&activities); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	for i := range activities {
		activities[i].LineNum = i + 1
	}

	return activities, nil
}

// ParseReplacements reads an array of replacement records.
func (p *JSONParser) ParseReplacements(r io.Reader) ([]RawReplacement, error) {
	var replacements []RawReplacement
	if err := json.NewDecoder(r).Decode(&replacements); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	for i := range replacements {
		replacements[i].LineNum = i + 1
	}

	return replacements, nil
}

func decodeArray(r io.Reader) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return items, nil
}
