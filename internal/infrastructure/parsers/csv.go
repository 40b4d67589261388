package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// AlternativeNameSeparator separates alternative names inside one CSV cell.
const AlternativeNameSeparator = ";"

// Columns of the activity CSV layout. Any other column becomes an attribute.
var activityColumns = map[string]bool{
	"id":          true,
	"member_id":   true,
	"member_name": true,
	"type":        true,
	"date":        true,
	"summary":     true,
	"resource":    true,
}

// CSVParser parses records from CSV with a header row.
type CSVParser struct{}

// ParseMembers reads static member records. Missing columns are reported
// by the import validation, not here.
func (p *CSVParser) ParseMembers(r io.Reader) ([]RawMember, error) {
	reader := csv.NewReader(r)

	header, colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	var members []RawMember
	err = p.readRecords(reader, func(record []string, lineNum int) error {
		m := RawMember{
			FirstName:   getColumn(record, colIndex, "first_name"),
			LastName:    getColumn(record, colIndex, "last_name"),
			Party:       getColumn(record, colIndex, "party"),
			Province:    getColumn(record, colIndex, "province"),
			Language:    getColumn(record, colIndex, "language"),
			Wiki:        getColumn(record, colIndex, "wiki"),
			Gender:      getColumn(record, colIndex, "gender"),
			DateOfBirth: getColumn(record, colIndex, "date_of_birth"),
			PhotoURL:    getColumn(record, colIndex, "photo_url"),
			Keys:        header,
			LineNum:     lineNum,
		}
		if alt := getColumn(record, colIndex, "alternative_names"); alt != "" {
			for _, name := range strings.Split(alt, AlternativeNameSeparator) {
				if name = strings.TrimSpace(name); name != "" {
					m.AlternativeNames = append(m.AlternativeNames, name)
				}
			}
		}
		members = append(members, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return members, nil
}

// ParseActivities reads activity records.
// Required columns: type, date.
func (p *CSVParser) ParseActivities(r io.Reader) ([]RawActivity, error) {
	reader := csv.NewReader(r)

	header, colIndex, err := p.readHeader(reader, "type", "date")
	if err != nil {
		return nil, err
	}

	var activities []RawActivity
	err = p.readRecords(reader, func(record []string, lineNum int) error {
		a := RawActivity{
			ID:         getColumn(record, colIndex, "id"),
			MemberID:   getColumn(record, colIndex, "member_id"),
			MemberName: getColumn(record, colIndex, "member_name"),
			Type:       getColumn(record, colIndex, "type"),
			Date:       getColumn(record, colIndex, "date"),
			Summary:    getColumn(record, colIndex, "summary"),
			Resource:   getColumn(record, colIndex, "resource"),
			LineNum:    lineNum,
		}
		for _, col := range header {
			if activityColumns[col] {
				continue
			}
			if v := getColumn(record, colIndex, col); v != "" {
				if a.Attributes == nil {
					a.Attributes = make(map[string]string)
				}
				a.Attributes[col] = v
			}
		}
		activities = append(activities, a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return activities, nil
}

// ParseReplacements reads replacement records.
// Required columns: member_id, replaced_member_id, start.
func (p *CSVParser) ParseReplacements(r io.Reader) ([]RawReplacement, error) {
	reader := csv.NewReader(r)

	_, colIndex, err := p.readHeader(reader, "member_id", "replaced_member_id", "start")
	if err != nil {
		return nil, err
	}

	var replacements []RawReplacement
	err = p.readRecords(reader, func(record []string, lineNum int) error {
		replacements = append(replacements, RawReplacement{
			MemberID:         getColumn(record, colIndex, "member_id"),
			ReplacedMemberID: getColumn(record, colIndex, "replaced_member_id"),
			Start:            getColumn(record, colIndex, "start"),
			End:              getColumn(record, colIndex, "end"),
			LineNum:          lineNum,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return replacements, nil
}

// readHeader reads the CSV header row and checks the required columns.
func (p *CSVParser) readHeader(reader *csv.Reader, required ...string) ([]string, map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
		colIndex[header[i]] = i
	}

	for _, col := range required {
		if _, ok := colIndex[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return header, colIndex, nil
}

// readRecords reads all data rows and hands them to fn.
func (p *CSVParser) readRecords(reader *csv.Reader, fn func(record []string, lineNum int) error) error {
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}

		if err := fn(record, lineNum); err != nil {
			return err
		}
	}
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
