// Package dates parses the free-text dates found in static member records.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Parser implements ports.DateParser. Dates without a zone are read in Location.
type Parser struct {
	Location *time.Location
}

// NewParser creates a parser that reads zone-less dates as UTC.
func NewParser() *Parser {
	return &Parser{Location: time.UTC}
}

// Parse parses text in any of the layouts understood by dateparse.
func (p *Parser) Parse(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, errors.New("empty date")
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	t, err := dateparse.ParseIn(text, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", text, err)
	}
	return t, nil
}
