package mocks

import (
	"fmt"
	"time"

	"github.com/ersonp/plenum/internal/domain/entities"
)

// DateParser is a mock implementation of ports.DateParser that accepts
// ISO-8601 calendar dates only.
type DateParser struct {
	Err error
}

// Parse parses text as YYYY-MM-DD.
func (m *DateParser) Parse(text string) (time.Time, error) {
	if m.Err != nil {
		return time.Time{}, m.Err
	}
	t, err := time.Parse(entities.DateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", text, err)
	}
	return t, nil
}
