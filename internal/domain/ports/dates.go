package ports

import "time"

// DateParser turns free-text dates ("5 March 1970", "1970-03-05") into times.
type DateParser interface {
	Parse(text string) (time.Time, error)
}
