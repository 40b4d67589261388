package services

import (
	"strconv"
	"time"

	"github.com/ersonp/plenum/internal/domain/entities"
)

// TimestampLayout formats the per-activity bucket keys (ISO-8601). Sub-second
// digits are kept so distinct instants never share a bucket.
const TimestampLayout = time.RFC3339Nano

// ActivityBucket maps a timestamp to the serialized activities of that instant.
type ActivityBucket = OrderedMap[[]any]

// ActivityGroups holds serialized activities grouped by calendar year and
// then by exact timestamp.
type ActivityGroups struct {
	years OrderedMap[*ActivityBucket]
}

// GroupActivities groups activities by year and timestamp. Years and
// timestamps are kept in the order they first appear; activities sharing a
// timestamp keep their relative order. Nothing is sorted.
func GroupActivities(activities []entities.Activity, baseURI string) *ActivityGroups {
	g := &ActivityGroups{}

	for _, a := range activities {
		date := a.Date()
		year := strconv.Itoa(date.Year())
		timestamp := date.Format(TimestampLayout)

		byTime, ok := g.years.Get(year)
		if !ok {
			byTime = &ActivityBucket{}
			g.years.Set(year, byTime)
		}
		bucket, _ := byTime.Get(timestamp)
		byTime.Set(timestamp, append(bucket, a.Serialize(baseURI)))
	}

	return g
}

// Years returns the years present, in first-appearance order.
func (g *ActivityGroups) Years() []string {
	return g.years.Keys()
}

// Year returns the timestamp → activities mapping of a year, or nil.
func (g *ActivityGroups) Year(year string) *ActivityBucket {
	byTime, _ := g.years.Get(year)
	return byTime
}

// Len returns the number of years.
func (g *ActivityGroups) Len() int {
	return g.years.Len()
}
