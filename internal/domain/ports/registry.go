// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/plenum/internal/domain/entities"
)

// MemberRegistry persists members together with their replacement history
// and activity records.
type MemberRegistry interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// SaveMember saves or updates a member keyed by its ID.
	SaveMember(ctx context.Context, member *entities.Member) error

	// FindMember finds a member by ID. Returns nil if no member exists.
	// The returned member carries no replacements or activities.
	FindMember(ctx context.Context, id string) (*entities.Member, error)

	// ListMembers lists members ordered by ID. A limit <= 0 lists all members.
	ListMembers(ctx context.Context, limit, offset int) ([]*entities.Member, error)

	// CountMembers returns the number of registered members.
	CountMembers(ctx context.Context) (int, error)

	// SaveReplacement records that memberID replaced r.MemberRef.
	SaveReplacement(ctx context.Context, memberID string, r entities.Replacement) error

	// FindReplacements returns the replacement history of a member in insertion order.
	FindReplacements(ctx context.Context, memberID string) ([]entities.Replacement, error)

	// SaveActivity saves or updates an activity record keyed by its ID.
	SaveActivity(ctx context.Context, record *entities.Record) error

	// FindActivities returns the activity records of a member in insertion order.
	FindActivities(ctx context.Context, memberID string) ([]*entities.Record, error)
}
