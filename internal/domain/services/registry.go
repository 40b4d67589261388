// Package services contains domain business logic.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ersonp/plenum/internal/domain/entities"
	"github.com/ersonp/plenum/internal/domain/ports"
	"github.com/ersonp/plenum/internal/infrastructure/logger"
)

// RegistryService manages the set of known members.
type RegistryService struct {
	registry ports.MemberRegistry
	logger   *slog.Logger
}

// NewRegistryService creates a new registry service.
func NewRegistryService(registry ports.MemberRegistry, logger *slog.Logger) *RegistryService {
	return &RegistryService{
		registry: registry,
		logger:   orDiscard(logger),
	}
}

// Register stores a member. Re-registering the same person updates the
// stored record; a different person mapping to an ID already in use is
// rejected with ErrIdentifierCollision.
func (s *RegistryService) Register(ctx context.Context, member *entities.Member) error {
	if err := s.CheckCollision(ctx, member); err != nil {
		return err
	}

	if err := s.registry.SaveMember(ctx, member); err != nil {
		return fmt.Errorf("saving member %s: %w", member.ID(), err)
	}

	s.logger.Debug("member registered", "id", member.ID(), "name", member.String())
	return nil
}

// CheckCollision reports whether member's ID is already held by someone else.
func (s *RegistryService) CheckCollision(ctx context.Context, member *entities.Member) error {
	existing, err := s.registry.FindMember(ctx, member.ID())
	if err != nil {
		return fmt.Errorf("finding member %s: %w", member.ID(), err)
	}
	if existing != nil && !existing.SameIdentity(member) {
		return fmt.Errorf("%w: %s is held by %s (born %s), not %s (born %s)",
			entities.ErrIdentifierCollision, member.ID(),
			existing, existing.DateOfBirth.Format(entities.DateLayout),
			member, member.DateOfBirth.Format(entities.DateLayout))
	}
	return nil
}

// Get returns the member with the given ID, without activities.
func (s *RegistryService) Get(ctx context.Context, id string) (*entities.Member, error) {
	member, err := s.registry.FindMember(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding member %s: %w", id, err)
	}
	if member == nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrMemberNotFound, id)
	}
	return member, nil
}

// List returns members ordered by ID. A limit of zero lists everything.
func (s *RegistryService) List(ctx context.Context, limit, offset int) ([]*entities.Member, error) {
	members, err := s.registry.ListMembers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

// Count returns the number of registered members.
func (s *RegistryService) Count(ctx context.Context) (int, error) {
	n, err := s.registry.CountMembers(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting members: %w", err)
	}
	return n, nil
}

// Resolve returns every member answering to name.
func (s *RegistryService) Resolve(ctx context.Context, name string) ([]*entities.Member, error) {
	members, err := s.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return NewNameResolver(members).Resolve(name), nil
}

// Load returns the member with its replacements and activities, sealed and
// ready to be exported.
func (s *RegistryService) Load(ctx context.Context, id string) (*entities.Member, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	replaces, err := s.registry.FindReplacements(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding replacements of %s: %w", id, err)
	}
	if err := member.SetReplaces(replaces); err != nil {
		return nil, err
	}

	records, err := s.registry.FindActivities(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding activities of %s: %w", id, err)
	}
	for _, r := range records {
		if err := member.PostActivity(r); err != nil {
			return nil, err
		}
	}

	member.Seal()
	return member, nil
}

// AddReplacement records that memberID substituted for another member.
func (s *RegistryService) AddReplacement(ctx context.Context, memberID string, r entities.Replacement) error {
	if err := s.registry.SaveReplacement(ctx, memberID, r); err != nil {
		return fmt.Errorf("saving replacement of %s: %w", memberID, err)
	}
	return nil
}

// AddActivity stores an activity record.
func (s *RegistryService) AddActivity(ctx context.Context, record *entities.Record) error {
	if err := s.registry.SaveActivity(ctx, record); err != nil {
		return fmt.Errorf("saving activity of %s: %w", record.MemberID, err)
	}
	return nil
}

// NameResolver matches free-text names against a fixed set of members.
type NameResolver struct {
	members []*entities.Member
}

// NewNameResolver creates a resolver over members.
func NewNameResolver(members []*entities.Member) *NameResolver {
	return &NameResolver{members: members}
}

// Resolve returns the members for which HasName(name) holds, in input order.
func (r *NameResolver) Resolve(name string) []*entities.Member {
	var matches []*entities.Member
	for _, m := range r.members {
		if m.HasName(name) {
			matches = append(matches, m)
		}
	}
	return matches
}

func orDiscard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return logger.Discard()
	}
	return log
}
