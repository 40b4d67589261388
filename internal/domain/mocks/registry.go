// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sort"

	"github.com/ersonp/plenum/internal/domain/entities"
)

// Registry is an in-memory mock implementation of ports.MemberRegistry.
type Registry struct {
	Members      map[string]entities.MemberInfo
	Replacements map[string][]entities.Replacement
	Activities   map[string][]*entities.Record
	Err          error
}

// NewRegistry creates a new mock Registry.
func NewRegistry() *Registry {
	return &Registry{
		Members:      make(map[string]entities.MemberInfo),
		Replacements: make(map[string][]entities.Replacement),
		Activities:   make(map[string][]*entities.Record),
	}
}

// EnsureSchema returns the configured error.
func (m *Registry) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close does nothing.
func (m *Registry) Close() error {
	return nil
}

// SaveMember stores the member info under its ID.
func (m *Registry) SaveMember(_ context.Context, member *entities.Member) error {
	if m.Err != nil {
		return m.Err
	}
	m.Members[member.ID()] = member.MemberInfo
	return nil
}

// FindMember rebuilds a member from the stored info.
func (m *Registry) FindMember(_ context.Context, id string) (*entities.Member, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	info, ok := m.Members[id]
	if !ok {
		return nil, nil
	}
	return entities.NewMember(info), nil
}

// ListMembers lists members ordered by ID.
func (m *Registry) ListMembers(ctx context.Context, limit, offset int) ([]*entities.Member, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	ids := make([]string, 0, len(m.Members))
	for id := range m.Members {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if offset >= len(ids) {
		return []*entities.Member{}, nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	result := make([]*entities.Member, 0, len(ids))
	for _, id := range ids {
		member, _ := m.FindMember(ctx, id)
		result = append(result, member)
	}
	return result, nil
}

// CountMembers returns the number of stored members.
func (m *Registry) CountMembers(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Members), nil
}

// SaveReplacement appends a replacement for memberID.
func (m *Registry) SaveReplacement(_ context.Context, memberID string, r entities.Replacement) error {
	if m.Err != nil {
		return m.Err
	}
	m.Replacements[memberID] = append(m.Replacements[memberID], r)
	return nil
}

// FindReplacements returns the replacements of memberID.
func (m *Registry) FindReplacements(_ context.Context, memberID string) ([]entities.Replacement, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Replacements[memberID], nil
}

// SaveActivity appends the record, replacing an earlier record with the same ID.
func (m *Registry) SaveActivity(_ context.Context, record *entities.Record) error {
	if m.Err != nil {
		return m.Err
	}
	records := m.Activities[record.MemberID]
	for i, r := range records {
		if r.ID == record.ID {
			records[i] = record
			return nil
		}
	}
	m.Activities[record.MemberID] = append(records, record)
	return nil
}

// FindActivities returns the records of memberID.
func (m *Registry) FindActivities(_ context.Context, memberID string) ([]*entities.Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Activities[memberID], nil
}
