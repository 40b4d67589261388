package handlers

import (
	"context"

	"github.com/ersonp/plenum/internal/domain/entities"
	"github.com/ersonp/plenum/internal/domain/services"
)

// MemberHandler handles member lookups.
type MemberHandler struct {
	registry *services.RegistryService
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(registry *services.RegistryService) *MemberHandler {
	return &MemberHandler{
		registry: registry,
	}
}

// MemberList is a page of members.
type MemberList struct {
	Members []*entities.Member
	Total   int
}

// List returns a page of members ordered by ID.
func (h *MemberHandler) List(ctx context.Context, limit, offset int) (*MemberList, error) {
	members, err := h.registry.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := h.registry.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &MemberList{Members: members, Total: total}, nil
}

// Show returns the member with its replacements and activities.
func (h *MemberHandler) Show(ctx context.Context, id string) (*entities.Member, error) {
	return h.registry.Load(ctx, id)
}

// Match returns every member answering to name.
func (h *MemberHandler) Match(ctx context.Context, name string) ([]*entities.Member, error) {
	return h.registry.Resolve(ctx, name)
}
