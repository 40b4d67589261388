package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/plenum/internal/domain/entities"
)

func TestMemberHandler_List(t *testing.T) {
	s := newTestServices()
	seed(t, s)
	handler := NewMemberHandler(s.registry)

	list, err := handler.List(t.Context(), 1, 0)

	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Members, 1)
	assert.Equal(t, "2c0cea5704", list.Members[0].ID())
}

func TestMemberHandler_Show(t *testing.T) {
	s := newTestServices()
	seed(t, s)
	handler := NewMemberHandler(s.registry)

	member, err := handler.Show(t.Context(), "2c0cea5704")
	require.NoError(t, err)
	assert.True(t, member.Sealed())
	assert.Equal(t, "Jan, Kowalski", member.String())

	_, err = handler.Show(t.Context(), "0000000000")
	assert.ErrorIs(t, err, entities.ErrMemberNotFound)
}

func TestMemberHandler_Match(t *testing.T) {
	s := newTestServices()
	seed(t, s)
	handler := NewMemberHandler(s.registry)

	matches, err := handler.Match(t.Context(), "ANNA NOWAK-KOWALCZYK")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Nowak", matches[0].LastName)

	matches, err = handler.Match(t.Context(), "Zieliński")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
