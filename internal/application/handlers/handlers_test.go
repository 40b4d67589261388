package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ersonp/plenum/internal/domain/mocks"
	"github.com/ersonp/plenum/internal/domain/services"
)

const membersJSON = `[
  {"first_name": "Jan", "last_name": "Kowalski", "party": "PO", "province": "Mazowieckie",
   "language": "pl", "wiki": null, "gender": "M", "date_of_birth": "1970-03-05"},
  {"first_name": "Anna", "last_name": "Nowak", "party": "PiS", "province": "Pomorskie",
   "language": "pl", "wiki": "https://pl.wikipedia.org/wiki/Anna_Nowak", "gender": "F",
   "date_of_birth": "1980-12-01", "alternative_names": ["Anna Nowak-Kowalczyk"]}
]`

type testServices struct {
	store    *mocks.Registry
	registry *services.RegistryService
	importer *services.ImportService
}

func newTestServices() *testServices {
	store := mocks.NewRegistry()
	registry := services.NewRegistryService(store, nil)
	return &testServices{
		store:    store,
		registry: registry,
		importer: services.NewImportService(registry, &mocks.DateParser{}, nil),
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func seed(t *testing.T, s *testServices) {
	t.Helper()
	result, err := NewImportHandler(s.importer).Handle(t.Context(), KindMembers,
		writeFile(t, "members.json", membersJSON), ImportOptions{})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
}
