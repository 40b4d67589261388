package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportHandler_Handle_MembersJSON(t *testing.T) {
	s := newTestServices()
	handler := NewImportHandler(s.importer)

	result, err := handler.Handle(t.Context(), KindMembers, writeFile(t, "members.json", membersJSON), ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)
	assert.Len(t, s.store.Members, 2)
	assert.Empty(t, s.store.Members["2c0cea5704"].Wiki)
}

func TestImportHandler_Handle_MembersCSV(t *testing.T) {
	s := newTestServices()
	handler := NewImportHandler(s.importer)
	content := "first_name,last_name,party,province,language,wiki,gender,date_of_birth,alternative_names\n" +
		"Jan,Kowalski,PO,Mazowieckie,pl,,M,1970-03-05,Janek Kowalski;J. Kowalski\n"

	result, err := handler.Handle(t.Context(), KindMembers, writeFile(t, "members.csv", content), ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, []string{"Janek Kowalski", "J. Kowalski"}, s.store.Members["2c0cea5704"].AlternativeNames)
}

func TestImportHandler_Handle_ActivitiesByName(t *testing.T) {
	s := newTestServices()
	seed(t, s)
	handler := NewImportHandler(s.importer)
	content := "member_name,type,date,summary\n" +
		"Kowalski Jan,vote,2021-03-04T10:15:00Z,za\n" +
		"Anna Nowak-Kowalczyk,speech,2021-03-05T12:00:00Z,\n" +
		"Zieliński,vote,2021-03-05T12:00:00Z,\n"

	result, err := handler.Handle(t.Context(), KindActivities, writeFile(t, "votes.csv", content), ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 4, result.Errors[0].Line)
	assert.Equal(t, "unknown member", result.Errors[0].Message)
	assert.Len(t, s.store.Activities["2c0cea5704"], 1)
}

func TestImportHandler_Handle_Replacements(t *testing.T) {
	s := newTestServices()
	seed(t, s)
	handler := NewImportHandler(s.importer)
	content := `[{"member_id": "2c0cea5704", "replaced_member_id": "ffffffffff", "start": "2019-11-12"}]`

	result, err := handler.Handle(t.Context(), KindReplacements, writeFile(t, "replacements.json", content), ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "replaced_member_id", result.Errors[0].Field)
}

func TestImportHandler_Handle_DryRun(t *testing.T) {
	s := newTestServices()
	handler := NewImportHandler(s.importer)

	result, err := handler.Handle(t.Context(), KindMembers, writeFile(t, "members.json", membersJSON), ImportOptions{DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, s.store.Members)
}

func TestImportHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		kind    RecordKind
		file    string
		content string
		opts    ImportOptions
		wantErr string
	}{
		{
			name:    "unsupported extension",
			kind:    KindMembers,
			file:    "members.xml",
			content: "<members/>",
			wantErr: "unsupported format",
		},
		{
			name:    "explicit format overrides extension",
			kind:    KindMembers,
			file:    "members.txt",
			content: "not json",
			opts:    ImportOptions{Format: "json"},
			wantErr: "parsing file",
		},
		{
			name:    "unknown kind",
			kind:    RecordKind("votes"),
			file:    "votes.json",
			content: "[]",
			wantErr: "unknown record kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewImportHandler(newTestServices().importer)

			_, err := handler.Handle(t.Context(), tt.kind, writeFile(t, tt.file, tt.content), tt.opts)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestImportHandler_Handle_MissingFile(t *testing.T) {
	handler := NewImportHandler(newTestServices().importer)

	_, err := handler.Handle(t.Context(), KindMembers, "/nonexistent/members.json", ImportOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening file")
}
