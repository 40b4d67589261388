package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/plenum/internal/domain/entities"
	"github.com/ersonp/plenum/internal/domain/mocks"
)

func newTestMember() *entities.Member {
	return entities.NewMember(entities.MemberInfo{
		FirstName:   "Jan",
		LastName:    "Kowalski",
		Party:       "PO",
		Province:    "Mazowieckie",
		Language:    "pl",
		Gender:      "M",
		DateOfBirth: time.Date(1970, 3, 5, 0, 0, 0, 0, time.UTC),
		Wiki:        "https://pl.wikipedia.org/wiki/Jan_Kowalski",
	})
}

func sealedMember(t *testing.T, activities ...entities.Activity) *entities.Member {
	t.Helper()
	m := newTestMember()
	for _, a := range activities {
		require.NoError(t, m.PostActivity(a))
	}
	m.Seal()
	return m
}

func TestExportService_Dump_RejectsUnsealed(t *testing.T) {
	writer := mocks.NewResourceWriter()
	service := NewExportService(writer, nil)

	_, err := service.Dump(context.Background(), newTestMember(), "/")

	assert.ErrorIs(t, err, entities.ErrMemberNotSealed)
	assert.Empty(t, writer.Writes)
}

func TestExportService_Dump_TwoYears(t *testing.T) {
	writer := mocks.NewResourceWriter()
	service := NewExportService(writer, nil)
	member := sealedMember(t,
		record("a", time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC)),
		record("b", time.Date(2021, 5, 1, 9, 0, 0, 0, time.UTC)),
	)

	uri, err := service.Dump(context.Background(), member, "/")

	require.NoError(t, err)
	assert.Equal(t, "/members/2c0cea5704.json", uri)
	assert.Equal(t, []string{
		"members/2c0cea5704/2020.json",
		"members/2c0cea5704/2021.json",
		"members/2c0cea5704.json",
	}, writer.Writes)

	var year map[string][]map[string]any
	require.NoError(t, json.Unmarshal(writer.Resources["members/2c0cea5704/2020.json"], &year))
	require.Len(t, year["2020-03-01T10:00:00Z"], 1)
	assert.Equal(t, "a", year["2020-03-01T10:00:00Z"][0]["id"])

	var summary struct {
		Activities map[string]string `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(writer.Resources["members/2c0cea5704.json"], &summary))
	assert.Equal(t, map[string]string{
		"2020": "/members/2c0cea5704/2020.json",
		"2021": "/members/2c0cea5704/2021.json",
	}, summary.Activities)
}

func TestExportService_Dump_KeepsStoredOrder(t *testing.T) {
	writer := mocks.NewResourceWriter()
	service := NewExportService(writer, nil)
	member := sealedMember(t,
		record("a", time.Date(2022, 1, 5, 9, 0, 0, 0, time.UTC)),
		record("b", time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC)),
		record("c", time.Date(2021, 3, 1, 8, 0, 0, 0, time.UTC)),
	)

	_, err := service.Dump(context.Background(), member, "/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"members/2c0cea5704/2022.json",
		"members/2c0cea5704/2021.json",
		"members/2c0cea5704.json",
	}, writer.Writes)
	assert.Equal(t,
		`{"2021-03-01T10:00:00Z":[{"id":"b","type":"vote"}],"2021-03-01T08:00:00Z":[{"id":"c","type":"vote"}]}`+"\n",
		string(writer.Resources["members/2c0cea5704/2021.json"]))
	assert.Contains(t, string(writer.Resources["members/2c0cea5704.json"]),
		`"activities":{"2022":"/members/2c0cea5704/2022.json","2021":"/members/2c0cea5704/2021.json"}`)
}

func TestExportService_Dump_Summary(t *testing.T) {
	writer := mocks.NewResourceWriter()
	service := NewExportService(writer, nil)

	start := time.Date(2019, 11, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	member := newTestMember()
	require.NoError(t, member.SetReplaces([]entities.Replacement{
		{MemberRef: "abc", Dates: entities.DateRange{Start: start, End: &end}},
		{MemberRef: "def", Dates: entities.DateRange{Start: end}},
	}))
	member.Seal()

	_, err := service.Dump(context.Background(), member, "https://sejm.example/")
	require.NoError(t, err)

	data := writer.Resources["members/2c0cea5704.json"]
	var summary MemberSummary
	require.NoError(t, json.Unmarshal(data, &summary))

	assert.Equal(t, "2c0cea5704", summary.ID)
	assert.Equal(t, "Jan", summary.FirstName)
	assert.Equal(t, "Kowalski", summary.LastName)
	assert.Equal(t, "M", summary.Gender)
	assert.Equal(t, "1970-03-05", summary.DateOfBirth)
	assert.Equal(t, "pl", summary.Language)
	assert.Equal(t, "Mazowieckie", summary.Province)
	assert.Equal(t, "PO", summary.Party)
	require.NotNil(t, summary.Wiki)
	assert.Equal(t, member.Wiki, *summary.Wiki)
	assert.Nil(t, summary.PhotoURL)
	assert.Equal(t, 0, summary.Activities.Len())

	require.Len(t, summary.Replaces, 2)
	assert.Equal(t, "https://sejm.example/members/abc.json", summary.Replaces[0].Member)
	assert.Equal(t, "2019-11-12", summary.Replaces[0].Dates.Start)
	require.NotNil(t, summary.Replaces[0].Dates.End)
	assert.Equal(t, "2020-01-31", *summary.Replaces[0].Dates.End)
	assert.Nil(t, summary.Replaces[1].Dates.End)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "photo_url")
	assert.Nil(t, raw["photo_url"])
	assert.Equal(t, map[string]any{}, raw["activities"])
}

func TestExportService_Dump_NoActivitiesNoYearFiles(t *testing.T) {
	writer := mocks.NewResourceWriter()
	service := NewExportService(writer, nil)

	_, err := service.Dump(context.Background(), sealedMember(t), "/")

	require.NoError(t, err)
	assert.Equal(t, []string{"members/2c0cea5704.json"}, writer.Writes)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(writer.Resources["members/2c0cea5704.json"], &raw))
	assert.Equal(t, []any{}, raw["replaces"])
}

func TestExportService_Dump_DefaultBaseURI(t *testing.T) {
	service := NewExportService(mocks.NewResourceWriter(), nil)

	uri, err := service.Dump(context.Background(), sealedMember(t), "")

	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURI+"members/2c0cea5704.json", uri)
}

func TestExportService_Dump_Idempotent(t *testing.T) {
	member := sealedMember(t,
		record("a", time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC)),
		record("b", time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC)),
		record("c", time.Date(2022, 7, 8, 11, 0, 0, 0, time.UTC)),
	)
	first := mocks.NewResourceWriter()
	second := mocks.NewResourceWriter()

	_, err := NewExportService(first, nil).Dump(context.Background(), member, "/")
	require.NoError(t, err)
	_, err = NewExportService(second, nil).Dump(context.Background(), member, "/")
	require.NoError(t, err)

	assert.Equal(t, first.Resources, second.Resources)
}

func TestExportService_Dump_WriterError(t *testing.T) {
	writeErr := errors.New("disk full")
	writer := mocks.NewResourceWriter()
	writer.Err = writeErr

	_, err := NewExportService(writer, nil).Dump(context.Background(), sealedMember(t), "/")

	assert.ErrorIs(t, err, writeErr)
}

func TestExportService_ExportAll(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistryService(mocks.NewRegistry(), nil)

	jan := newTestMember()
	anna := entities.NewMember(entities.MemberInfo{FirstName: "Anna", LastName: "Nowak", Province: "Pomorskie"})
	require.NoError(t, registry.Register(ctx, jan))
	require.NoError(t, registry.Register(ctx, anna))
	require.NoError(t, registry.AddActivity(ctx, record("a", time.Date(2020, 3, 1, 10, 0, 0, 0, time.UTC))))

	writer := mocks.NewResourceWriter()
	result, err := NewExportService(writer, nil).ExportAll(ctx, registry, "/")

	require.NoError(t, err)
	require.Len(t, result.URIs, 2)
	assert.Contains(t, result.URIs, "/"+jan.URI())
	assert.Contains(t, result.URIs, "/"+anna.URI())
	assert.Contains(t, writer.Resources, "members/2c0cea5704/2020.json")
	assert.Contains(t, writer.Resources, anna.URI())
}
