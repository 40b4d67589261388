package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/plenum/internal/domain/entities"
	"github.com/ersonp/plenum/internal/infrastructure/config"
	"github.com/ersonp/plenum/internal/infrastructure/relationaldb/sqlite"
)

func TestSQLiteIntegration_FileDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dbPath := tempDBPath(t)
	ctx := context.Background()

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should exist")

	member := entities.NewMember(entities.MemberInfo{
		FirstName:        "Jan",
		LastName:         "Kowalski",
		Province:         "Mazowieckie",
		DateOfBirth:      time.Date(1970, 3, 5, 0, 0, 0, 0, time.UTC),
		AlternativeNames: []string{"Janek Kowalski"},
	})
	require.NoError(t, repo.SaveMember(ctx, member))

	at := time.Date(2021, 3, 4, 10, 15, 0, 0, time.FixedZone("", 3600))
	require.NoError(t, repo.SaveActivity(ctx, &entities.Record{
		ID:         "v1",
		MemberID:   member.ID(),
		Kind:       "vote",
		OccurredAt: at,
		Attributes: map[string]string{"sitting": "17"},
	}))

	// Close and reopen
	require.NoError(t, repo.Close())

	repo2, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	defer repo2.Close()

	found, err := repo2.FindMember(ctx, member.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.SameIdentity(member))
	assert.Equal(t, []string{"Janek Kowalski"}, found.AlternativeNames)

	records, err := repo2.FindActivities(ctx, member.ID())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, at.Equal(records[0].OccurredAt))
	assert.Equal(t, "2021-03-04T10:15:00+01:00", records[0].OccurredAt.Format(time.RFC3339))
	assert.Equal(t, "17", records[0].Attributes["sitting"])
}

func TestSQLiteIntegration_ManyWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	p := newPipeline(t, tempDBPath(t))

	member := entities.NewMember(entities.MemberInfo{FirstName: "Jan", LastName: "Kowalski", Province: "Mazowieckie"})
	require.NoError(t, p.registry.Register(ctx, member))

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		err := p.registry.AddActivity(ctx, &entities.Record{
			MemberID:   member.ID(),
			Kind:       "vote",
			OccurredAt: start.Add(time.Duration(i) * 24 * time.Hour),
		})
		require.NoError(t, err)
	}

	loaded, err := p.registry.Load(ctx, member.ID())
	require.NoError(t, err)
	activities := loaded.Activities()
	require.Len(t, activities, 200)
	for i := 1; i < len(activities); i++ {
		assert.True(t, activities[i-1].Date().Before(activities[i].Date()), "insertion order kept at %d", i)
	}
}
