//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/smartpack-service/internal/circuitbreaker"
	"github.com/guttosm/smartpack-service/internal/domain/model"
)

func TestReportsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openTestDB(t)

	repo := NewReportsRepository(db)
	owner := "ana@example.com"
	base := time.Now().UTC().Truncate(time.Millisecond)

	var ids []primitive.ObjectID
	for i, title := range []string{"first", "second", "third"} {
		report := &model.Report{
			UserEmail:     owner,
			ReportPayload: model.ReportPayload{Title: title, Packaging: "Box", ReportText: "text " + title},
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, report))
		require.False(t, report.ID.IsZero())
		ids = append(ids, report.ID)
	}
	require.NoError(t, repo.Create(ctx, &model.Report{UserEmail: "other@example.com", ReportPayload: model.ReportPayload{Title: "foreign"}}))

	t.Run("list is newest first and scoped to owner", func(t *testing.T) {
		reports, err := repo.ListByUser(ctx, owner, 50)
		require.NoError(t, err)
		require.Len(t, reports, 3)
		assert.Equal(t, "third", reports[0].Title)
		assert.Equal(t, "first", reports[2].Title)
	})

	t.Run("list honors limit", func(t *testing.T) {
		reports, err := repo.ListByUser(ctx, owner, 2)
		require.NoError(t, err)
		assert.Len(t, reports, 2)
	})

	t.Run("list for unknown user is empty", func(t *testing.T) {
		reports, err := repo.ListByUser(ctx, "nobody@example.com", 50)
		require.NoError(t, err)
		assert.Empty(t, reports)
	})

	t.Run("find by id", func(t *testing.T) {
		report, err := repo.FindByID(ctx, owner, ids[1])
		require.NoError(t, err)
		assert.Equal(t, "second", report.Title)
		assert.Equal(t, "text second", report.ReportText)
	})

	t.Run("find by id of another user is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "other@example.com", ids[1])
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, owner, ids[0]))
		assert.ErrorIs(t, repo.Delete(ctx, owner, ids[0]), ErrNotFound)

		reports, err := repo.ListByUser(ctx, owner, 50)
		require.NoError(t, err)
		assert.Len(t, reports, 2)
	})
}

func TestReportsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openTestDB(t)

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	repo := NewReportsRepositoryWithCircuitBreaker(NewReportsRepository(db), cb)

	report := &model.Report{UserEmail: "ana@example.com", ReportPayload: model.ReportPayload{Title: "mug"}}
	require.NoError(t, repo.Create(ctx, report))

	_, err := repo.FindByID(ctx, "ana@example.com", primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)

	stats := cb.GetStats()
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
}

func TestFeedbackRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := openTestDB(t)

	repo := NewFeedbackRepository(db)
	key := "ml_fb_10_5_3_0.5_LOW"

	require.NoError(t, repo.Create(ctx, &model.Feedback{EventID: "evt-1", Key: key}))
	require.NoError(t, repo.CreateMany(ctx, []*model.Feedback{
		{EventID: "evt-2", Key: key},
		{EventID: "evt-3", Key: "ml_fb_1_1_1_0_HIGH"},
	}))
	require.NoError(t, repo.CreateMany(ctx, nil))

	count, err := repo.CountByKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// event ids are unique
	assert.Error(t, repo.Create(ctx, &model.Feedback{EventID: "evt-1", Key: key}))
}
