package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notCienki/geoportal-app/internal/database"
	"github.com/notCienki/geoportal-app/internal/models"
)

type fakePruner struct {
	cutoffs []time.Time
	err     error
}

func (f *fakePruner) PruneRunsBefore(cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, f.err
}

func TestRunPruneUsesRetentionWindow(t *testing.T) {
	pruner := &fakePruner{}
	s := NewScheduler(pruner, 48*time.Hour, "@daily", logrus.New())
	s.now = func() time.Time { return time.Date(2025, 4, 3, 12, 0, 0, 0, time.UTC) }

	s.runPrune()

	require.Len(t, pruner.cutoffs, 1)
	assert.Equal(t, time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC), pruner.cutoffs[0])
}

func TestRunPruneLogsFailure(t *testing.T) {
	pruner := &fakePruner{err: errors.New("database is locked")}
	s := NewScheduler(pruner, time.Hour, "@daily", nil)

	assert.NotPanics(t, s.runPrune)
	assert.Len(t, pruner.cutoffs, 1)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler(&fakePruner{}, time.Hour, "every now and then", nil)
	err := s.Start()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid prune schedule")
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(&fakePruner{}, time.Hour, "@every 1h", nil)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestRunPruneAgainstDatabase(t *testing.T) {
	db, err := database.NewTestDB()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 4, 3, 12, 0, 0, 0, time.UTC)
	require.NoError(t, database.InsertRuns(db.GetDB(), []*models.ParseRun{
		{ID: "old", Endpoint: "upload", CreatedAt: now.Add(-72 * time.Hour)},
		{ID: "new", Endpoint: "upload", CreatedAt: now.Add(-time.Hour)},
	}))

	s := NewScheduler(db, 24*time.Hour, "@daily", nil)
	s.now = func() time.Time { return now }
	s.runPrune()

	runs, err := db.ListRecentRuns(10, "")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "new", runs[0].ID)
}
