package processor

import (
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/notCienki/geoportal-app/internal/database"
	"github.com/notCienki/geoportal-app/internal/models"
	"github.com/notCienki/geoportal-app/internal/queue"
)

func generateTestRuns(prefix string, count int) []*models.ParseRun {
	runs := make([]*models.ParseRun, count)
	now := time.Now().UTC()
	for i := range runs {
		runs[i] = &models.ParseRun{
			ID:         fmt.Sprintf("%s-%d", prefix, i),
			Filename:   fmt.Sprintf("obwieszczenie-%d.pdf", i),
			Endpoint:   "upload",
			TotalCount: 40 + i%10,
			CreatedAt:  now,
		}
	}
	return runs
}

func BenchmarkBatchProcessing(b *testing.B) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel) // Reduce logging noise during benchmarks

	for _, batchSize := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("BatchSize_%d", batchSize), func(b *testing.B) {
			db, err := database.NewTestDB()
			require.NoError(b, err)
			defer db.Close()

			processor := NewBatchProcessor(db.GetDB(), queue.NewRunQueue(1, logger), testConfig(0), logger)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := processor.processBatch(generateTestRuns(fmt.Sprintf("b%d", i), batchSize)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
