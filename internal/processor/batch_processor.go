package processor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/notCienki/geoportal-app/config"
	"github.com/notCienki/geoportal-app/internal/database"
	"github.com/notCienki/geoportal-app/internal/models"
	"github.com/notCienki/geoportal-app/internal/queue"
)

// Transactor runs a function inside a database transaction. *gorm.DB
// satisfies it.
type Transactor interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// BatchProcessor writes run-log batches from the queue to the database
type BatchProcessor struct {
	db     Transactor
	logger *logrus.Logger
	config *config.Config
	queue  *queue.RunQueue
	ctx    context.Context
	cancel context.CancelFunc
}

// NewBatchProcessor creates a new batch processor instance
func NewBatchProcessor(db Transactor, queue *queue.RunQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		db:     db,
		queue:  queue,
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start subscribes to the queue and starts consuming it
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(p.processBatch)
	p.queue.Start()
}

// Stop abandons retries that are waiting, then drains the queue. Batches
// still queued get a single attempt each.
func (p *BatchProcessor) Stop() {
	p.cancel()
	_ = p.queue.Close()
}

// processBatch handles a single batch of runs with transaction and retry logic
func (p *BatchProcessor) processBatch(batch []*models.ParseRun) error {
	maxRetries := p.config.RunLog.MaxRetries

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch processing, attempt %d of %d", attempt, maxRetries)
			select {
			case <-p.ctx.Done():
				return fmt.Errorf("batch abandoned on shutdown: %w", err)
			case <-time.After(p.config.RunLog.RetryDelay):
			}
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.InsertRuns(tx, batch); err != nil {
				return fmt.Errorf("failed to insert runs batch: %w", err)
			}
			return nil
		})
		if err == nil {
			p.logger.Debugf("Successfully processed batch of %d runs", len(batch))
			return nil
		}

		p.logger.Errorf("Batch processing failed: %v", err)
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", maxRetries+1, err)
}
