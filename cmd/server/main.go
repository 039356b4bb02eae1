package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/notCienki/geoportal-app/config"
	"github.com/notCienki/geoportal-app/internal/api"
	"github.com/notCienki/geoportal-app/internal/database"
	"github.com/notCienki/geoportal-app/internal/export"
	"github.com/notCienki/geoportal-app/internal/extractor"
	"github.com/notCienki/geoportal-app/internal/filter"
	"github.com/notCienki/geoportal-app/internal/normalize"
	"github.com/notCienki/geoportal-app/internal/parser"
	"github.com/notCienki/geoportal-app/internal/pipeline"
	"github.com/notCienki/geoportal-app/internal/processor"
	"github.com/notCienki/geoportal-app/internal/queue"
	"github.com/notCienki/geoportal-app/internal/scheduler"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if level != logrus.DebugLevel && level != logrus.TraceLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	loc, err := cfg.Location()
	if err != nil {
		logger.WithError(err).Fatal("Invalid timezone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pdfExtractor, err := extractor.NewPDFExtractor(ctx, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize PDF extractor")
	}

	opts := parser.DefaultOptions()
	opts.Location = loc
	opts.Layout.MinColumns = cfg.Parser.MinColumns
	opts.AreaUnit = normalize.ParseUnit(cfg.Parser.AreaUnit)

	p := pipeline.New(pdfExtractor, parser.NewParser(opts), filter.NewEngine(logger), logger)

	// Run log is optional
	var runs api.RunStore
	var runQueue *queue.RunQueue
	var batchProcessor *processor.BatchProcessor
	var pruneScheduler *scheduler.Scheduler
	if cfg.RunLogEnabled() {
		logger.Infof("Using run log database at: %s", cfg.RunLog.DBPath)

		db, err := database.NewDatabase(cfg.RunLog.DBPath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database")
		}
		defer db.Close()

		logger.Info("Running database migrations...")
		if err := db.RunMigrations(); err != nil {
			logger.WithError(err).Fatal("Failed to run database migrations")
		}

		runQueue = queue.NewRunQueue(cfg.RunLog.Buffer, logger)
		batchProcessor = processor.NewBatchProcessor(db.GetDB(), runQueue, cfg, logger)
		batchProcessor.Start()

		pruneScheduler = scheduler.NewScheduler(db, cfg.RunLog.Retention, cfg.RunLog.PruneSchedule, logger)
		if err := pruneScheduler.Start(); err != nil {
			logger.WithError(err).Fatal("Failed to start run log pruning")
		}
		runs = db
	}

	handler := api.NewHandler(p, export.NewExporter(logger), runs, runQueue, cfg.MaxUploadBytes(), logger)
	router := api.NewRouter(handler, cfg.Server.CORSOrigins, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	if pruneScheduler != nil {
		pruneScheduler.Stop()
	}
	if batchProcessor != nil {
		batchProcessor.Stop()
	}
}
