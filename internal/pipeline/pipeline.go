// Package pipeline wires extraction, parsing, filtering and aggregation
// into the operations exposed to request handlers.
package pipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/notCienki/geoportal-app/internal/extractor"
	"github.com/notCienki/geoportal-app/internal/filter"
	"github.com/notCienki/geoportal-app/internal/models"
	"github.com/notCienki/geoportal-app/internal/parser"
	"github.com/notCienki/geoportal-app/internal/stats"
)

// Pipeline runs one document through extraction and parsing. It keeps no
// per-request state and is safe for concurrent use.
type Pipeline struct {
	extractor extractor.Extractor
	parser    *parser.Parser
	engine    *filter.Engine
	logger    *logrus.Logger
}

// New creates a pipeline
func New(ex extractor.Extractor, p *parser.Parser, engine *filter.Engine, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Pipeline{
		extractor: ex,
		parser:    p,
		engine:    engine,
		logger:    logger,
	}
}

// Parse extracts and parses a PDF. It fails only when the document yields
// no text at all; malformed rows are counted in the result.
func (p *Pipeline) Parse(ctx context.Context, pdf []byte) (models.ParseResult, error) {
	start := time.Now()

	rows, err := p.extractor.Extract(ctx, pdf)
	if err != nil {
		p.logger.WithError(err).Warn("Failed to extract document")
		return models.ParseResult{}, err
	}

	result := p.parser.Parse(rows)
	p.logger.WithFields(logrus.Fields{
		"rows":     len(rows),
		"records":  result.TotalCount,
		"skipped":  result.SkippedRows,
		"ignored":  result.IgnoredRows,
		"warnings": len(result.Warnings),
		"duration": time.Since(start).String(),
	}).Info("Parsed document")

	return result, nil
}

// Filter validates criteria and returns the matching records together with
// the number of criteria applied
func (p *Pipeline) Filter(records []models.AuctionRecord, criteria models.FilterCriteria) ([]models.AuctionRecord, int, error) {
	return p.engine.Filter(records, criteria)
}

// Aggregate summarises records
func (p *Pipeline) Aggregate(records []models.AuctionRecord) models.Statistics {
	return stats.Aggregate(records)
}

// BestOffers applies the best-offers preset
func (p *Pipeline) BestOffers(records []models.AuctionRecord) filter.BestOffersResult {
	return p.engine.BestOffers(records)
}
