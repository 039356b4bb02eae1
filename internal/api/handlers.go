package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/notCienki/geoportal-app/config"
	"github.com/notCienki/geoportal-app/internal/export"
	"github.com/notCienki/geoportal-app/internal/extractor"
	"github.com/notCienki/geoportal-app/internal/filter"
	"github.com/notCienki/geoportal-app/internal/location"
	"github.com/notCienki/geoportal-app/internal/models"
	"github.com/notCienki/geoportal-app/internal/pipeline"
	"github.com/notCienki/geoportal-app/internal/queue"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	errMissingFile    = errors.New("missing file")
	errUploadTooLarge = errors.New("file too large")
)

// RunStore lists logged runs
type RunStore interface {
	ListRecentRuns(limit int, endpoint string) ([]models.ParseRun, error)
}

type Handler struct {
	pipeline       *pipeline.Pipeline
	exporter       *export.Exporter
	runs           RunStore
	runQueue       *queue.RunQueue
	maxUploadBytes int64
	logger         *logrus.Logger
}

// UploadResponse is returned by the upload endpoint
type UploadResponse struct {
	Records        []models.AuctionRecord `json:"records"`
	Statistics     models.Statistics      `json:"statistics"`
	TotalRecords   int                    `json:"total_records"`
	FilteredCount  int                    `json:"filtered_count"`
	SkippedRows    int                    `json:"skipped_rows"`
	IgnoredRows    int                    `json:"ignored_rows"`
	Warnings       int                    `json:"warnings"`
	WarningDetails []models.FieldWarning  `json:"warning_details"`
	AppliedFilters int                    `json:"applied_filters"`
}

// BestOffersResponse is returned by the best-offers endpoint
type BestOffersResponse struct {
	filter.BestOffersResult
	TotalRecords int `json:"total_records"`
	SkippedRows  int `json:"skipped_rows"`
	IgnoredRows  int `json:"ignored_rows"`
	Warnings     int `json:"warnings"`
}

type LocationRequest struct {
	Location  string `json:"location"`
	Polozenie string `json:"polozenie"`
}

type LocationResponse struct {
	location.Location
	GeoportalURL        string `json:"geoportal_url"`
	AutomationSupported bool   `json:"automation_supported"`
}

// NewHandler creates the request handlers. runs and runQueue may be nil when
// the run log is disabled.
func NewHandler(p *pipeline.Pipeline, exporter *export.Exporter, runs RunStore, runQueue *queue.RunQueue, maxUploadBytes int64, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		pipeline:       p,
		exporter:       exporter,
		runs:           runs,
		runQueue:       runQueue,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) GetCounties(c *gin.Context) {
	c.JSON(http.StatusOK, config.SupportedCounties)
}

// Upload parses a notice and returns the records matching the query filters.
// With best_offers_only the preset replaces the matching query filters.
func (h *Handler) Upload(c *gin.Context) {
	start := time.Now()
	run := &models.ParseRun{Endpoint: "upload"}
	defer h.logRun(run, start)

	criteria, bestOnly, err := criteriaFromQuery(c)
	if bestOnly {
		criteria = filter.WithBestOffers(criteria)
	}
	if err == nil {
		err = filter.Validate(criteria)
	}
	if err != nil {
		h.respondError(c, run, err)
		return
	}

	result, ok := h.parseUpload(c, run)
	if !ok {
		return
	}

	records, applied, err := h.pipeline.Filter(result.Records, criteria)
	if err != nil {
		h.respondError(c, run, err)
		return
	}

	run.Matched = len(records)
	run.AppliedFilters = applied

	c.JSON(http.StatusOK, UploadResponse{
		Records:        records,
		Statistics:     h.pipeline.Aggregate(records),
		TotalRecords:   result.TotalCount,
		FilteredCount:  len(records),
		SkippedRows:    result.SkippedRows,
		IgnoredRows:    result.IgnoredRows,
		Warnings:       len(result.Warnings),
		WarningDetails: result.Warnings,
		AppliedFilters: applied,
	})
}

// BestOffers parses a notice and applies the best-offers preset
func (h *Handler) BestOffers(c *gin.Context) {
	start := time.Now()
	run := &models.ParseRun{Endpoint: "best-offers"}
	defer h.logRun(run, start)

	result, ok := h.parseUpload(c, run)
	if !ok {
		return
	}

	offers := h.pipeline.BestOffers(result.Records)
	run.Matched = offers.Matched
	run.AppliedFilters = filter.BestOffersCriteria().AppliedCount()

	c.JSON(http.StatusOK, BestOffersResponse{
		BestOffersResult: offers,
		TotalRecords:     result.TotalCount,
		SkippedRows:      result.SkippedRows,
		IgnoredRows:      result.IgnoredRows,
		Warnings:         len(result.Warnings),
	})
}

// Export parses a notice and returns the filtered records as a workbook
func (h *Handler) Export(c *gin.Context) {
	start := time.Now()
	run := &models.ParseRun{Endpoint: "export"}
	defer h.logRun(run, start)

	criteria, bestOnly, err := criteriaFromQuery(c)
	if bestOnly {
		criteria = filter.WithBestOffers(criteria)
	}
	if err == nil {
		err = filter.Validate(criteria)
	}
	if err != nil {
		h.respondError(c, run, err)
		return
	}

	result, ok := h.parseUpload(c, run)
	if !ok {
		return
	}

	records, applied, err := h.pipeline.Filter(result.Records, criteria)
	if err != nil {
		h.respondError(c, run, err)
		return
	}
	run.Matched = len(records)
	run.AppliedFilters = applied

	data, err := h.exporter.RecordsXLSX(records, h.pipeline.Aggregate(records))
	if err != nil {
		h.respondError(c, run, err)
		return
	}

	name := strings.TrimSuffix(run.Filename, ".pdf")
	if name == "" {
		name = "przetargi"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ParseLocation splits a property path and resolves its geoportal
func (h *Handler) ParseLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	raw := req.Location
	if strings.TrimSpace(raw) == "" {
		raw = req.Polozenie
	}
	if strings.TrimSpace(raw) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required"})
		return
	}

	loc := location.Parse(raw)
	url, automated := loc.GeoportalURL()
	c.JSON(http.StatusOK, LocationResponse{
		Location:            loc,
		GeoportalURL:        url,
		AutomationSupported: automated,
	})
}

// GetRuns lists recently logged runs, newest first
func (h *Handler) GetRuns(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Run log is disabled"})
		return
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = v
	}

	runs, err := h.runs.ListRecentRuns(limit, c.Query("endpoint"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get runs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get runs"})
		return
	}

	c.JSON(http.StatusOK, runs)
}

// parseUpload reads the "file" form field and runs it through the pipeline.
// On failure the error response has been written.
func (h *Handler) parseUpload(c *gin.Context, run *models.ParseRun) (models.ParseResult, bool) {
	filename, data, err := h.readUpload(c)
	run.Filename = filename
	if err != nil {
		h.respondError(c, run, err)
		return models.ParseResult{}, false
	}

	result, err := h.pipeline.Parse(c.Request.Context(), data)
	if err != nil {
		documentsParsed.WithLabelValues("failed").Inc()
		h.respondError(c, run, err)
		return models.ParseResult{}, false
	}

	documentsParsed.WithLabelValues("parsed").Inc()
	recordsParsed.Add(float64(result.TotalCount))
	rowsSkipped.Add(float64(result.SkippedRows))

	run.TotalCount = result.TotalCount
	run.SkippedRows = result.SkippedRows
	run.IgnoredRows = result.IgnoredRows
	run.Warnings = len(result.Warnings)
	return result, true
}

func (h *Handler) readUpload(c *gin.Context) (string, []byte, error) {
	if h.maxUploadBytes > 0 {
		if c.Request.ContentLength > h.maxUploadBytes {
			return "", nil, errUploadTooLarge
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, errUploadTooLarge
		}
		return "", nil, errMissingFile
	}

	f, err := fh.Open()
	if err != nil {
		return fh.Filename, nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fh.Filename, nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return fh.Filename, data, nil
}

// respondError maps an error to its status code and records it on the run
func (h *Handler) respondError(c *gin.Context, run *models.ParseRun, err error) {
	run.Error = err.Error()

	var extErr *extractor.ExtractionError
	var cfgErr *filter.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Error(), "field": cfgErr.Field})
	case errors.Is(err, errMissingFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
	case errors.Is(err, errUploadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
	case errors.As(err, &extErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": extErr.Error()})
	default:
		h.logger.WithError(err).WithField("endpoint", run.Endpoint).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// logRun queues the run summary. A full queue drops the entry rather than
// delaying the response.
func (h *Handler) logRun(run *models.ParseRun, start time.Time) {
	if h.runQueue == nil {
		return
	}

	run.ID = uuid.NewString()
	run.DurationMs = time.Since(start).Milliseconds()
	run.CreatedAt = time.Now().UTC()

	if err := h.runQueue.Push([]*models.ParseRun{run}); err != nil {
		h.logger.WithError(err).WithField("run_id", run.ID).Warn("Dropped run log entry")
	}
}
