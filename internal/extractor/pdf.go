package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/components/document/parser"
	rawpdf "github.com/dslipak/pdf"
	"github.com/sirupsen/logrus"
)

var pdfMagic = []byte("%PDF-")

// PDFExtractor extracts table rows from PDF documents, page by page. Rows
// are rebuilt from positioned text; documents without a recognisable table
// fall back to the plain text of the eino PDF parser.
type PDFExtractor struct {
	parser *pdf.PDFParser
	logger *logrus.Logger
}

// NewPDFExtractor creates a PDF extractor
func NewPDFExtractor(ctx context.Context, logger *logrus.Logger) (*PDFExtractor, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: true})
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf parser: %w", err)
	}

	return &PDFExtractor{parser: p, logger: logger}, nil
}

// Extract returns the rows of every page in document order
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) ([]Row, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), pdfMagic) {
		return nil, newExtractionError("unreadable document", ErrNotPDF)
	}

	rows, err := e.extractTables(ctx, data)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		e.logger.WithError(err).Debug("Positioned text unavailable, using plain text")
	}
	if len(rows) > 0 {
		return rows, nil
	}

	return e.extractPlainText(ctx, data)
}

// extractTables reads glyph positions page by page and rebuilds table rows
func (e *PDFExtractor) extractTables(ctx context.Context, data []byte) (rows []Row, err error) {
	// the underlying reader panics on some damaged cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = fmt.Errorf("pdf reader: %v", r)
		}
	}()

	r, err := rawpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var bounds []float64
	pages := r.NumPage()
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		texts := page.Content().Text
		glyphs := make([]glyph, 0, len(texts))
		for _, t := range texts {
			glyphs = append(glyphs, glyph{x: t.X, y: t.Y, w: t.W, size: t.FontSize, s: t.S})
		}

		var tableOut []Row
		tableOut, bounds = pageRows(glyphs, bounds)
		e.logger.WithFields(logrus.Fields{
			"page":    i,
			"glyphs":  len(glyphs),
			"columns": len(bounds) + 1,
			"rows":    len(tableOut),
		}).Debug("Rebuilt page table")
		rows = append(rows, tableOut...)
	}

	if len(rows) > 0 {
		e.logger.WithFields(logrus.Fields{
			"pages": pages,
			"rows":  len(rows),
		}).Info("Extracted document tables")
	}
	return rows, nil
}

// extractPlainText splits the eino parser's page text on wide gaps
func (e *PDFExtractor) extractPlainText(ctx context.Context, data []byte) (rows []Row, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = newExtractionError("unreadable document", fmt.Errorf("pdf reader: %v", r))
		}
	}()

	docs, err := e.parser.Parse(ctx, bytes.NewReader(data), parser.WithURI("upload.pdf"))
	if err != nil {
		return nil, newExtractionError("unreadable document", err)
	}

	for i, doc := range docs {
		if doc == nil || strings.TrimSpace(doc.Content) == "" {
			continue
		}
		lines := SplitRows(doc.Content)
		e.logger.WithFields(logrus.Fields{
			"page": i + 1,
			"rows": len(lines),
		}).Debug("Extracted page")
		rows = append(rows, lines...)
	}

	if len(rows) == 0 {
		return nil, newExtractionError("no text in document", ErrNoText)
	}

	e.logger.WithFields(logrus.Fields{
		"pages": len(docs),
		"rows":  len(rows),
	}).Info("Extracted document text")
	return rows, nil
}
