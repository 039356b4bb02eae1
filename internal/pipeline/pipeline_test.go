package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/notCienki/geoportal-app/internal/extractor"
	"github.com/notCienki/geoportal-app/internal/filter"
	"github.com/notCienki/geoportal-app/internal/models"
	"github.com/notCienki/geoportal-app/internal/parser"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, data []byte) ([]extractor.Row, error) {
	args := m.Called(ctx, data)
	rows, _ := args.Get(0).([]extractor.Row)
	return rows, args.Error(1)
}

var testNow = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func row(lp, location, date, area, price string) extractor.Row {
	return extractor.Row{lp, "", date, "Starostwo", location, "sprzedaż", "ustny nieograniczony", "działka\nrolna", "", area, "", price, "1", ""}
}

// tenRows holds eight valid records, one orphan line and one truncated row
func tenRows() []extractor.Row {
	return []extractor.Row{
		{"strona 1"},
		row("1.", "Podkarpackie/Łańcucki/Czarna/Czarna/1", "15.04.2025 10:00", "0,10", "15 000,00"),
		row("2.", "Podkarpackie/Łańcucki/Łańcut/Albigowa/2", "15.04.2025 10:00", "0,05", "50 000,00"),
		row("3.", "Podkarpackie/Rzeszowski/Tyczyn/Tyczyn/3", "02.04.2025 10:00", "1,00", "75 000,00"),
		row("4.", "Podkarpackie/Rzeszowski/Tyczyn/Borek Stary/4", "15.04.2025 10:00", "0,50", "100 000,00"),
		row("5.", "Podkarpackie/Krośnieński/Jedlicze/Jedlicze/5", "15.04.2025 10:00", "0,20", "100 000,01"),
		{"6.", "Podkarpackie/Łańcucki"},
		row("7.", "Podkarpackie/Łańcucki/Markowa/Markowa/7", "20.04.2025", "0,09", "19 999,99"),
		row("8.", "Podkarpackie/Ropczycko-Sędziszowski/Ropczyce/Ropczyce/8", "", "2,00", ""),
		row("9.", "Podkarpackie/Łańcucki/Białobrzegi/Białobrzegi/9", "15.04.2025 10:00", "", "49 999,99"),
	}
}

func newTestPipeline(ex extractor.Extractor) *Pipeline {
	engine := filter.NewEngineWithClock(func() time.Time { return testNow }, nil)
	return New(ex, parser.NewParser(parser.DefaultOptions()), engine, nil)
}

func TestPipelineEndToEnd(t *testing.T) {
	ex := new(mockExtractor)
	ex.On("Extract", mock.Anything, []byte("%PDF-1.7")).Return(tenRows(), nil)

	p := newTestPipeline(ex)
	result, err := p.Parse(context.Background(), []byte("%PDF-1.7"))
	require.NoError(t, err)

	assert.Len(t, result.Records, 8)
	assert.Equal(t, 8, result.TotalCount)
	assert.Equal(t, 2, result.SkippedRows)
	for i, rec := range result.Records {
		assert.Equal(t, i+1, rec.ID)
	}

	filtered, applied, err := p.Filter(result.Records, models.FilterCriteria{
		MinPrice: models.Ptr(decimal.NewFromInt(50000)),
		MaxPrice: models.Ptr(decimal.NewFromInt(100000)),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	var locations []string
	for _, rec := range filtered {
		locations = append(locations, rec.Location)
		price := rec.EffectivePrice()
		require.True(t, price.Valid)
		assert.True(t, price.Decimal.GreaterThanOrEqual(decimal.NewFromInt(50000)))
		assert.True(t, price.Decimal.LessThanOrEqual(decimal.NewFromInt(100000)))
	}
	assert.Equal(t, []string{
		"Podkarpackie/Łańcucki/Łańcut/Albigowa/2",
		"Podkarpackie/Rzeszowski/Tyczyn/Tyczyn/3",
		"Podkarpackie/Rzeszowski/Tyczyn/Borek Stary/4",
	}, locations)

	st := p.Aggregate(filtered)
	assert.Equal(t, 3, st.Count)
	assert.InDelta(t, 75000.0, st.AvgPrice, 1e-9)

	best := p.BestOffers(result.Records)
	assert.Equal(t, 2, best.Matched)
	assert.Equal(t, best, p.BestOffers(result.Records))

	ex.AssertExpectations(t)
}

func TestPipelineExtractionFailure(t *testing.T) {
	ex := new(mockExtractor)
	extractionErr := &extractor.ExtractionError{Message: "no text in document", Cause: extractor.ErrNoText}
	ex.On("Extract", mock.Anything, mock.Anything).Return(nil, extractionErr)

	_, err := newTestPipeline(ex).Parse(context.Background(), []byte("%PDF-1.7"))

	var target *extractor.ExtractionError
	require.True(t, errors.As(err, &target))
	assert.ErrorIs(t, err, extractor.ErrNoText)
}

func TestPipelineFilterConfigurationError(t *testing.T) {
	p := newTestPipeline(new(mockExtractor))

	_, _, err := p.Filter(nil, models.FilterCriteria{
		MinAreaHa: models.Ptr(2.0),
		MaxAreaHa: models.Ptr(1.0),
	})
	assert.ErrorIs(t, err, filter.ErrInvalidCriteria)
}

func TestPipelineParsesNoticePDF(t *testing.T) {
	data, err := os.ReadFile("../extractor/testdata/notice.pdf")
	require.NoError(t, err)

	pdfExtractor, err := extractor.NewPDFExtractor(context.Background(), nil)
	require.NoError(t, err)

	result, err := newTestPipeline(pdfExtractor).Parse(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.IgnoredRows)
	assert.Zero(t, result.SkippedRows)

	first := result.Records[0]
	assert.Equal(t, "Podkarpackie/Lancucki/Czarna/Czarna/1", first.Location)
	assert.Equal(t, "dzialka", first.Category)
	assert.Equal(t, "rolna", first.Character)
	assert.Equal(t, "sprzedaz", first.Form)
	require.NotNil(t, first.AreaHa)
	assert.InDelta(t, 0.1, *first.AreaHa, 1e-9)
	require.True(t, first.StartingPrice.Valid)
	assert.True(t, first.StartingPrice.Decimal.Equal(decimal.NewFromInt(15000)))
	require.NotNil(t, first.DateTime)
	assert.True(t, first.HasTime)

	second := result.Records[1]
	assert.Equal(t, "Podkarpackie/Lancucki/Markowa/7", second.Location)
	require.True(t, second.StartingPrice.Valid)
	assert.Equal(t, "19999.99", second.StartingPrice.Decimal.String())
	assert.False(t, second.HasTime)
}
