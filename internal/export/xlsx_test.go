package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/notCienki/geoportal-app/internal/models"
	"github.com/notCienki/geoportal-app/internal/stats"
)

func TestRecordsXLSX(t *testing.T) {
	date := time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)
	records := []models.AuctionRecord{
		{
			ID: 1, Category: "działka", Character: "rolna",
			Location: "Podkarpackie/Łańcucki/Czarna/Czarna/1", Form: "sprzedaż",
			AreaHa: models.Ptr(0.1), AreaM2: models.Ptr(1000.0),
			StartingPrice: decimal.NewNullDecimal(decimal.NewFromInt(15000)),
			DateTime:      &date, HasTime: true, NextAuction: models.Ptr(2),
		},
		{ID: 2, Category: "lokal", Location: "Podkarpackie/Rzeszowski"},
	}

	data, err := NewExporter(nil).RecordsXLSX(records, stats.Aggregate(records))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RecordsSheet, StatsSheet}, f.GetSheetList())

	rows, err := f.GetRows(RecordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, recordHeaders, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "2025-04-15 10:00", rows[1][1])
	assert.Equal(t, "Podkarpackie/Łańcucki/Czarna/Czarna/1", rows[1][3])
	assert.Equal(t, "15000", rows[1][13])
	assert.Equal(t, "2", rows[1][17])
	assert.Equal(t, "lokal", rows[2][6])

	count, err := f.GetCellValue(StatsSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2", count)

	statRows, err := f.GetRows(StatsSheet)
	require.NoError(t, err)
	require.Len(t, statRows, 10)
	assert.ElementsMatch(t, [][]string{
		{"Powiat łańcucki", "1"},
		{"Powiat rzeszowski", "1"},
	}, statRows[8:])
}

func TestRecordsXLSXEmpty(t *testing.T) {
	data, err := NewExporter(nil).RecordsXLSX(nil, stats.Aggregate(nil))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(RecordsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
