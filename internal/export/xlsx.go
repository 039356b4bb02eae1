// Package export renders auction records as spreadsheets.
package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/notCienki/geoportal-app/internal/models"
)

const (
	RecordsSheet = "Przetargi"
	StatsSheet   = "Statystyki"
)

var recordHeaders = []string{
	"Lp.",
	"Data i godzina",
	"Miejsce",
	"Położenie",
	"Forma",
	"Rodzaj przetargu",
	"Typ",
	"Charakter",
	"Atrybuty",
	"Obniżka",
	"Powierzchnia [ha]",
	"Powierzchnia [m2]",
	"Pow. UR [ha]",
	"Cena wywoławcza",
	"Wartość szacunkowa",
	"Wadium",
	"Postąpienie",
	"Kolejny przetarg",
	"Uwagi",
}

// Exporter builds XLSX workbooks
type Exporter struct {
	logger *logrus.Logger
}

// NewExporter creates an exporter
func NewExporter(logger *logrus.Logger) *Exporter {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Exporter{logger: logger}
}

// RecordsXLSX returns a workbook with one row per record and a sheet with
// the statistics of the set
func (e *Exporter) RecordsXLSX(records []models.AuctionRecord, st models.Statistics) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	// the default sheet is renamed rather than left empty
	if err := f.SetSheetName("Sheet1", RecordsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(StatsSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	index, _ := f.GetSheetIndex(RecordsSheet)
	f.SetActiveSheet(index)

	for i, h := range recordHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(RecordsSheet, cell, h)
	}

	for i := range records {
		writeRecord(f, i+2, &records[i])
	}

	_ = f.SetColWidth(RecordsSheet, "B", "B", 18) // date
	_ = f.SetColWidth(RecordsSheet, "C", "D", 40) // place, location
	_ = f.SetColWidth(RecordsSheet, "E", "J", 20)
	_ = f.SetColWidth(RecordsSheet, "K", "Q", 16) // numbers
	_ = f.SetColWidth(RecordsSheet, "S", "S", 60) // remarks
	_ = f.SetPanes(RecordsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	writeStatistics(f, st)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"rows":       len(records),
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Info("Exported records")
	return buf.Bytes(), nil
}

func writeRecord(f *excelize.File, row int, r *models.AuctionRecord) {
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(RecordsSheet, cell, v)
	}

	write(1, r.ID)
	if r.DateTime != nil {
		layout := "2006-01-02"
		if r.HasTime {
			layout = "2006-01-02 15:04"
		}
		write(2, r.DateTime.Format(layout))
	}
	write(3, r.Place)
	write(4, r.Location)
	write(5, r.Form)
	write(6, r.SaleForm)
	write(7, r.Category)
	write(8, r.Character)
	write(9, r.Attributes)
	write(10, r.Discount)
	writeFloat(write, 11, r.AreaHa)
	writeFloat(write, 12, r.AreaM2)
	writeFloat(write, 13, r.AgriculturalAreaHa)
	writeAmount(write, 14, r.StartingPrice)
	writeAmount(write, 15, r.EstimatedValue)
	writeAmount(write, 16, r.Deposit)
	writeAmount(write, 17, r.Increment)
	if r.NextAuction != nil {
		write(18, *r.NextAuction)
	}
	write(19, r.Remarks)
}

func writeFloat(write func(int, any), col int, v *float64) {
	if v != nil {
		write(col, *v)
	}
}

func writeAmount(write func(int, any), col int, v decimal.NullDecimal) {
	if v.Valid {
		write(col, v.Decimal.InexactFloat64())
	}
}

func writeStatistics(f *excelize.File, st models.Statistics) {
	rows := [][]any{
		{"Liczba ofert", st.Count},
		{"Oferty z ceną", st.PricedCount},
		{"Oferty z powierzchnią", st.AreaCount},
		{"Średnia powierzchnia [ha]", st.AvgArea},
		{"Średnia cena", st.AvgPrice},
		{"Cena minimalna", st.MinPrice},
		{"Cena maksymalna", st.MaxPrice},
		{"Średnia cena za ha", st.AvgPricePerHectare},
	}

	counties := make([]string, 0, len(st.ByCounty))
	for county := range st.ByCounty {
		counties = append(counties, county)
	}
	sort.Strings(counties)
	for _, county := range counties {
		rows = append(rows, []any{"Powiat " + county, st.ByCounty[county]})
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		_ = f.SetSheetRow(StatsSheet, cell, &r)
	}
	_ = f.SetColWidth(StatsSheet, "A", "A", 32)
}
