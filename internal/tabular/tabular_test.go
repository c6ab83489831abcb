package tabular

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"explorekit/internal/dataset"
	"explorekit/internal/models"
)

func TestRead_CSV(t *testing.T) {
	input := "\ufeffcity,price,,price\nSingapore,10,x,1\nTokyo,20\n,,,\n"

	table, err := Read(strings.NewReader(input), "cities.CSV", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantHeader := []string{"city", "price", "Unnamed: 2", "price.1"}
	if !reflect.DeepEqual(table.Header, wantHeader) {
		t.Errorf("header = %q, want %q", table.Header, wantHeader)
	}
	if len(table.Records) != 2 {
		t.Fatalf("expected trailing blank row dropped, got %d records", len(table.Records))
	}

	ds, err := table.Dataset()
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	price, _ := ds.Column("price")
	if price.Kind != dataset.Numeric {
		t.Errorf("expected Numeric price, got %v", price.Kind)
	}
	extra, _ := ds.Column("price.1")
	if extra.Cells[1].Valid {
		t.Errorf("short record should leave a missing cell")
	}
}

func TestRead_Unsupported(t *testing.T) {
	if _, err := Read(strings.NewReader("x"), "notes.pdf", ""); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Read(strings.NewReader(""), "empty.csv", ""); err == nil {
		t.Error("expected error for empty file")
	}
}

func workbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}
	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestRead_Workbook(t *testing.T) {
	buf := workbook(t, "Sheet1", [][]interface{}{
		{"name", "rating"},
		{"Hawker", 4.5},
		{"Cafe", 3},
	})

	table, err := Read(buf, "places.xlsx", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(table.Header, []string{"name", "rating"}) || len(table.Records) != 2 {
		t.Fatalf("unexpected table %+v", table)
	}
	if table.Records[0][1] != "4.5" {
		t.Errorf("unexpected cell %q", table.Records[0][1])
	}
}

func TestRead_WorkbookNamedSheet(t *testing.T) {
	buf := workbook(t, "Data", [][]interface{}{{"a"}, {"1"}})

	if _, err := Read(bytes.NewReader(buf.Bytes()), "book.xlsx", "Missing"); err == nil {
		t.Error("expected error for missing sheet")
	}
	table, err := Read(bytes.NewReader(buf.Bytes()), "book.xlsx", "Data")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Records) != 1 || table.Records[0][0] != "1" {
		t.Errorf("unexpected records %v", table.Records)
	}
}

func TestWriteDataset_RoundTrip(t *testing.T) {
	ds, _ := dataset.New([]string{"city", "price"}, [][]string{{"Singapore", "10"}, {"Tokyo", "abc"}})
	ds.SetKind("price", dataset.Numeric)

	var buf bytes.Buffer
	if err := WriteDataset(&buf, ds, "Data"); err != nil {
		t.Fatalf("write: %v", err)
	}

	table, err := Read(&buf, "out.xlsx", "Data")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !reflect.DeepEqual(table.Header, []string{"city", "price"}) {
		t.Errorf("unexpected header %v", table.Header)
	}
	if table.Records[0][1] != "10" {
		t.Errorf("unexpected price %q", table.Records[0][1])
	}
	if len(table.Records[1]) > 1 && table.Records[1][1] != "" {
		t.Errorf("missing price should be written as an empty cell, got %q", table.Records[1][1])
	}
}

func TestWriteRanking(t *testing.T) {
	ranked := []models.RankedPOI{
		{
			PointOfInterest: models.PointOfInterest{
				ID:   "node/1",
				Loc:  models.Coordinate{Lat: 1.3, Lon: 103.8},
				Tags: map[string]string{"name": "Laksa House", "cuisine": "malaysian"},
			},
			DistanceKm: 0.42,
		},
		{PointOfInterest: models.PointOfInterest{ID: "node/2"}, DistanceKm: 1.5},
	}

	var buf bytes.Buffer
	if err := WriteRanking(&buf, ranked, "Places"); err != nil {
		t.Fatalf("write: %v", err)
	}
	table, err := Read(&buf, "places.xlsx", "Places")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(table.Records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Records))
	}
	if table.Records[0][0] != "Laksa House" || table.Records[0][2] != "malaysian" {
		t.Errorf("unexpected first row %v", table.Records[0])
	}
	if table.Records[1][0] != "Unknown" {
		t.Errorf("unnamed place should export as Unknown, got %q", table.Records[1][0])
	}
}
