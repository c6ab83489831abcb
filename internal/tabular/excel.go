package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"explorekit/internal/dataset"
	"explorekit/internal/models"
)

// readWorkbook reads the named sheet, or the first one when sheet is empty.
// The first row is the header.
func readWorkbook(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return newTable(rows)
}

// WriteDataset writes every row of ds to a single-sheet workbook.
func WriteDataset(w io.Writer, ds *dataset.Dataset, sheetName string) error {
	cols := ds.Columns()
	headers := make([]interface{}, len(cols))
	for i, c := range cols {
		headers[i] = c.Name
	}

	return writeSheet(w, sheetName, headers, ds.Len(), func(r int) []interface{} {
		row := make([]interface{}, len(cols))
		for i, c := range cols {
			if v := c.Value(r); v != nil {
				row[i] = v
			}
		}
		return row
	})
}

// WriteRanking writes a ranked restaurant list with its display fields.
func WriteRanking(w io.Writer, ranked []models.RankedPOI, sheetName string) error {
	headers := []interface{}{
		"Name", "Distance (km)", "Cuisine", "Street", "House Number",
		"Phone", "Website", "Opening Hours", "Lat", "Lon",
	}

	return writeSheet(w, sheetName, headers, len(ranked), func(i int) []interface{} {
		p := ranked[i]
		return []interface{}{
			p.Name(), p.DistanceKm, p.Tag("cuisine", ""), p.Tag("addr:street", ""),
			p.Tag("addr:housenumber", ""), p.Tag("phone", ""), p.Tag("website", ""),
			p.Tag("opening_hours", ""), p.Loc.Lat, p.Loc.Lon,
		}
	})
}

func writeSheet(w io.Writer, sheetName string, headers []interface{}, n int, row func(i int) []interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	// Use Stream Writer for performance
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row(i)); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	// Delete default sheet if exists
	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	_, err = f.WriteTo(w)
	return err
}
