package explorer

import (
	"errors"
	"testing"
	"time"

	"explorekit/internal/charts"
	"explorekit/internal/dataset"
	"explorekit/internal/filter"
)

func loaded(t *testing.T) *State {
	t.Helper()
	ds, err := dataset.New(
		[]string{"date", "city", "price"},
		[][]string{
			{"2024-01-01", "Singapore", "10"},
			{"2024-01-15", "Tokyo", "20"},
			{"2024-02-01", "Singapore", "abc"},
			{"2024-03-01", "Osaka", "35"},
		},
	)
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	s := NewState()
	s.Load("sales.csv", ds)
	return s
}

func TestState_NoDataset(t *testing.T) {
	s := NewState()
	if _, err := s.View(); !errors.Is(err, ErrNoDataset) {
		t.Errorf("expected ErrNoDataset, got %v", err)
	}
	if err := s.SetKind("x", dataset.Text); !errors.Is(err, ErrNoDataset) {
		t.Errorf("expected ErrNoDataset, got %v", err)
	}
	v := s.AddVisualization()
	if _, err := s.Render(v.ID); !errors.Is(err, ErrNoDataset) {
		t.Errorf("expected ErrNoDataset, got %v", err)
	}
}

func TestState_DefaultDateRange(t *testing.T) {
	s := loaded(t)
	if s.DateRange == nil || s.DateRange.Column != "date" {
		t.Fatalf("expected default range on the date column, got %+v", s.DateRange)
	}
	view, _ := s.View()
	if view.Len() != 4 {
		t.Errorf("default range should keep every row, got %d", view.Len())
	}

	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	if err := s.SetDateRange("date", start, time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view, _ = s.View()
	if view.Len() != 3 {
		t.Errorf("expected 3 rows from Jan 10, got %d", view.Len())
	}

	if err := s.SetDateRange("date", start, start.AddDate(0, 0, -1)); err == nil {
		t.Error("expected error for inverted range")
	}
	if err := s.SetDateRange("city", time.Time{}, time.Time{}); err == nil {
		t.Error("expected error for non-date column")
	}

	// Turning the date column into text drops the slice.
	if err := s.SetKind("date", dataset.Text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DateRange != nil {
		t.Errorf("expected no date range, got %+v", s.DateRange)
	}
	view, _ = s.View()
	if view.Len() != 4 {
		t.Errorf("expected unsliced view, got %d rows", view.Len())
	}
}

func TestState_Visualizations(t *testing.T) {
	s := loaded(t)
	if err := s.SetKind("price", dataset.Numeric); err != nil {
		t.Fatalf("set kind: %v", err)
	}

	first := s.AddVisualization()
	second := s.AddVisualization()
	if first.ID == second.ID || second.Number != 2 {
		t.Fatalf("visualizations should get distinct ids and numbers")
	}

	_, err := s.UpdateVisualization(second.ID,
		filter.Spec{Column: "city", Op: filter.Contains, Value: "sing"},
		charts.Config{Type: charts.Bar, X: "city", Y: "price"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	chart, err := s.Render(second.ID)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if chart.Rows != 2 || len(chart.Bars) != 1 || chart.Bars[0].Y != 10 {
		t.Errorf("unexpected bar chart %+v", chart)
	}

	// The first panel is unaffected by the second one's filter.
	hist, err := s.Render(first.ID)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if hist.Rows != 4 {
		t.Errorf("expected unfiltered histogram, got %d rows", hist.Rows)
	}

	if err := s.RemoveVisualization(first.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if list := s.Visualizations(); len(list) != 1 || list[0].ID != second.ID {
		t.Errorf("unexpected visualizations %+v", list)
	}
	if _, err := s.Render(first.ID); !errors.Is(err, ErrUnknownVisualization) {
		t.Errorf("expected ErrUnknownVisualization, got %v", err)
	}
}

func TestState_Summary(t *testing.T) {
	s := loaded(t)
	s.SetKind("price", dataset.Numeric)

	sum, err := s.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Rows != 4 || sum.Source != "sales.csv" || len(sum.Columns) != 3 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	price := sum.Columns[2]
	if price.Inferred != dataset.Text || price.Kind != dataset.Numeric || price.Missing != 1 {
		t.Errorf("unexpected price info %+v", price)
	}
}
