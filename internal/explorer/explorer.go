// Package explorer keeps one user's dataset exploration: the uploaded
// dataset, its date slice, and any number of independently configured
// visualizations. Every read re-runs the pure pipeline from the base dataset.
package explorer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"explorekit/internal/charts"
	"explorekit/internal/dataset"
	"explorekit/internal/filter"
)

var (
	ErrNoDataset            = errors.New("no dataset loaded")
	ErrUnknownVisualization = errors.New("unknown visualization")
)

// Visualization is one chart panel: a row filter and a chart choice.
type Visualization struct {
	ID     string        `json:"id"`
	Number int           `json:"number"`
	Filter filter.Spec   `json:"filter"`
	Chart  charts.Config `json:"chart"`
}

type State struct {
	Source    string
	Base      *dataset.Dataset
	DateRange *filter.DateRange

	visualizations map[string]*Visualization
	order          []string
	created        int
}

func NewState() *State {
	return &State{visualizations: make(map[string]*Visualization)}
}

// Load replaces the dataset. The date range resets to the full span of the
// first date column; visualizations are kept since they are keyed by id,
// not by column.
func (s *State) Load(source string, ds *dataset.Dataset) {
	s.Source = source
	s.Base = ds
	s.resetDateRange()
}

func (s *State) resetDateRange() {
	s.DateRange = nil
	if r, ok := filter.DefaultRange(s.Base); ok {
		s.DateRange = &r
	}
}

// SetKind overrides the kind of a column. If that removes or adds the
// date column in use, the date range is recomputed.
func (s *State) SetKind(column string, kind dataset.Kind) error {
	if s.Base == nil {
		return ErrNoDataset
	}
	if err := s.Base.SetKind(column, kind); err != nil {
		return err
	}
	if s.DateRange == nil || s.DateRange.Column == column {
		s.resetDateRange()
	}
	return nil
}

// SetDateRange chooses the date column and range. A zero start or end
// defaults to that column's bounds.
func (s *State) SetDateRange(column string, start, end time.Time) error {
	if s.Base == nil {
		return ErrNoDataset
	}
	lo, hi, ok := filter.DateBounds(s.Base, column)
	if !ok {
		return fmt.Errorf("column %q has no dates", column)
	}
	if start.IsZero() {
		start = lo
	}
	if end.IsZero() {
		end = hi
	}
	if end.Before(start) {
		return fmt.Errorf("date range end %s is before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	s.DateRange = &filter.DateRange{Column: column, Start: start, End: end}
	return nil
}

// View is the base dataset after the date slice.
func (s *State) View() (*dataset.Dataset, error) {
	if s.Base == nil {
		return nil, ErrNoDataset
	}
	if s.DateRange == nil {
		return s.Base, nil
	}
	return filter.SliceDates(s.Base, *s.DateRange), nil
}

// AddVisualization creates a new panel showing a histogram by default.
func (s *State) AddVisualization() *Visualization {
	s.created++
	v := &Visualization{
		ID:     uuid.New().String(),
		Number: s.created,
		Filter: filter.Spec{Op: filter.Equals},
		Chart:  charts.Config{Type: charts.Histogram},
	}
	s.visualizations[v.ID] = v
	s.order = append(s.order, v.ID)
	return v
}

// Visualizations returns the panels in creation order.
func (s *State) Visualizations() []Visualization {
	out := make([]Visualization, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.visualizations[id])
	}
	return out
}

func (s *State) Visualization(id string) (Visualization, error) {
	v, ok := s.visualizations[id]
	if !ok {
		return Visualization{}, fmt.Errorf("%w: %s", ErrUnknownVisualization, id)
	}
	return *v, nil
}

// UpdateVisualization replaces the filter and chart of a panel.
func (s *State) UpdateVisualization(id string, spec filter.Spec, chart charts.Config) (Visualization, error) {
	v, ok := s.visualizations[id]
	if !ok {
		return Visualization{}, fmt.Errorf("%w: %s", ErrUnknownVisualization, id)
	}
	v.Filter = spec
	v.Chart = chart
	return *v, nil
}

func (s *State) RemoveVisualization(id string) error {
	if _, ok := s.visualizations[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVisualization, id)
	}
	delete(s.visualizations, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Render filters the current view with the panel filter and builds its chart.
func (s *State) Render(id string) (*charts.Chart, error) {
	v, err := s.Visualization(id)
	if err != nil {
		return nil, err
	}
	view, err := s.View()
	if err != nil {
		return nil, err
	}
	return charts.Build(filter.Apply(view, v.Filter), v.Chart)
}

// ColumnInfo describes one column for the type selection screen.
type ColumnInfo struct {
	Name     string       `json:"name"`
	Inferred dataset.Kind `json:"inferred"`
	Kind     dataset.Kind `json:"kind"`
	Missing  int          `json:"missing"`
}

type Summary struct {
	Source    string            `json:"source"`
	Rows      int               `json:"rows"`
	ViewRows  int               `json:"view_rows"`
	Columns   []ColumnInfo      `json:"columns"`
	DateRange *filter.DateRange `json:"date_range,omitempty"`
}

func (s *State) Summary() (Summary, error) {
	view, err := s.View()
	if err != nil {
		return Summary{}, err
	}
	cols := s.Base.Columns()
	infos := make([]ColumnInfo, len(cols))
	for i, c := range cols {
		missing := 0
		for _, cell := range c.Cells {
			if !cell.Valid {
				missing++
			}
		}
		infos[i] = ColumnInfo{Name: c.Name, Inferred: c.Inferred, Kind: c.Kind, Missing: missing}
	}
	return Summary{
		Source:    s.Source,
		Rows:      s.Base.Len(),
		ViewRows:  view.Len(),
		Columns:   infos,
		DateRange: s.DateRange,
	}, nil
}
