// Package charts derives the plain series a renderer needs for each chart
// type from a filtered dataset view.
package charts

import (
	"errors"
	"fmt"

	"explorekit/internal/dataset"
)

// Type names a chart kind.
type Type string

const (
	Histogram   Type = "Histogram"
	Bar         Type = "Bar Chart"
	Scatter     Type = "Scatter Plot"
	Box         Type = "Box Plot"
	Correlation Type = "Correlation Heatmap"
	Pair        Type = "Pair Plot"
	TimeSeries  Type = "Time Series Plot"
	WordCloud   Type = "Word Cloud"
)

// Types lists every chart type in menu order.
func Types() []Type {
	return []Type{Histogram, Bar, Scatter, Box, Correlation, Pair, TimeSeries, WordCloud}
}

const (
	DefaultBins     = 20
	DefaultFill     = "#3366cc"
	maxPairColumns  = 4
	maxCloudEntries = 100
)

var (
	ErrUnknownType     = errors.New("unknown chart type")
	ErrNoNumeric       = errors.New("no numeric columns available")
	ErrNeedTwoNumeric  = errors.New("at least two numeric columns are required")
	ErrNeedDateNumeric = errors.New("both date and numeric columns are required")
	ErrNoText          = errors.New("no text columns available")
	ErrPairSelection   = errors.New("select at least two columns for the pair plot")
	ErrColumn          = errors.New("column not usable for this chart")
)

// Config is the user's choice of chart and columns. Empty column names fall
// back to the first suitable column.
type Config struct {
	Type    Type     `json:"type"`
	X       string   `json:"x,omitempty"`
	Y       string   `json:"y,omitempty"`
	Color   string   `json:"color,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Bins    int      `json:"bins,omitempty"`
	Fill    string   `json:"fill,omitempty"`
}

// Chart is the derived data for one visualization. Only the fields for
// Type are set.
type Chart struct {
	Type   Type          `json:"type"`
	X      string        `json:"x,omitempty"`
	Y      string        `json:"y,omitempty"`
	Color  string        `json:"color,omitempty"`
	Fill   string        `json:"fill,omitempty"`
	Rows   int           `json:"rows"`
	Bins   []Bin         `json:"bins,omitempty"`
	Bars   []BarValue    `json:"bars,omitempty"`
	Points []Point       `json:"points,omitempty"`
	Boxes  []BoxStats    `json:"boxes,omitempty"`
	Matrix *Matrix       `json:"matrix,omitempty"`
	Panels []Panel       `json:"panels,omitempty"`
	Series []SeriesPoint `json:"series,omitempty"`
	Words  []WordCount   `json:"words,omitempty"`
}

// Build derives cfg's chart from ds.
func Build(ds *dataset.Dataset, cfg Config) (*Chart, error) {
	switch cfg.Type {
	case Histogram:
		return buildHistogram(ds, cfg)
	case Bar:
		return buildBar(ds, cfg)
	case Scatter:
		return buildScatter(ds, cfg)
	case Box:
		return buildBox(ds, cfg)
	case Correlation:
		return buildCorrelation(ds)
	case Pair:
		return buildPair(ds, cfg)
	case TimeSeries:
		return buildTimeSeries(ds, cfg)
	case WordCloud:
		return buildWordCloud(ds, cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, cfg.Type)
}

func numericNames(ds *dataset.Dataset) []string {
	return ds.NamesOfKind(dataset.Numeric, dataset.Integer)
}

// pick resolves name against the allowed columns, defaulting to the first
// allowed column when name is empty.
func pick(name string, allowed []string) (string, error) {
	if name == "" {
		return allowed[0], nil
	}
	for _, a := range allowed {
		if a == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrColumn, name)
}

// optional resolves an optional grouping column; empty means none.
func optional(ds *dataset.Dataset, name string) (dataset.Column, bool, error) {
	if name == "" {
		return dataset.Column{}, false, nil
	}
	col, ok := ds.Column(name)
	if !ok {
		return dataset.Column{}, false, fmt.Errorf("%w: %q", ErrColumn, name)
	}
	return col, true, nil
}

func mustColumn(ds *dataset.Dataset, name string) dataset.Column {
	col, _ := ds.Column(name)
	return col
}
