package charts

import (
	"math"
	"sort"

	"explorekit/internal/dataset"
)

type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

type BarValue struct {
	X     string  `json:"x"`
	Color string  `json:"color,omitempty"`
	Y     float64 `json:"y"`
}

type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

type BoxStats struct {
	Group  string  `json:"group,omitempty"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Matrix is a square correlation matrix. Nil entries are undefined
// correlations (constant or too-short columns).
type Matrix struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

type Panel struct {
	X      string  `json:"x"`
	Y      string  `json:"y"`
	Points []Point `json:"points"`
}

func buildHistogram(ds *dataset.Dataset, cfg Config) (*Chart, error) {
	numeric := numericNames(ds)
	if len(numeric) == 0 {
		return nil, ErrNoNumeric
	}
	name, err := pick(cfg.X, numeric)
	if err != nil {
		return nil, err
	}

	bins := cfg.Bins
	if bins <= 0 {
		bins = DefaultBins
	}
	fill := cfg.Fill
	if fill == "" {
		fill = DefaultFill
	}
	return &Chart{
		Type: Histogram,
		X:    name,
		Fill: fill,
		Rows: ds.Len(),
		Bins: histogram(mustColumn(ds, name).Numbers(), bins),
	}, nil
}

// histogram splits values into n equal-width bins; the last bin is closed.
func histogram(values []float64, n int) []Bin {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return []Bin{{Low: lo, High: hi, Count: len(values)}}
	}

	// Scale before subtracting so the range of extreme values stays finite.
	nf := float64(n)
	width := hi/nf - lo/nf
	out := make([]Bin, n)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[n-1].High = hi
	for _, v := range values {
		i := int((v/nf - lo/nf) / width * nf)
		switch {
		case i < 0:
			i = 0
		case i >= n:
			i = n - 1
		}
		out[i].Count++
	}
	return out
}

func buildBar(ds *dataset.Dataset, cfg Config) (*Chart, error) {
	numeric := numericNames(ds)
	if len(numeric) == 0 {
		return nil, ErrNoNumeric
	}
	xName, err := pick(cfg.X, ds.Names())
	if err != nil {
		return nil, err
	}
	yName, err := pick(cfg.Y, numeric)
	if err != nil {
		return nil, err
	}
	color, hasColor, err := optional(ds, cfg.Color)
	if err != nil {
		return nil, err
	}

	x, y := mustColumn(ds, xName), mustColumn(ds, yName)
	type key struct{ x, color string }
	sums := make(map[key]int)
	var bars []BarValue
	for r := 0; r < ds.Len(); r++ {
		if !y.Cells[r].Valid {
			continue
		}
		k := key{x: x.Text(r)}
		if hasColor {
			k.color = color.Text(r)
		}
		i, seen := sums[k]
		if !seen {
			i = len(bars)
			sums[k] = i
			bars = append(bars, BarValue{X: k.x, Color: k.color})
		}
		bars[i].Y += y.Cells[r].Num
	}
	return &Chart{Type: Bar, X: xName, Y: yName, Color: cfg.Color, Rows: ds.Len(), Bars: bars}, nil
}

func buildScatter(ds *dataset.Dataset, cfg Config) (*Chart, error) {
	numeric := numericNames(ds)
	if len(numeric) < 2 {
		return nil, ErrNeedTwoNumeric
	}
	xName, err := pick(cfg.X, numeric)
	if err != nil {
		return nil, err
	}
	yName, err := pick(cfg.Y, numeric)
	if err != nil {
		return nil, err
	}
	color, hasColor, err := optional(ds, cfg.Color)
	if err != nil {
		return nil, err
	}

	var label func(r int) string
	if hasColor {
		label = color.Text
	}
	return &Chart{
		Type:   Scatter,
		X:      xName,
		Y:      yName,
		Color:  cfg.Color,
		Rows:   ds.Len(),
		Points: points(mustColumn(ds, xName), mustColumn(ds, yName), label),
	}, nil
}

func points(x, y dataset.Column, label func(r int) string) []Point {
	var out []Point
	for r := range x.Cells {
		if !x.Cells[r].Valid || !y.Cells[r].Valid {
			continue
		}
		p := Point{X: x.Cells[r].Num, Y: y.Cells[r].Num}
		if label != nil {
			p.Label = label(r)
		}
		out = append(out, p)
	}
	return out
}

func buildBox(ds *dataset.Dataset, cfg Config) (*Chart, error) {
	numeric := numericNames(ds)
	if len(numeric) == 0 {
		return nil, ErrNoNumeric
	}
	yName, err := pick(cfg.Y, numeric)
	if err != nil {
		return nil, err
	}
	group, hasGroup, err := optional(ds, cfg.X)
	if err != nil {
		return nil, err
	}

	y := mustColumn(ds, yName)
	var order []string
	groups := make(map[string][]float64)
	for r := 0; r < ds.Len(); r++ {
		if !y.Cells[r].Valid {
			continue
		}
		g := ""
		if hasGroup {
			g = group.Text(r)
		}
		if _, ok := groups[g]; !ok {
			order = append(order, g)
		}
		groups[g] = append(groups[g], y.Cells[r].Num)
	}

	boxes := make([]BoxStats, 0, len(order))
	for _, g := range order {
		boxes = append(boxes, summarize(g, groups[g]))
	}
	return &Chart{Type: Box, X: cfg.X, Y: yName, Rows: ds.Len(), Boxes: boxes}, nil
}

func summarize(group string, values []float64) BoxStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return BoxStats{
		Group:  group,
		Count:  len(sorted),
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	if frac == 0 {
		return sorted[lo]
	}
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func buildCorrelation(ds *dataset.Dataset) (*Chart, error) {
	numeric := numericNames(ds)
	if len(numeric) == 0 {
		return nil, ErrNoNumeric
	}

	cols := make([]dataset.Column, len(numeric))
	for i, name := range numeric {
		cols[i] = mustColumn(ds, name)
	}
	m := &Matrix{Columns: numeric, Values: make([][]*float64, len(cols))}
	for i := range cols {
		m.Values[i] = make([]*float64, len(cols))
		for j := range cols {
			if r, ok := pearson(cols[i], cols[j]); ok {
				m.Values[i][j] = &r
			}
		}
	}
	return &Chart{Type: Correlation, Rows: ds.Len(), Matrix: m}, nil
}

// pearson correlates the rows where both columns are present.
func pearson(a, b dataset.Column) (float64, bool) {
	var n, sumA, sumB float64
	for r := range a.Cells {
		if a.Cells[r].Valid && b.Cells[r].Valid {
			n++
			sumA += a.Cells[r].Num
			sumB += b.Cells[r].Num
		}
	}
	if n < 2 {
		return 0, false
	}
	meanA, meanB := sumA/n, sumB/n

	var cov, varA, varB float64
	for r := range a.Cells {
		if a.Cells[r].Valid && b.Cells[r].Valid {
			da := a.Cells[r].Num - meanA
			db := b.Cells[r].Num - meanB
			cov += da * db
			varA += da * da
			varB += db * db
		}
	}
	if varA == 0 || varB == 0 {
		return 0, false
	}
	r := cov / math.Sqrt(varA*varB)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

func buildPair(ds *dataset.Dataset, cfg Config) (*Chart, error) {
	numeric := numericNames(ds)
	if len(numeric) < 2 {
		return nil, ErrNeedTwoNumeric
	}

	selected := cfg.Columns
	if len(selected) == 0 {
		selected = numeric[:min(maxPairColumns, len(numeric))]
	}
	for _, name := range selected {
		if _, err := pick(name, numeric); err != nil {
			return nil, err
		}
	}
	if len(selected) < 2 {
		return nil, ErrPairSelection
	}

	var panels []Panel
	for i := 0; i < len(selected); i++ {
		for j := i + 1; j < len(selected); j++ {
			panels = append(panels, Panel{
				X:      selected[i],
				Y:      selected[j],
				Points: points(mustColumn(ds, selected[i]), mustColumn(ds, selected[j]), nil),
			})
		}
	}
	return &Chart{Type: Pair, Rows: ds.Len(), Panels: panels}, nil
}
