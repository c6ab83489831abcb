package dataset

import (
	"math"
	"time"
)

// Cell is one coerced value. Which field is meaningful depends on the kind of
// the column holding it; a cell that is not Valid is missing.
type Cell struct {
	Valid bool
	Num   float64
	Time  time.Time
	Str   string
}

// Column is a named sequence of raw values together with their coerced cells.
// Raw is never modified so the column can be re-coerced to any kind.
type Column struct {
	Name     string
	Inferred Kind
	Kind     Kind
	Raw      []string
	Cells    []Cell
}

// NewColumn infers the kind of raw and coerces to it.
func NewColumn(name string, raw []string) Column {
	kind := Infer(raw)
	col := Column{Name: name, Inferred: kind, Raw: raw}
	col.Kind = kind
	col.Cells = coerceCells(raw, kind)
	return col
}

// Len is the row count.
func (c Column) Len() int { return len(c.Raw) }

// Infer guesses the kind of a raw column: Numeric when every present value
// is a number, Date when every present value is a date, Text otherwise.
func Infer(raw []string) Kind {
	numeric, date := true, true
	for _, v := range raw {
		if IsMissing(v) {
			continue
		}
		if numeric {
			if _, ok := ParseNumber(v); !ok {
				numeric = false
			}
		}
		if date {
			if _, ok := ParseDate(v); !ok {
				date = false
			}
		}
		if !numeric && !date {
			return Text
		}
	}
	if numeric {
		return Numeric
	}
	return Date
}

// Coerce returns the column converted to kind. Coercing to the kind the
// column already has returns it unchanged.
func Coerce(c Column, kind Kind) Column {
	if c.Kind == kind && len(c.Cells) == len(c.Raw) {
		return c
	}
	c.Kind = kind
	c.Cells = coerceCells(c.Raw, kind)
	return c
}

func coerceCells(raw []string, kind Kind) []Cell {
	cells := make([]Cell, len(raw))
	for i, v := range raw {
		cells[i] = coerceValue(v, kind)
	}
	return cells
}

func coerceValue(raw string, kind Kind) Cell {
	switch kind {
	case Numeric:
		if v, ok := ParseNumber(raw); ok {
			return Cell{Valid: true, Num: v}
		}
	case Integer:
		if v, ok := ParseNumber(raw); ok {
			return Cell{Valid: true, Num: math.Trunc(v)}
		}
	case Date:
		if t, ok := ParseDate(raw); ok {
			return Cell{Valid: true, Time: t}
		}
	default:
		if !IsMissing(raw) {
			return Cell{Valid: true, Str: raw}
		}
	}
	return Cell{}
}

// Text renders cell i the way filters and exports see it. Missing cells
// render as the empty string.
func (c Column) Text(i int) string {
	cell := c.Cells[i]
	if !cell.Valid {
		return ""
	}
	switch c.Kind {
	case Numeric, Integer:
		return FormatNumber(cell.Num)
	case Date:
		return FormatDate(cell.Time)
	}
	return cell.Str
}

// Value returns cell i as a plain Go value for serialisation: float64,
// time.Time, string, or nil when missing.
func (c Column) Value(i int) any {
	cell := c.Cells[i]
	if !cell.Valid {
		return nil
	}
	switch c.Kind {
	case Numeric, Integer:
		return cell.Num
	case Date:
		return cell.Time
	}
	return cell.Str
}

// Numbers returns the present numeric values of the column in row order.
func (c Column) Numbers() []float64 {
	if !c.Kind.IsNumber() {
		return nil
	}
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Valid {
			out = append(out, cell.Num)
		}
	}
	return out
}

func (c Column) pick(rows []int) Column {
	out := Column{
		Name:     c.Name,
		Inferred: c.Inferred,
		Kind:     c.Kind,
		Raw:      make([]string, len(rows)),
		Cells:    make([]Cell, len(rows)),
	}
	for i, r := range rows {
		out.Raw[i] = c.Raw[r]
		out.Cells[i] = c.Cells[r]
	}
	return out
}
