// Package filter narrows a dataset view: predicate filters on one column and
// calendar date ranges. Filters never fail; a filter that does not make sense
// for a column leaves the rows untouched.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"explorekit/internal/dataset"
)

// Operator is a row predicate kind.
type Operator string

const (
	Equals      Operator = "equals"
	GreaterThan Operator = "greater than"
	LessThan    Operator = "less than"
	Contains    Operator = "contains"
)

// Operators lists the supported operators in display order.
func Operators() []Operator {
	return []Operator{Equals, GreaterThan, LessThan, Contains}
}

// Spec selects rows whose Column value satisfies Op against Value.
type Spec struct {
	Column string   `json:"column"`
	Op     Operator `json:"op"`
	Value  string   `json:"value"`
}

// Active reports whether the spec filters anything at all.
func (s Spec) Active() bool {
	return s.Value != ""
}

// Apply returns the rows of ds satisfying spec as a new view. An empty value,
// an unknown column or operator, or a value that cannot be compared with the
// column's kind returns ds itself.
func Apply(ds *dataset.Dataset, spec Spec) *dataset.Dataset {
	if !spec.Active() {
		return ds
	}
	col, ok := ds.Column(spec.Column)
	if !ok {
		return ds
	}

	keep := predicate(col, spec)
	if keep == nil {
		return ds
	}
	return ds.Where(func(r int) bool {
		return col.Cells[r].Valid && keep(r)
	})
}

func predicate(col dataset.Column, spec Spec) func(r int) bool {
	switch spec.Op {
	case Equals:
		if col.Kind.IsNumber() {
			v, ok := dataset.ParseNumber(spec.Value)
			if !ok {
				return nil
			}
			return func(r int) bool { return col.Cells[r].Num == v }
		}
		return func(r int) bool { return col.Text(r) == spec.Value }

	case GreaterThan, LessThan:
		less := spec.Op == LessThan
		switch {
		case col.Kind.IsNumber():
			v, ok := dataset.ParseNumber(spec.Value)
			if !ok {
				return nil
			}
			return func(r int) bool {
				if less {
					return col.Cells[r].Num < v
				}
				return col.Cells[r].Num > v
			}
		case col.Kind == dataset.Date:
			v, ok := dataset.ParseDate(spec.Value)
			if !ok {
				return nil
			}
			return func(r int) bool {
				if less {
					return col.Cells[r].Time.Before(v)
				}
				return col.Cells[r].Time.After(v)
			}
		}
		return nil

	case Contains:
		fold := cases.Fold()
		needle := fold.String(spec.Value)
		return func(r int) bool {
			return strings.Contains(fold.String(col.Text(r)), needle)
		}
	}
	return nil
}
