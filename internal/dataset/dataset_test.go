package dataset

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want Kind
	}{
		{"numbers", []string{"1", "2.5", "-3"}, Numeric},
		{"numbers with gaps", []string{"1", "", "NA", "4"}, Numeric},
		{"all missing", []string{"", "nan"}, Numeric},
		{"iso dates", []string{"2024-01-05", "2024-02-10"}, Date},
		{"mixed date layouts", []string{"2024-01-05", "Jan 7, 2024", "3/4/2024"}, Date},
		{"date times", []string{"2024-01-05 10:30:00", "2024-01-06T08:00:00Z"}, Date},
		{"text", []string{"Singapore", "Tokyo"}, Text},
		{"mostly numbers", []string{"10", "20", "abc"}, Text},
		{"dates and words", []string{"2024-01-05", "soon"}, Text},
		{"numbers and infinity", []string{"1", "2", "inf"}, Text},
		{"only infinities", []string{"inf", "-Infinity", "+Inf"}, Text},
		{"numbers out of range", []string{"1", "1e400"}, Text},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Infer(tt.raw); got != tt.want {
				t.Errorf("Infer(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCoerce_NumericPrice(t *testing.T) {
	col := NewColumn("price", []string{"10", "20", "abc"})
	if col.Inferred != Text {
		t.Fatalf("expected Text inference, got %v", col.Inferred)
	}

	col = Coerce(col, Numeric)
	want := []Cell{{Valid: true, Num: 10}, {Valid: true, Num: 20}, {}}
	if !reflect.DeepEqual(col.Cells, want) {
		t.Errorf("unexpected cells %+v", col.Cells)
	}
	if col.Text(2) != "" || col.Value(2) != nil {
		t.Errorf("missing cell should render empty and serialise as nil")
	}
}

func TestCoerce_Idempotent(t *testing.T) {
	raw := []string{"2024-01-05", "bad", "12", "", "3.75"}
	for _, kind := range Kinds() {
		col := NewColumn("c", raw)
		once := Coerce(col, kind)
		twice := Coerce(once, kind)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("%v: coercing twice differs from once", kind)
		}

		// Round-tripping through another kind comes back to the same cells.
		back := Coerce(Coerce(once, Text), kind)
		if !reflect.DeepEqual(once.Cells, back.Cells) {
			t.Errorf("%v: coercion is not a function of raw values", kind)
		}
	}
}

func TestCoerce_Kinds(t *testing.T) {
	raw := []string{"3.75", "2024-03-01", "x"}

	integer := Coerce(NewColumn("c", raw), Integer)
	if !integer.Cells[0].Valid || integer.Cells[0].Num != 3 || integer.Cells[1].Valid {
		t.Errorf("unexpected integer cells %+v", integer.Cells)
	}

	date := Coerce(NewColumn("c", raw), Date)
	if date.Cells[0].Valid || !date.Cells[1].Valid {
		t.Errorf("unexpected date cells %+v", date.Cells)
	}
	if got := date.Cells[1].Time; !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", got)
	}
	if date.Text(1) != "2024-03-01" {
		t.Errorf("unexpected date text %q", date.Text(1))
	}

	text := Coerce(date, Text)
	for i := range raw {
		if !text.Cells[i].Valid || text.Text(i) != raw[i] {
			t.Errorf("text cell %d = %+v", i, text.Cells[i])
		}
	}
}

func TestCoerce_TextKeepsMissingTokens(t *testing.T) {
	col := NewColumn("city", []string{"Nairobi", "NA", ""})
	if col.Kind != Text || !col.Cells[0].Valid || col.Cells[1].Valid || col.Cells[2].Valid {
		t.Errorf("unexpected text cells %+v", col.Cells)
	}
}

func TestCoerce_NonFiniteIsMissing(t *testing.T) {
	raw := []string{"inf", "-inf", "Infinity", "1e400", "-1e400", "2.5"}
	for _, kind := range []Kind{Numeric, Integer} {
		col := Coerce(NewColumn("c", raw), kind)
		for i := 0; i < len(raw)-1; i++ {
			if col.Cells[i].Valid {
				t.Errorf("%v: %q should be missing, got %+v", kind, raw[i], col.Cells[i])
			}
		}
		if !col.Cells[len(raw)-1].Valid {
			t.Errorf("%v: finite value lost", kind)
		}
		values := make([]any, col.Len())
		for i := range values {
			values[i] = col.Value(i)
		}
		if _, err := json.Marshal(values); err != nil {
			t.Errorf("%v: values are not encodable: %v", kind, err)
		}
	}
}

func TestDataset_New(t *testing.T) {
	ds, err := New(
		[]string{"city", "pop", "founded"},
		[][]string{
			{"Singapore", "5.6", "1819-02-06"},
			{"Tokyo", "14"},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", ds.Len())
	}

	founded, ok := ds.Column("founded")
	if !ok || founded.Kind != Date || founded.Cells[1].Valid {
		t.Errorf("unexpected founded column %+v", founded)
	}
	if got := ds.NamesOfKind(Numeric, Integer); !reflect.DeepEqual(got, []string{"pop"}) {
		t.Errorf("unexpected numeric columns %v", got)
	}

	if _, err := New([]string{"a", "a"}, nil); err == nil {
		t.Error("expected duplicate column error")
	}
}

func TestDataset_SetKindAndSelect(t *testing.T) {
	ds, _ := New([]string{"id", "v"}, [][]string{{"1", "a"}, {"2", "b"}, {"3", "c"}})

	if err := ds.SetKind("id", Text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c, _ := ds.Column("id"); c.Kind != Text || c.Inferred != Numeric {
		t.Errorf("expected Text override keeping Numeric inference, got %v/%v", c.Kind, c.Inferred)
	}
	if err := ds.SetKind("missing", Text); err == nil {
		t.Error("expected unknown column error")
	}

	view := ds.Select([]int{2, 0})
	if view.Len() != 2 || ds.Len() != 3 {
		t.Fatalf("select should not touch the source")
	}
	if got := view.Row(0)["v"]; got != "c" {
		t.Errorf("expected reordered row, got %v", got)
	}

	odd := ds.Where(func(r int) bool { return r%2 == 0 })
	if odd.Len() != 2 {
		t.Errorf("expected 2 rows, got %d", odd.Len())
	}
}

func TestKind_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]Kind{"k": Date})
	if err != nil || string(b) != `{"k":"Date"}` {
		t.Fatalf("unexpected json %s (%v)", b, err)
	}

	var got struct{ K Kind }
	if err := json.Unmarshal([]byte(`{"K":"Integer"}`), &got); err != nil || got.K != Integer {
		t.Errorf("unexpected decode %v (%v)", got.K, err)
	}
	if err := json.Unmarshal([]byte(`{"K":"Float"}`), &got); err == nil {
		t.Error("expected error for unknown kind")
	}
}
