package charts

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"explorekit/internal/dataset"
)

type SeriesPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

func buildTimeSeries(ds *dataset.Dataset, cfg Config) (*Chart, error) {
	dates := ds.NamesOfKind(dataset.Date)
	numeric := numericNames(ds)
	if len(dates) == 0 || len(numeric) == 0 {
		return nil, ErrNeedDateNumeric
	}
	xName, err := pick(cfg.X, dates)
	if err != nil {
		return nil, err
	}
	yName, err := pick(cfg.Y, numeric)
	if err != nil {
		return nil, err
	}

	x, y := mustColumn(ds, xName), mustColumn(ds, yName)
	var series []SeriesPoint
	for r := 0; r < ds.Len(); r++ {
		if x.Cells[r].Valid && y.Cells[r].Valid {
			series = append(series, SeriesPoint{Time: x.Cells[r].Time, Value: y.Cells[r].Num})
		}
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Time.Before(series[j].Time)
	})
	return &Chart{Type: TimeSeries, X: xName, Y: yName, Rows: ds.Len(), Series: series}, nil
}

// stopWords are dropped from word clouds.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "he": {}, "her": {},
	"his": {}, "i": {}, "in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "she": {}, "that": {}, "the": {}, "their": {}, "they": {}, "this": {},
	"to": {}, "was": {}, "we": {}, "were": {}, "with": {}, "you": {},
}

func buildWordCloud(ds *dataset.Dataset, cfg Config) (*Chart, error) {
	texts := ds.NamesOfKind(dataset.Text)
	if len(texts) == 0 {
		return nil, ErrNoText
	}
	name, err := pick(cfg.X, texts)
	if err != nil {
		return nil, err
	}

	col := mustColumn(ds, name)
	lower := cases.Lower(language.Und)
	counts := make(map[string]int)
	for r := 0; r < ds.Len(); r++ {
		words := strings.FieldsFunc(lower.String(col.Text(r)), func(c rune) bool {
			return !unicode.IsLetter(c) && !unicode.IsNumber(c) && c != '\''
		})
		for _, w := range words {
			w = strings.Trim(w, "'")
			if len([]rune(w)) < 2 {
				continue
			}
			if _, stop := stopWords[w]; stop {
				continue
			}
			counts[w]++
		}
	}

	words := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if len(words) > maxCloudEntries {
		words = words[:maxCloudEntries]
	}
	return &Chart{Type: WordCloud, X: name, Rows: ds.Len(), Words: words}, nil
}
