package artifacts

import (
	"fmt"
	"strconv"
	"time"

	"RetailPrice/internal/domain/models"
	"RetailPrice/pkg/util"
)

const (
	KindStandardScaler = "standard_scaler"
	KindOneHot         = "one_hot"
	KindDateParts      = "date_parts"
	KindPassthrough    = "passthrough"
)

// PreprocessorSpec is the on-disk form of a fitted column transformer.
type PreprocessorSpec struct {
	Version      string            `yaml:"version"`
	Transformers []TransformerSpec `yaml:"transformers"`
}

// TransformerSpec describes one column group. Which fields apply depends on Kind.
type TransformerSpec struct {
	Name          string     `yaml:"name"`
	Kind          string     `yaml:"kind"`
	Columns       []string   `yaml:"columns"`
	Mean          []float64  `yaml:"mean,omitempty"`
	Scale         []float64  `yaml:"scale,omitempty"`
	Categories    [][]string `yaml:"categories,omitempty"`
	HandleUnknown string     `yaml:"handle_unknown,omitempty"`
	Parts         []string   `yaml:"parts,omitempty"`
}

type transformer interface {
	width() int
	apply(rec models.Record, out []float64) ([]float64, error)
}

// Preprocessor turns an adapted record into a feature vector by concatenating
// the output of each transformer in declaration order.
type Preprocessor struct {
	version      string
	transformers []transformer
	columns      []string
	width        int
}

// NewPreprocessor validates spec and builds the transformer chain.
func NewPreprocessor(spec PreprocessorSpec) (*Preprocessor, error) {
	if len(spec.Transformers) == 0 {
		return nil, fmt.Errorf("preprocessor has no transformers")
	}

	p := &Preprocessor{version: spec.Version}
	seen := make(map[string]struct{})
	for i, ts := range spec.Transformers {
		t, err := newTransformer(ts)
		if err != nil {
			return nil, fmt.Errorf("transformer %d (%s): %w", i, ts.Name, err)
		}
		p.transformers = append(p.transformers, t)
		p.width += t.width()
		for _, c := range ts.Columns {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				p.columns = append(p.columns, c)
			}
		}
	}
	return p, nil
}

func newTransformer(ts TransformerSpec) (transformer, error) {
	if len(ts.Columns) == 0 {
		return nil, fmt.Errorf("no columns")
	}

	switch ts.Kind {
	case KindStandardScaler:
		if len(ts.Mean) != len(ts.Columns) || len(ts.Scale) != len(ts.Columns) {
			return nil, fmt.Errorf("mean/scale length must match %d columns", len(ts.Columns))
		}
		for i, s := range ts.Scale {
			if s == 0 {
				return nil, fmt.Errorf("zero scale for column %q", ts.Columns[i])
			}
		}
		return &standardScaler{columns: ts.Columns, mean: ts.Mean, scale: ts.Scale}, nil
	case KindOneHot:
		if len(ts.Categories) != len(ts.Columns) {
			return nil, fmt.Errorf("categories length must match %d columns", len(ts.Columns))
		}
		switch ts.HandleUnknown {
		case "", "error", "ignore":
		default:
			return nil, fmt.Errorf("unknown handle_unknown %q", ts.HandleUnknown)
		}
		oh := &oneHot{columns: ts.Columns, categories: ts.Categories, ignoreUnknown: ts.HandleUnknown == "ignore"}
		oh.index = make([]map[string]int, len(ts.Categories))
		for i, cats := range ts.Categories {
			if len(cats) == 0 {
				return nil, fmt.Errorf("no categories for column %q", ts.Columns[i])
			}
			oh.index[i] = make(map[string]int, len(cats))
			for j, c := range cats {
				oh.index[i][c] = j
			}
			oh.total += len(cats)
		}
		return oh, nil
	case KindDateParts:
		if len(ts.Parts) == 0 {
			return nil, fmt.Errorf("no date parts")
		}
		for _, part := range ts.Parts {
			if _, ok := dateParts[part]; !ok {
				return nil, fmt.Errorf("unknown date part %q", part)
			}
		}
		return &datePartsTransformer{columns: ts.Columns, parts: ts.Parts}, nil
	case KindPassthrough:
		return &passthrough{columns: ts.Columns}, nil
	default:
		return nil, fmt.Errorf("unsupported transformer kind %q", ts.Kind)
	}
}

// Transform implements service.Preprocessor.
func (p *Preprocessor) Transform(rec models.Record) ([]float64, error) {
	out := make([]float64, 0, p.width)
	var err error
	for _, t := range p.transformers {
		if out, err = t.apply(rec, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Width is the length of every vector Transform returns.
func (p *Preprocessor) Width() int { return p.width }

// Columns lists the record columns the preprocessor reads, in first-use order.
func (p *Preprocessor) Columns() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

func (p *Preprocessor) Version() string { return p.version }

type standardScaler struct {
	columns []string
	mean    []float64
	scale   []float64
}

func (s *standardScaler) width() int { return len(s.columns) }

func (s *standardScaler) apply(rec models.Record, out []float64) ([]float64, error) {
	for i, col := range s.columns {
		v, err := numeric(rec, col)
		if err != nil {
			return nil, err
		}
		out = append(out, (v-s.mean[i])/s.scale[i])
	}
	return out, nil
}

type oneHot struct {
	columns       []string
	categories    [][]string
	index         []map[string]int
	total         int
	ignoreUnknown bool
}

func (o *oneHot) width() int { return o.total }

func (o *oneHot) apply(rec models.Record, out []float64) ([]float64, error) {
	for i, col := range o.columns {
		raw, ok := rec[col]
		if !ok {
			return nil, missingColumn(col)
		}
		label := categoryLabel(raw)
		pos, known := o.index[i][label]
		if !known && !o.ignoreUnknown {
			return nil, fmt.Errorf("Found unknown categories ['%s'] in column '%s' during transform", label, col)
		}
		for j := range o.categories[i] {
			if known && j == pos {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}
	return out, nil
}

var dateParts = map[string]func(t time.Time) float64{
	"year":  func(t time.Time) float64 { return float64(t.Year()) },
	"month": func(t time.Time) float64 { return float64(t.Month()) },
	"day":   func(t time.Time) float64 { return float64(t.Day()) },
	// Monday=0 .. Sunday=6
	"weekday":   func(t time.Time) float64 { return float64((int(t.Weekday()) + 6) % 7) },
	"dayofyear": func(t time.Time) float64 { return float64(t.YearDay()) },
}

type datePartsTransformer struct {
	columns []string
	parts   []string
}

func (d *datePartsTransformer) width() int { return len(d.columns) * len(d.parts) }

func (d *datePartsTransformer) apply(rec models.Record, out []float64) ([]float64, error) {
	for _, col := range d.columns {
		raw, ok := rec[col]
		if !ok {
			return nil, missingColumn(col)
		}
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("column '%s': expected a date string, got %T", col, raw)
		}
		t, ok := util.ParseTime(s)
		if !ok {
			return nil, fmt.Errorf("column '%s': unable to parse date '%s'", col, s)
		}
		for _, part := range d.parts {
			out = append(out, dateParts[part](t))
		}
	}
	return out, nil
}

type passthrough struct {
	columns []string
}

func (p *passthrough) width() int { return len(p.columns) }

func (p *passthrough) apply(rec models.Record, out []float64) ([]float64, error) {
	for _, col := range p.columns {
		v, err := numeric(rec, col)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func missingColumn(col string) error {
	return fmt.Errorf("columns are missing: {'%s'}", col)
}

func numeric(rec models.Record, col string) (float64, error) {
	raw, ok := rec[col]
	if !ok {
		return 0, missingColumn(col)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert string to float: '%s'", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("column '%s': unsupported value type %T", col, raw)
	}
}

func categoryLabel(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
